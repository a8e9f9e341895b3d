// plume/controllers/comments.go
package controllers

import (
	"context"

	"plume/plume/apierrors"
	"plume/plume/schemas"
	"plume/plume/sources/psql/dao"
	"plume/plume/sources/psql/models"
	"plume/plume/types"
)

type CommentsController struct {
	comments *dao.CommentDAO
	posts    *dao.PostDAO
	users    *dao.UserDAO
}

func NewCommentsController(comments *dao.CommentDAO, posts *dao.PostDAO, users *dao.UserDAO) *CommentsController {
	return &CommentsController{comments: comments, posts: posts, users: users}
}

// Create adds a comment by the authenticated user to an existing post. The
// author id comes from the token, so it is re-checked against the database
// in case the account no longer resolves.
func (c *CommentsController) Create(ctx context.Context, authorID, postID string, req types.CreateCommentRequest) (*types.CommentResponse, error) {
	if err := apierrors.Validation(schemas.ValidateComment(req)); err != nil {
		return nil, err
	}

	post, err := c.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apierrors.NotFound("No se encontro el Post")
	}

	user, err := c.users.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierrors.NotFound("No se encontro el Usuario")
	}

	comment := &models.Comment{
		Content:  req.Content,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := c.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return &types.CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    types.CommentAuthor{ID: user.ID, Username: user.Username},
		CreatedAt: comment.CreatedAt,
	}, nil
}
