// plume/controllers/posts.go
package controllers

import (
	"bytes"
	"context"
	"fmt"

	"plume/plume/apierrors"
	"plume/plume/schemas"
	"plume/plume/sources/psql/dao"
	"plume/plume/sources/psql/models"
	"plume/plume/sources/storage"
	"plume/plume/types"
	"plume/plume/utils/logging"

	"go.uber.org/zap"
)

type PostsController struct {
	posts    *dao.PostDAO
	images   *dao.ImageDAO
	comments *dao.CommentDAO
	store    storage.Store
}

func NewPostsController(posts *dao.PostDAO, images *dao.ImageDAO, comments *dao.CommentDAO, store storage.Store) *PostsController {
	return &PostsController{posts: posts, images: images, comments: comments, store: store}
}

// Create validates the payload and every attachment descriptor before any
// file is written, then persists the files and the post+image rows. Files
// already written are not rolled back if the database write fails; the
// orphaned names are logged.
func (c *PostsController) Create(ctx context.Context, authorID, title, content string, files []types.UploadedImage) (*types.PostResponse, error) {
	if err := apierrors.Validation(schemas.ValidatePost(title, content, descriptors(files))); err != nil {
		return nil, err
	}

	urls, err := c.saveFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	for _, url := range urls {
		post.Images = append(post.Images, models.Image{URL: url})
	}
	if err := c.posts.CreatePost(ctx, post); err != nil {
		logging.ErrorLogger.Error("post create failed after file writes",
			zap.Strings("orphaned_files", urls), zap.Error(err))
		return nil, err
	}

	resp := postResponse(post)
	return &resp, nil
}

// List returns every post newest-first, optionally filtered by author, each
// with its images, its author's public username and its comments
// newest-first.
func (c *PostsController) List(ctx context.Context, authorID string) ([]types.PostResponse, error) {
	posts, err := c.posts.ListPosts(ctx, authorID)
	if err != nil {
		return nil, err
	}
	out := make([]types.PostResponse, 0, len(posts))
	for i := range posts {
		resp := postResponse(&posts[i])
		resp.Author = &types.PostAuthor{Username: posts[i].Author.Username}
		for _, cm := range posts[i].Comments {
			resp.Comments = append(resp.Comments, types.CommentResponse{
				ID:        cm.ID,
				Content:   cm.Content,
				Author:    types.CommentAuthor{Username: cm.Author.Username},
				CreatedAt: cm.CreatedAt,
			})
		}
		out = append(out, resp)
	}
	return out, nil
}

func (c *PostsController) Get(ctx context.Context, postID string) (*types.PostResponse, error) {
	post, err := c.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apierrors.NotFound("No se encontro el post")
	}
	resp := postResponse(post)
	return &resp, nil
}

func (c *PostsController) Update(ctx context.Context, postID string, req types.UpdatePostRequest) (*types.PostResponse, error) {
	if err := apierrors.Validation(schemas.ValidateUpdatePost(req.Title, req.Content)); err != nil {
		return nil, err
	}

	existing, err := c.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apierrors.NotFound("No se encontro el post")
	}

	post, err := c.posts.UpdatePost(ctx, postID, req.Title, req.Content)
	if err != nil {
		return nil, err
	}
	resp := postResponse(post)
	return &resp, nil
}

// Delete cascades: every stored file first, then the image rows, the comment
// rows, and finally the post row, so no orphaned file reference survives a
// partial failure of the row deletions.
func (c *PostsController) Delete(ctx context.Context, postID string) (*types.MessageResponse, error) {
	post, err := c.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apierrors.NotFound("No se encontro el post")
	}

	images, err := c.images.ListImagesByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		if err := c.store.Delete(ctx, img.URL); err != nil {
			return nil, err
		}
	}

	if err := c.images.DeleteImagesByPost(ctx, postID); err != nil {
		return nil, err
	}
	if err := c.comments.DeleteCommentsByPost(ctx, postID); err != nil {
		return nil, err
	}
	if err := c.posts.DeletePost(ctx, postID); err != nil {
		return nil, err
	}

	return &types.MessageResponse{Message: "Post eliminado"}, nil
}

// AddImages appends up to 5 images to an existing post and reports how many
// rows were created.
func (c *PostsController) AddImages(ctx context.Context, postID string, files []types.UploadedImage) (*types.MessageResponse, error) {
	post, err := c.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apierrors.NotFound("No se encontro el post")
	}

	if err := apierrors.Validation(schemas.ValidateAddImages(descriptors(files))); err != nil {
		return nil, err
	}

	urls, err := c.saveFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Image, 0, len(urls))
	for _, url := range urls {
		rows = append(rows, models.Image{URL: url, PostID: postID})
	}
	count, err := c.images.CreateImages(ctx, rows)
	if err != nil {
		logging.ErrorLogger.Error("image rows create failed after file writes",
			zap.Strings("orphaned_files", urls), zap.Error(err))
		return nil, err
	}

	return &types.MessageResponse{Message: fmt.Sprintf("%d imagenes agregadas", count)}, nil
}

// DeleteImage removes the image row and then its stored file. The image is
// looked up by its own id only; it is not checked against the given post.
// If the file removal fails after the row is gone, the caller gets a
// distinguishable partial-failure error.
func (c *PostsController) DeleteImage(ctx context.Context, postID, imageID string) (*types.MessageResponse, error) {
	post, err := c.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apierrors.NotFound("No se encontro el post")
	}

	image, err := c.images.GetImageByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, apierrors.NotFound("No se encontro la imagen")
	}

	if err := c.images.DeleteImage(ctx, imageID); err != nil {
		return nil, err
	}
	if err := c.store.Delete(ctx, image.URL); err != nil {
		return nil, &apierrors.PartialDeleteError{URL: image.URL, RowDeleted: true, Err: err}
	}

	return &types.MessageResponse{Message: "Imagen eliminada"}, nil
}

func (c *PostsController) saveFiles(ctx context.Context, files []types.UploadedImage) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := c.store.Save(ctx, f.Name, f.ContentType, bytes.NewReader(f.Data), f.Size)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func descriptors(files []types.UploadedImage) []schemas.ImageDescriptor {
	descs := make([]schemas.ImageDescriptor, 0, len(files))
	for _, f := range files {
		descs = append(descs, schemas.ImageDescriptor{Mimetype: f.ContentType, Size: f.Size})
	}
	return descs
}

func postResponse(post *models.Post) types.PostResponse {
	resp := types.PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		Images:    make([]types.ImageResponse, 0, len(post.Images)),
		Comments:  []types.CommentResponse{},
	}
	for _, img := range post.Images {
		resp.Images = append(resp.Images, types.ImageResponse{ID: img.ID, URL: img.URL})
	}
	return resp
}
