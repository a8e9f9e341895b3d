// plume/types/comment.go
package types

import "time"

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type CommentAuthor struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
}

type CommentResponse struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Author    CommentAuthor `json:"author"`
	CreatedAt time.Time     `json:"created_at"`
}
