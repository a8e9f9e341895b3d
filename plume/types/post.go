// plume/types/post.go
package types

import "time"

type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UploadedImage is a decoded multipart file: its attachment descriptor
// (declared content type and size) plus the buffered bytes.
type UploadedImage struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

type ImageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type PostAuthor struct {
	Username string `json:"username"`
}

type PostResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	AuthorID  string            `json:"author_id"`
	CreatedAt time.Time         `json:"created_at"`
	Images    []ImageResponse   `json:"images"`
	Author    *PostAuthor       `json:"author,omitempty"`
	Comments  []CommentResponse `json:"comments"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
