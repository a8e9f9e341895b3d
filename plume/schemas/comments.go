// plume/schemas/comments.go
package schemas

import (
	"plume/plume/apierrors"
	"plume/plume/types"
)

func ValidateComment(req types.CreateCommentRequest) []apierrors.FieldError {
	var errs []apierrors.FieldError
	if req.Content == "" {
		errs = append(errs, apierrors.FieldError{Field: "content", Message: "El contenido del comentario es requerido"})
	}
	return errs
}
