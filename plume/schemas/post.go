// plume/schemas/post.go
package schemas

import (
	"strings"

	"plume/plume/apierrors"
)

const (
	MaxImages    = 5
	MaxImageSize = 5 * 1024 * 1024
)

// ImageDescriptor is the declared mimetype and byte size of an uploaded
// file, validated before the file is persisted.
type ImageDescriptor struct {
	Mimetype string
	Size     int64
}

// ValidatePost checks a post-creation payload: title and content required,
// plus the descriptor of each attached image, at most 5.
func ValidatePost(title, content string, images []ImageDescriptor) []apierrors.FieldError {
	errs := ValidateUpdatePost(title, content)
	errs = append(errs, validateImages(images, false)...)
	return errs
}

// ValidateUpdatePost is the post rule-set without images.
func ValidateUpdatePost(title, content string) []apierrors.FieldError {
	var errs []apierrors.FieldError
	if title == "" {
		errs = append(errs, apierrors.FieldError{Field: "title", Message: "El título es requerido"})
	}
	if content == "" {
		errs = append(errs, apierrors.FieldError{Field: "content", Message: "El contenido es requerido"})
	}
	return errs
}

// ValidateAddImages requires a non-empty image sequence.
func ValidateAddImages(images []ImageDescriptor) []apierrors.FieldError {
	return validateImages(images, true)
}

func validateImages(images []ImageDescriptor, required bool) []apierrors.FieldError {
	var errs []apierrors.FieldError
	if required && len(images) == 0 {
		errs = append(errs, apierrors.FieldError{Field: "images", Message: "Se requiere al menos una imagen"})
		return errs
	}
	if len(images) > MaxImages {
		errs = append(errs, apierrors.FieldError{Field: "images", Message: "Máximo 5 imágenes"})
	}
	for _, img := range images {
		if !strings.HasPrefix(img.Mimetype, "image/") {
			errs = append(errs, apierrors.FieldError{Field: "images", Message: "El archivo debe ser una imagen"})
		}
		if img.Size > MaxImageSize {
			errs = append(errs, apierrors.FieldError{Field: "images", Message: "El archivo es muy grande, máximo 5MB"})
		}
	}
	return errs
}
