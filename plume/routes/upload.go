// plume/routes/upload.go
package routes

import (
	"io"
	"net/http"
	"strings"

	"plume/plume/apierrors"
	"plume/plume/schemas"
	"plume/plume/types"
)

// maxMultipartMemory bounds how much of a multipart body is held in memory
// before spilling to temporary files.
const maxMultipartMemory = 32 << 20

// decodeImages parses the "images" field of a multipart form. This is the
// upload-decoding stage: more than 5 files or a non-image declared content
// type is rejected here, before schema validation runs and before any byte
// is written to storage. Each part is buffered up to the size limit plus
// one byte; an oversize file is then rejected by the attachment descriptor
// validation downstream without ever being held fully in memory.
func decodeImages(r *http.Request) ([]types.UploadedImage, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, badRequest("Cuerpo de la petición inválido")
	}
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) > schemas.MaxImages {
		return nil, &apierrors.UploadError{
			Errors: []apierrors.FieldError{{Field: "images", Message: "Máximo 5 imágenes"}},
		}
	}

	files := make([]types.UploadedImage, 0, len(headers))
	for _, fh := range headers {
		contentType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			return nil, &apierrors.UploadError{Message: "El archivo debe ser una imagen"}
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(io.LimitReader(f, schemas.MaxImageSize+1))
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, types.UploadedImage{
			Name:        fh.Filename,
			ContentType: contentType,
			Size:        int64(len(data)),
			Data:        data,
		})
	}
	return files, nil
}
