// plume/routes/respond.go
package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"plume/plume/apierrors"
	"plume/plume/utils/logging"

	"go.uber.org/zap"
)

// handleJSON wraps a handler returning (body, status, error) and takes care
// of serialization and of translating domain errors into responses.
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, status, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorList struct {
	Errors []apierrors.FieldError `json:"errors"`
}

type errorMessage struct {
	Message string `json:"message"`
}

// writeError maps the error taxonomy onto HTTP responses. Anything outside
// the taxonomy is an internal fault: logged server-side, generic message to
// the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *apierrors.ValidationError
		notFound   *apierrors.NotFoundError
		conflict   *apierrors.ConflictError
		authErr    *apierrors.AuthError
		upload     *apierrors.UploadError
		badReq     *badRequestError
	)
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorList{Errors: validation.Errors})
	case errors.As(err, &upload):
		if len(upload.Errors) > 0 {
			writeJSON(w, http.StatusBadRequest, errorList{Errors: upload.Errors})
		} else {
			writeJSON(w, http.StatusBadRequest, errorMessage{Message: upload.Message})
		}
	case errors.As(err, &conflict):
		if len(conflict.Errors) > 0 {
			writeJSON(w, http.StatusBadRequest, errorList{Errors: conflict.Errors})
		} else {
			writeJSON(w, http.StatusBadRequest, errorMessage{Message: conflict.Message})
		}
	case errors.As(err, &authErr):
		if len(authErr.Errors) > 0 {
			writeJSON(w, http.StatusUnauthorized, errorList{Errors: authErr.Errors})
		} else {
			writeJSON(w, http.StatusUnauthorized, errorMessage{Message: authErr.Message})
		}
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorMessage{Message: notFound.Message})
	case errors.As(err, &badReq):
		writeJSON(w, http.StatusBadRequest, errorMessage{Message: badReq.message})
	default:
		logging.ErrorLogger.Error("internal server error",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorMessage{Message: "Internal server error"})
	}
}

// badRequestError covers malformed bodies and missing path ids, which the
// handlers report with a plain 400 message.
type badRequestError struct {
	message string
}

func (e *badRequestError) Error() string { return e.message }

func badRequest(message string) error { return &badRequestError{message: message} }
