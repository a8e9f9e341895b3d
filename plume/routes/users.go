// plume/routes/users.go
package routes

import (
	"encoding/json"
	"net/http"

	"plume/plume/apierrors"
	"plume/plume/config"
	"plume/plume/controllers"
	"plume/plume/middlewares"
	"plume/plume/types"

	"github.com/go-chi/chi/v5"
)

func UserRoutes(ctrl *controllers.UsersController, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	// GET /users/{username}
	r.Get("/{username}", handleJSON(func(r *http.Request) (any, int, error) {
		username := chi.URLParam(r, "username")
		if username == "" {
			return nil, 0, badRequest("El nombre de usuario es necesario")
		}
		user, err := ctrl.GetByUsername(r.Context(), username)
		if err != nil {
			return nil, 0, err
		}
		return user, http.StatusOK, nil
	}))

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		// PUT /users
		gr.Put("/", handleJSON(func(r *http.Request) (any, int, error) {
			claims, ok := middlewares.Identity(r.Context())
			if !ok {
				return nil, 0, &apierrors.AuthError{Message: "Acceso denegado"}
			}
			var req types.UpdateUserRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, badRequest("Cuerpo de la petición inválido")
			}
			user, err := ctrl.UpdateUsername(r.Context(), claims.ID, req)
			if err != nil {
				return nil, 0, err
			}
			return user, http.StatusOK, nil
		}))
	})

	return r
}
