// plume/routes/auth.go
package routes

import (
	"encoding/json"
	"net/http"

	"plume/plume/controllers"
	"plume/plume/types"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(ctrl *controllers.AuthController) chi.Router {
	r := chi.NewRouter()

	// POST /auth/login
	r.Post("/login", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, 0, badRequest("Cuerpo de la petición inválido")
		}
		res, err := ctrl.Login(r.Context(), req)
		if err != nil {
			return nil, 0, err
		}
		return res, http.StatusOK, nil
	}))

	// POST /auth/signup
	r.Post("/signup", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, 0, badRequest("Cuerpo de la petición inválido")
		}
		res, err := ctrl.Register(r.Context(), req)
		if err != nil {
			return nil, 0, err
		}
		return res, http.StatusOK, nil
	}))

	return r
}
