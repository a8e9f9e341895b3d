package routes

import (
	"net/http"

	"plume/plume/controllers"

	"github.com/go-chi/chi/v5"
)

func HealthRoutes(ctrl *controllers.HealthController) chi.Router {
	r := chi.NewRouter()
	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		return ctrl.Status(), http.StatusOK, nil
	}))
	return r
}
