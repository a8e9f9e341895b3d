// plume/routes/posts.go
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

func PostRoutes(posts *controllers.PostsController, comments *controllers.CommentsController, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	// GET /posts/all
	r.Get("/all", handleJSON(func(r *http.Request) (any, int, error) {
		res, err := posts.List(r.Context(), "")
		if err != nil {
			return nil, 0, err
		}
		return res, http.StatusOK, nil
	}))

	// GET /posts/all/{userId}
	r.Get("/all/{userId}", handleJSON(func(r *http.Request) (any, int, error) {
		res, err := posts.List(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			return nil, 0, err
		}
		return res, http.StatusOK, nil
	}))

	// GET /posts/{postId}
	r.Get("/{postId}", handleJSON(func(r *http.Request) (any, int, error) {
		postID := chi.URLParam(r, "postId")
		if postID == "" {
			return nil, 0, badRequest("El id del post es necesario")
		}
		res, err := posts.Get(r.Context(), postID)
		if err != nil {
			return nil, 0, err
		}
		return res, http.StatusOK, nil
	}))

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		// POST /posts
		gr.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
			claims, ok := middlewares.Identity(r.Context())
			if !ok {
				return nil, 0, &apierrors.AuthError{Message: "Acceso denegado"}
			}
			files, err := decodeImages(r)
			if err != nil {
				return nil, 0, err
			}
			title := r.FormValue("title")
			content := r.FormValue("content")
			res, err := posts.Create(r.Context(), claims.ID, title, content, files)
			if err != nil {
				return nil, 0, err
			}
			return res, http.StatusOK, nil
		}))

		// PUT /posts/{postId}
		gr.Put("/{postId}", handleJSON(func(r *http.Request) (any, int, error) {
			postID := chi.URLParam(r, "postId")
			if postID == "" {
				return nil, 0, badRequest("El id del post es necesario")
			}
			var req types.UpdatePostRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, badRequest("Cuerpo de la petición inválido")
			}
			res, err := posts.Update(r.Context(), postID, req)
			if err != nil {
				return nil, 0, err
			}
			return res, http.StatusOK, nil
		}))

		// DELETE /posts/{postId}
		gr.Delete("/{postId}", handleJSON(func(r *http.Request) (any, int, error) {
			postID := chi.URLParam(r, "postId")
			if postID == "" {
				return nil, 0, badRequest("El id del post es necesario")
			}
			res, err := posts.Delete(r.Context(), postID)
			if err != nil {
				return nil, 0, err
			}
			return res, http.StatusOK, nil
		}))

		// POST /posts/{postId}/images
		gr.Post("/{postId}/images", handleJSON(func(r *http.Request) (any, int, error) {
			postID := chi.URLParam(r, "postId")
			if postID == "" {
				return nil, 0, badRequest("El id del post es necesario")
			}
			files, err := decodeImages(r)
			if err != nil {
				return nil, 0, err
			}
			res, err := posts.AddImages(r.Context(), postID, files)
			if err != nil {
				return nil, 0, err
			}
			return res, http.StatusOK, nil
		}))

		// DELETE /posts/{postId}/images/{imageId}
		gr.Delete("/{postId}/images/{imageId}", handleJSON(func(r *http.Request) (any, int, error) {
			postID := chi.URLParam(r, "postId")
			imageID := chi.URLParam(r, "imageId")
			if postID == "" || imageID == "" {
				return nil, 0, badRequest("El id del post y la imagen son necesarios")
			}
			res, err := posts.DeleteImage(r.Context(), postID, imageID)
			if err != nil {
				return nil, 0, err
			}
			return res, http.StatusOK, nil
		}))

		// POST /posts/{postId}/comments
		gr.Post("/{postId}/comments", handleJSON(func(r *http.Request) (any, int, error) {
			claims, ok := middlewares.Identity(r.Context())
			if !ok {
				return nil, 0, &apierrors.AuthError{Message: "Acceso denegado"}
			}
			postID := chi.URLParam(r, "postId")
			var req types.CreateCommentRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, badRequest("Cuerpo de la petición inválido")
			}
			res, err := comments.Create(r.Context(), claims.ID, postID, req)
			if err != nil {
				return nil, 0, err
			}
			return res, http.StatusCreated, nil
		}))
	})

	return r
}
