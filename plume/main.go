package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plume/plume/config"
	"plume/plume/controllers"
	"plume/plume/middlewares"
	"plume/plume/routes"
	"plume/plume/sources/psql"
	"plume/plume/sources/psql/dao"
	"plume/plume/sources/storage"
	"plume/plume/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	store, err := newStore(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("storage init error", zap.Error(err))
		os.Exit(1)
	}

	userDAO := dao.NewUserDAO(db.DB)
	postDAO := dao.NewPostDAO(db.DB)
	imageDAO := dao.NewImageDAO(db.DB)
	commentDAO := dao.NewCommentDAO(db.DB)

	authCtrl := controllers.NewAuthController(userDAO, cfg)
	usersCtrl := controllers.NewUsersController(userDAO)
	postsCtrl := controllers.NewPostsController(postDAO, imageDAO, commentDAO, store)
	commentsCtrl := controllers.NewCommentsController(commentDAO, postDAO, userDAO)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middlewares.CORS)

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", routes.AuthRoutes(authCtrl))
		api.Mount("/users", routes.UserRoutes(usersCtrl, cfg))
		api.Mount("/posts", routes.PostRoutes(postsCtrl, commentsCtrl, cfg))
	})
	r.Mount("/health", routes.HealthRoutes(healthCtrl))

	if cfg.StorageBackend == "local" {
		fileServer := http.StripPrefix("/public/images/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Handle("/public/images/*", fileServer)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}

func newStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.StorageBackend == "minio" {
		return storage.NewMinIOStore(ctx, cfg)
	}
	return storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
}
