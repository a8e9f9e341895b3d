package controllers

import (
	"context"
	"os"
	"testing"

	"plume/plume/config"
	"plume/plume/sources/psql"
	"plume/plume/sources/psql/dao"
	"plume/plume/sources/storage"
	"plume/plume/types"
	"plume/plume/utils/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	cfg       config.Config
	uploadDir string
	auth      *AuthController
	users     *UsersController
	posts     *PostsController
	comments  *CommentsController
}

// setupTestEnv wires the controllers against an in-memory sqlite database
// and a temp-dir attachment store.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logging.InitLogger() // ensures ErrorLogger isn't nil

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := psql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "http://localhost:3000")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	cfg := config.Config{JWTSecret: "test-secret"}
	userDAO := dao.NewUserDAO(db)
	postDAO := dao.NewPostDAO(db)
	imageDAO := dao.NewImageDAO(db)
	commentDAO := dao.NewCommentDAO(db)

	return &testEnv{
		cfg:       cfg,
		uploadDir: dir,
		auth:      NewAuthController(userDAO, cfg),
		users:     NewUsersController(userDAO),
		posts:     NewPostsController(postDAO, imageDAO, commentDAO, store),
		comments:  NewCommentsController(commentDAO, postDAO, userDAO),
	}
}

func (e *testEnv) registerUser(t *testing.T, email, username string) types.UserResponse {
	t.Helper()
	res, err := e.auth.Register(context.Background(), types.RegisterRequest{
		Email:    email,
		Password: "Abcd123!",
		Username: username,
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", username, err)
	}
	return res.User
}

func (e *testEnv) storedFileCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(e.uploadDir)
	if err != nil {
		t.Fatal(err)
	}
	return len(entries)
}

func pngFile(name string) types.UploadedImage {
	data := []byte("not-really-a-png")
	return types.UploadedImage{
		Name:        name,
		ContentType: "image/png",
		Size:        int64(len(data)),
		Data:        data,
	}
}
