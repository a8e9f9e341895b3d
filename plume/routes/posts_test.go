package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"plume/plume/auth"
	"plume/plume/config"
	"plume/plume/schemas"
	"plume/plume/controllers"
	"plume/plume/sources/psql"
	"plume/plume/sources/psql/dao"
	"plume/plume/sources/storage"
	"plume/plume/utils/logging"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testServer struct {
	router    http.Handler
	uploadDir string
	cfg       config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logging.InitLogger()

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
		t.Fatal(err)
	}

	cfg := config.Config{JWTSecret: "test-secret"}
	userDAO := dao.NewUserDAO(db)
	postDAO := dao.NewPostDAO(db)
	imageDAO := dao.NewImageDAO(db)
	commentDAO := dao.NewCommentDAO(db)

	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", AuthRoutes(controllers.NewAuthController(userDAO, cfg)))
		api.Mount("/users", UserRoutes(controllers.NewUsersController(userDAO), cfg))
		api.Mount("/posts", PostRoutes(
			controllers.NewPostsController(postDAO, imageDAO, commentDAO, store),
			controllers.NewCommentsController(commentDAO, postDAO, userDAO),
			cfg,
		))
	})

	return &testServer{router: r, uploadDir: dir, cfg: cfg}
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) postJSON(t *testing.T, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.do(t, req)
}

// signupAndLogin registers alice and returns her token.
func (s *testServer) signupAndLogin(t *testing.T) string {
	t.Helper()
	rr := s.postJSON(t, "/api/auth/signup", "", map[string]string{
		"email": "a@b.com", "password": "Abcd123!", "username": "alice",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = s.postJSON(t, "/api/auth/login", "", map[string]string{
		"email": "a@b.com", "password": "Abcd123!",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var res struct {
		User struct {
			Token string `json:"token"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.User.Token == "" {
		t.Fatal("login returned no token")
	}
	return res.User.Token
}

// multipartPost builds a multipart body with title/content fields and n
// image parts with the given content type.
func multipartPost(t *testing.T, n int, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("title", "título"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteField("content", "contenido"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="img%d.png"`, i))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func (s *testServer) storedFileCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		t.Fatal(err)
	}
	return len(entries)
}

func TestSignupLoginFlow(t *testing.T) {
	s := newTestServer(t)

	rr := s.postJSON(t, "/api/auth/signup", "", map[string]string{
		"email": "a@b.com", "password": "Abcd123!", "username": "alice",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var signup struct {
		User struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &signup); err != nil {
		t.Fatal(err)
	}
	if signup.User.Username != "@alice" || signup.User.Email != "a@b.com" || signup.User.ID == "" {
		t.Errorf("unexpected signup body %s", rr.Body.String())
	}

	token := s.signupAndLoginExisting(t)

	claims, err := auth.Verify(token, []byte(s.cfg.JWTSecret))
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Username != "@alice" || claims.Email != "a@b.com" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

// signupAndLoginExisting logs alice in without registering again.
func (s *testServer) signupAndLoginExisting(t *testing.T) string {
	t.Helper()
	rr := s.postJSON(t, "/api/auth/login", "", map[string]string{
		"email": "a@b.com", "password": "Abcd123!",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var res struct {
		User struct {
			Token string `json:"token"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	return res.User.Token
}

func TestCreatePost_RequiresAuth(t *testing.T) {
	s := newTestServer(t)
	body, ct := multipartPost(t, 0, "image/png")
	req := httptest.NewRequest("POST", "/api/posts/", body)
	req.Header.Set("Content-Type", ct)
	rr := s.do(t, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestCreatePost_SixImagesRejectedBeforeAnyWrite(t *testing.T) {
	s := newTestServer(t)
	token := s.signupAndLogin(t)

	body, ct := multipartPost(t, 6, "image/png")
	req := httptest.NewRequest("POST", "/api/posts/", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := s.do(t, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	var res struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Errors) != 1 || res.Errors[0].Field != "images" || res.Errors[0].Message != "Máximo 5 imágenes" {
		t.Errorf("unexpected error body %s", rr.Body.String())
	}
	if s.storedFileCount(t) != 0 {
		t.Errorf("expected zero files persisted, got %d", s.storedFileCount(t))
	}
}

func TestCreatePost_NonImageRejectedAtDecode(t *testing.T) {
	s := newTestServer(t)
	token := s.signupAndLogin(t)

	body, ct := multipartPost(t, 1, "application/pdf")
	req := httptest.NewRequest("POST", "/api/posts/", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := s.do(t, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "El archivo debe ser una imagen") {
		t.Errorf("unexpected body %s", rr.Body.String())
	}
	if s.storedFileCount(t) != 0 {
		t.Errorf("expected zero files persisted, got %d", s.storedFileCount(t))
	}
}

func TestCreatePost_OversizedImageRejected(t *testing.T) {
	s := newTestServer(t)
	token := s.signupAndLogin(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("title", "título"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteField("content", "contenido"); err != nil {
		t.Fatal(err)
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="images"; filename="big.png"`)
	h.Set("Content-Type", "image/png")
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(bytes.Repeat([]byte("x"), schemas.MaxImageSize+1)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/posts/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rr := s.do(t, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "El archivo es muy grande, máximo 5MB") {
		t.Errorf("unexpected body %s", rr.Body.String())
	}
	if s.storedFileCount(t) != 0 {
		t.Errorf("expected zero files persisted, got %d", s.storedFileCount(t))
	}
}

func TestCreateAndDeletePost_EndToEnd(t *testing.T) {
	s := newTestServer(t)
	token := s.signupAndLogin(t)

	body, ct := multipartPost(t, 2, "image/png")
	req := httptest.NewRequest("POST", "/api/posts/", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := s.do(t, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var post struct {
		ID     string `json:"id"`
		Images []struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"images"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &post); err != nil {
		t.Fatal(err)
	}
	if len(post.Images) != 2 || s.storedFileCount(t) != 2 {
		t.Fatalf("expected 2 images and 2 files, got %d/%d", len(post.Images), s.storedFileCount(t))
	}

	req = httptest.NewRequest("DELETE", "/api/posts/"+post.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = s.do(t, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if s.storedFileCount(t) != 0 {
		t.Errorf("expected files removed, got %d", s.storedFileCount(t))
	}

	req = httptest.NewRequest("GET", "/api/posts/"+post.ID, nil)
	rr = s.do(t, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rr.Code)
	}
}

func TestDeletePost_Nonexistent404(t *testing.T) {
	s := newTestServer(t)
	token := s.signupAndLogin(t)

	req := httptest.NewRequest("DELETE", "/api/posts/no-such-id", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := s.do(t, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCreateComment_EndToEnd(t *testing.T) {
	s := newTestServer(t)
	token := s.signupAndLogin(t)

	body, ct := multipartPost(t, 0, "image/png")
	req := httptest.NewRequest("POST", "/api/posts/", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := s.do(t, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("create post: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var post struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &post); err != nil {
		t.Fatal(err)
	}

	rr = s.postJSON(t, "/api/posts/"+post.ID+"/comments", token, map[string]string{"content": "hola"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var comment struct {
		Content string `json:"content"`
		Author  struct {
			Username string `json:"username"`
		} `json:"author"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &comment); err != nil {
		t.Fatal(err)
	}
	if comment.Content != "hola" || comment.Author.Username != "@alice" {
		t.Errorf("unexpected comment body %s", rr.Body.String())
	}
}

func TestUpdateUsername_EndToEnd(t *testing.T) {
	s := newTestServer(t)
	token := s.signupAndLogin(t)

	data, _ := json.Marshal(map[string]string{"username": "alice"})
	req := httptest.NewRequest("PUT", "/api/users/", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := s.do(t, req)

	// Same username as the caller already has: conflict.
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Ya tienes ese nombre de usuario") {
		t.Errorf("unexpected body %s", rr.Body.String())
	}
}
