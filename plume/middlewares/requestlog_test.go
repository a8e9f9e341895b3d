package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"plume/plume/utils/logging"
)

func TestRequestLog_PassesThrough(t *testing.T) {
	logging.InitLogger()

	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest("GET", "/some/path", nil)
	rr := httptest.NewRecorder()
	RequestLog(next).ServeHTTP(rr, req)

	if !called {
		t.Fatal("wrapped handler did not run")
	}
	if rr.Code != http.StatusTeapot {
		t.Errorf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}
}
