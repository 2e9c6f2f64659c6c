package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ClientIDKey))
	})
	return r
}

func TestCORSMiddleware(t *testing.T) {
	r := newRouter(CORSMiddleware([]string{"http://localhost:5173"}))

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{"no origin", http.MethodGet, "", http.StatusOK, ""},
		{"allowed origin", http.MethodGet, "http://localhost:5173", http.StatusOK, "http://localhost:5173"},
		{"preflight", http.MethodOptions, "http://localhost:5173", http.StatusOK, "http://localhost:5173"},
		{"rejected origin", http.MethodGet, "http://evil.test", http.StatusForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/ping", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("allow-origin %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	token, err := auth.GenerateAccessToken("s3cret", "arena", time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "disabled", secret: "", wantStatus: http.StatusOK},
		{name: "missing token", secret: "s3cret", wantStatus: http.StatusUnauthorized},
		{name: "bad token", secret: "s3cret", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", secret: "s3cret", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: "arena"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newRouter(AuthMiddleware(tt.secret)).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && w.Body.String() != tt.wantBody {
				t.Fatalf("body %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}
