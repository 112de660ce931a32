package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	testhelpers "github.com/polkiloo/designstudio/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthRequired(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired(testhelpers.SubjectResolverStub{}))
	router.GET("/", func(c *gin.Context) {})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
	if resp.Header().Get("WWW-Authenticate") == "" {
		t.Fatalf("expected WWW-Authenticate header")
	}

	router = gin.New()
	router.Use(AuthRequired(testhelpers.SubjectResolverStub{Err: domainErrors.ErrUnauthenticated}))
	router.GET("/", func(c *gin.Context) {})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", resp.Code)
	}

	router = gin.New()
	router.Use(AuthRequired(testhelpers.SubjectResolverStub{Err: context.DeadlineExceeded}))
	router.GET("/", func(c *gin.Context) {})
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var stored model.Subject
	router = gin.New()
	router.Use(AuthRequired(testhelpers.SubjectResolverStub{Subjects: map[string]model.Subject{
		"token": {ID: 42, IsStaff: true},
	}}))
	router.GET("/", func(c *gin.Context) {
		stored = Subject(c)
		c.Status(http.StatusOK)
	})
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if stored.ID != 42 || !stored.IsStaff {
		t.Fatalf("unexpected subject %+v", stored)
	}
}

func TestStaffRequired(t *testing.T) {
	resolver := testhelpers.SubjectResolverStub{Subjects: map[string]model.Subject{
		"staff": {ID: 1, IsStaff: true},
		"user":  {ID: 2},
	}}
	router := gin.New()
	router.Use(AuthRequired(resolver), StaffRequired())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := map[string]int{"staff": http.StatusOK, "user": http.StatusForbidden}
	for token, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != want {
			t.Fatalf("token %s: expected %d, got %d", token, want, resp.Code)
		}
	}
}

func TestSubjectWithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if !Subject(c).Anonymous() {
		t.Fatalf("expected anonymous subject")
	}
}

func TestExtractToken(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)

	if token := extractToken(c); token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}

	c.Request.Header.Set("Authorization", "Bearer abc")
	if token := extractToken(c); token != "abc" {
		t.Fatalf("expected token from header, got %q", token)
	}

	c.Request.Header.Set("Authorization", "bearer xyz")
	if token := extractToken(c); token != "xyz" {
		t.Fatalf("expected case-insensitive scheme, got %q", token)
	}

	c.Request.Header.Set("Authorization", "Basic abc")
	if token := extractToken(c); token != "" {
		t.Fatalf("expected basic auth to be ignored, got %q", token)
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	var seen string
	router.GET("/", func(c *gin.Context) {
		seen = c.GetString(RequestIDContextKey)
		c.Status(http.StatusOK)
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || resp.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected generated request id, got %q / %q", seen, resp.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if seen != "abc-123" || resp.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected propagated request id, got %q", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 100))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if len(seen) > maxRequestIDLength {
		t.Fatalf("expected oversized request id to be replaced, got %q", seen)
	}
}

type observation struct {
	method, route string
	status        int
}

type observerStub struct {
	calls []observation
}

func (o *observerStub) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	o.calls = append(o.calls, observation{method: method, route: route, status: status})
}

func TestMetrics(t *testing.T) {
	observer := &observerStub{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.GET("/orders/:id/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/5/", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	if len(observer.calls) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(observer.calls))
	}
	if got := observer.calls[0]; got.route != "/orders/:id/" || got.status != http.StatusNoContent || got.method != http.MethodGet {
		t.Fatalf("unexpected observation %+v", got)
	}
	if got := observer.calls[1]; got.route != "" || got.status != http.StatusNotFound {
		t.Fatalf("unexpected unmatched observation %+v", got)
	}
}

func TestDecompressRequest(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte("payload"))
	_ = gz.Close()

	router := gin.New()
	router.Use(DecompressRequest(16))
	var body string
	router.POST("/", func(c *gin.Context) {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		body = string(data)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewReader(buf.Bytes())))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if body != "payload" {
		t.Fatalf("expected decompressed payload, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewReader([]byte("plain"))))
	resp = httptest.NewRecorder()
	body = ""
	router.ServeHTTP(resp, req)
	if body != "plain" {
		t.Fatalf("expected plain body, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("not gzip")))
	req.Header.Set("Content-Encoding", "gzip")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for broken gzip, got %d", resp.Code)
	}

	buf.Reset()
	gz = gzip.NewWriter(&buf)
	_, _ = gz.Write(bytes.Repeat([]byte("a"), 64))
	_ = gz.Close()
	req = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf.Bytes()))
	req.Header.Set("Content-Encoding", "identity, X-Gzip")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected oversized body to fail, got %d", resp.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	var levels []slog.Level
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey {
			levels = append(levels, a.Value.Any().(slog.Level))
		}
		return a
	}})
	logger := slog.New(handler)

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(io.ErrUnexpectedEOF)
		c.Status(http.StatusInternalServerError)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	if len(levels) != 2 || levels[0] != slog.LevelInfo || levels[1] != slog.LevelError {
		t.Fatalf("unexpected log levels %v", levels)
	}
}
