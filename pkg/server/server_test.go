package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bookvault/bookvault/pkg/config"
	"github.com/bookvault/bookvault/pkg/database"
	"github.com/bookvault/bookvault/pkg/migrations"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.NewForTest()
	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	srv, err := New(cfg, db)
	require.NoError(t, err)
	return srv.Handler
}

func TestServer_Health(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(echo.HeaderXRequestID))
}

func TestServer_UnknownRoute(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set("Accept-Language", "ar")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	resp := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "خطأ", resp["status"])
	assert.Equal(t, "not_found", resp["code"])
	assert.Equal(t, "Page not found.", resp["message"])
}

func TestServer_BookRoundTrip(t *testing.T) {
	h := newTestServer(t)

	payload := `{"title":"middlemarch","author":"george eliot","published_at":"01-12-1871","is_active":true}`
	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "en", rr.Header().Get("Content-Language"))

	req = httptest.NewRequest(http.MethodGet, "/books?locale=ar", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := struct {
		Status string `json:"status"`
		Books  struct {
			Info []struct {
				Title    string `json:"title"`
				IsActive string `json:"is_active"`
			} `json:"info"`
			Total int `json:"total"`
		} `json:"books"`
	}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Books.Info, 1)
	assert.Equal(t, "Middlemarch", resp.Books.Info[0].Title)
	assert.Equal(t, "نشط", resp.Books.Info[0].IsActive)
	assert.Equal(t, 1, resp.Books.Total)
}
