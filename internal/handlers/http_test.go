package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/maru-mm/funnel-swiper-completo/internal/config"
	"github.com/maru-mm/funnel-swiper-completo/internal/services"
)

// newTestRouter 组装一个不带 Redis 的最小路由，截图端点指向给定上游。
func newTestRouter(t *testing.T, screenshotEndpoint string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var cfg config.Config
	cfg.Screenshot.Endpoint = screenshotEndpoint
	cfg.Screenshot.Timeout = 5 * time.Second
	cfg.Scrape.Timeout = 5 * time.Second
	h := New(cfg, services.NewScreenshotService(cfg), services.NewScrapeService(cfg), nil)
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, "http://127.0.0.1:1")
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestScreenshotReturnsDataURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer upstream.Close()

	r := newTestRouter(t, upstream.URL)
	w := postJSON(t, r, "/api/screenshot", map[string]string{"url": "example.com", "apiKey": "k"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ScreenshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "data:image/png;base64,cG5nLWJ5dGVz", resp.URL)
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestScreenshotUnsupportedProtocolReturns500(t *testing.T) {
	r := newTestRouter(t, "http://127.0.0.1:1")
	w := postJSON(t, r, "/api/screenshot", map[string]string{"url": "ftp://x.com", "apiKey": "k"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "unsupported protocol")
}

func TestScreenshotUpstreamFailureReturns500(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer upstream.Close()

	r := newTestRouter(t, upstream.URL)
	w := postJSON(t, r, "/api/screenshot", map[string]string{"url": "example.com", "apiKey": "bad"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Error capturing screenshot")
}

func TestScreenshotMissingFieldsReturns500(t *testing.T) {
	r := newTestRouter(t, "http://127.0.0.1:1")
	w := postJSON(t, r, "/api/screenshot", map[string]string{"url": "example.com"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestScrapeURLSuccess(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>T</title></head><body hidden == $5>hello</body></html>`))
	}))
	defer page.Close()

	r := newTestRouter(t, "http://127.0.0.1:1")
	w := postJSON(t, r, "/api/scrape-url", map[string]string{"url": page.URL})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ScrapeURLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp.Content, "<body hidden>hello</body>")
	require.Equal(t, "T", resp.Title)
}

func TestScrapeURLMalformedSchemeReturns400(t *testing.T) {
	r := newTestRouter(t, "http://127.0.0.1:1")
	w := postJSON(t, r, "/api/scrape-url", map[string]string{"url": "ftp://x.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "unsupported protocol")
}

func TestScrapeURLUnreachableHostReturns502(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	r := newTestRouter(t, "http://127.0.0.1:1")
	w := postJSON(t, r, "/api/scrape-url", map[string]string{"url": dead.URL})
	require.Equal(t, http.StatusBadGateway, w.Code)
}

func TestScrapeURLMissingURLReturns400(t *testing.T) {
	r := newTestRouter(t, "http://127.0.0.1:1")
	w := postJSON(t, r, "/api/scrape-url", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
