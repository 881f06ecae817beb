package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maru-mm/funnel-swiper-completo/internal/config"
)

func scrapeConfig() config.Config {
	var cfg config.Config
	cfg.Scrape.Timeout = 5 * time.Second
	return cfg
}

func TestScrapeFetchCleansAndExtractsTitle(t *testing.T) {
	var gotUA string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<html><head><title> Landing Page </title></head>` +
			`<body><div data-x="v" == $3>content</div> == $12</body></html>`))
	}))
	defer upstream.Close()

	svc := NewScrapeService(scrapeConfig())
	page, err := svc.Fetch(context.Background(), upstream.URL)
	require.NoError(t, err)
	require.Equal(t, BrowserUserAgent, gotUA)
	require.Equal(t, "Landing Page", page.Title)
	require.Contains(t, page.HTML, `<div data-x="v">content</div>`)
	require.NotContains(t, page.HTML, "$3")
	require.NotContains(t, page.HTML, "$12")
}

func TestScrapeFetchFollowsRedirects(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>final</body></html>"))
	}))
	defer final.Close()
	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusFound)
	}))
	defer redirecting.Close()

	svc := NewScrapeService(scrapeConfig())
	page, err := svc.Fetch(context.Background(), redirecting.URL)
	require.NoError(t, err)
	require.Contains(t, page.HTML, "final")
}

func TestScrapeFetchUpstreamStatusError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	svc := NewScrapeService(scrapeConfig())
	_, err := svc.Fetch(context.Background(), upstream.URL)
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, http.StatusNotFound, fe.StatusCode)
	require.Contains(t, fe.Error(), "404")
}

func TestScrapeFetchUnreachableHost(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	svc := NewScrapeService(scrapeConfig())
	_, err := svc.Fetch(context.Background(), upstream.URL)
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	require.Zero(t, fe.StatusCode)
	require.Contains(t, fe.Error(), "request error")
}

func TestScrapeFetchCustomUserAgent(t *testing.T) {
	var gotUA string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer upstream.Close()

	cfg := scrapeConfig()
	cfg.Scrape.UserAgent = "custom-agent/1.0"
	svc := NewScrapeService(cfg)
	_, err := svc.Fetch(context.Background(), upstream.URL)
	require.NoError(t, err)
	require.Equal(t, "custom-agent/1.0", gotUA)
}
