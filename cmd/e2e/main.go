package main

// 端到端巡检工具：对一个运行中的实例依次验证健康检查、页面抓取，
// 以及（在提供 ScreenshotOne 密钥时）截图端点。

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

var verbose bool
var baseURL *url.URL

// scenario 封装一次端到端巡检过程中共享的资源。
type scenario struct {
	client *http.Client
	apiKey string
}

func banner(title string) {
	log.Printf("\n=== %s ===", title)
}

func step(format string, args ...interface{}) {
	log.Printf(" • "+format, args...)
}

type scrapeResult struct {
	Content string `json:"content"`
	Title   string `json:"title"`
}

type screenshotResult struct {
	URL string `json:"url"`
}

func main() {
	var (
		base    string
		target  string
		apiKey  string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://127.0.0.1:8080", "Base URL of the running server")
	flag.StringVar(&target, "target", "example.com", "URL to scrape during the check (scheme optional)")
	flag.StringVar(&apiKey, "key", "", "ScreenshotOne access key; empty skips the screenshot check")
	flag.DurationVar(&timeout, "timeout", 90*time.Second, "HTTP timeout for requests")
	flag.BoolVar(&verbose, "v", true, "Verbose logging")
	flag.Parse()

	var err error
	baseURL, err = url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		log.Fatalf("parse base url: %v", err)
	}

	s := &scenario{client: &http.Client{Timeout: timeout}, apiKey: apiKey}

	banner("healthz")
	s.checkHealth()

	banner("scrape-url")
	s.checkScrape(target)

	if apiKey != "" {
		banner("screenshot")
		s.checkScreenshot(target)
	} else {
		step("no -key provided, skipping screenshot check")
	}

	banner("done")
}

func (s *scenario) checkHealth() {
	resp, err := s.client.Get(baseURL.String() + "/healthz")
	if err != nil {
		log.Fatalf("healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("healthz: unexpected status %d", resp.StatusCode)
	}
	step("server healthy")
}

func (s *scenario) checkScrape(target string) {
	var out scrapeResult
	s.postJSON("/api/scrape-url", map[string]string{"url": target}, &out)
	if out.Content == "" {
		log.Fatalf("scrape-url: empty content for %s", target)
	}
	if _, err := html.Parse(strings.NewReader(out.Content)); err != nil {
		log.Fatalf("scrape-url: content is not parseable html: %v", err)
	}
	step("scraped %s (%d bytes, title %q)", target, len(out.Content), out.Title)
}

func (s *scenario) checkScreenshot(target string) {
	var out screenshotResult
	s.postJSON("/api/screenshot", map[string]string{"url": target, "apiKey": s.apiKey}, &out)
	if !strings.HasPrefix(out.URL, "data:image/png;base64,") {
		log.Fatalf("screenshot: response is not a png data url")
	}
	step("captured %s (%d chars of data url)", target, len(out.URL))
}

func (s *scenario) postJSON(path string, body interface{}, out interface{}) {
	b, _ := json.Marshal(body)
	resp, err := s.client.Post(baseURL.String()+path, "application/json", bytes.NewReader(b))
	if err != nil {
		log.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("POST %s: status %d body %s", path, resp.StatusCode, truncate(string(raw), 300))
	}
	if verbose {
		step("POST %s -> %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Fatalf("POST %s: decode response: %v", path, err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s...(%d bytes)", s[:n], len(s))
}
