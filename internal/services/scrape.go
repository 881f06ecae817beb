package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/maru-mm/funnel-swiper-completo/internal/config"
	"github.com/maru-mm/funnel-swiper-completo/internal/metrics"
	"github.com/maru-mm/funnel-swiper-completo/internal/utils"
)

// BrowserUserAgent 为抓取使用的桌面 Chrome UA；部分站点对非浏览器 UA 返回占位页。
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// FetchError 表示上游抓取失败；StatusCode 为 0 时代表传输层错误（超时、连接失败等）。
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch URL: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("request error: %v. Check that the URL is reachable", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Page 为一次抓取的结果：清理后的完整 HTML 与解析出的标题（可能为空）。
type Page struct {
	HTML  string
	Title string
}

// ScrapeService 抓取目标页面的原始 HTML，供后续导入编辑器等用途。
// 仅取响应体文本；JS 渲染的内容需要无头浏览器，不在本服务范围内。
type ScrapeService struct {
	cfg   config.Config
	httpc *http.Client
}

// NewScrapeService 构造抓取服务；客户端带配置的整体超时（默认 30s），重定向走默认策略。
func NewScrapeService(cfg config.Config) *ScrapeService {
	timeout := cfg.Scrape.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ScrapeService{cfg: cfg, httpc: &http.Client{Timeout: timeout}}
}

// Fetch 对已规范化的 URL 执行一次 GET，清理检查器残留后返回页面。
// 状态码 >= 400 或传输失败均以 *FetchError 返回。
func (s *ScrapeService) Fetch(ctx context.Context, target string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	ua := s.cfg.Scrape.UserAgent
	if ua == "" {
		ua = BrowserUserAgent
	}
	req.Header.Set("User-Agent", ua)

	start := time.Now()
	resp, err := s.httpc.Do(req)
	metrics.UpstreamLatency.WithLabelValues("scrape").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("scrape").Inc()
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		metrics.UpstreamFailures.WithLabelValues("scrape").Inc()
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("scrape").Inc()
		return nil, &FetchError{Err: err}
	}

	cleaned := utils.CleanScrapedHTML(string(body))
	metrics.PagesScraped.Inc()
	return &Page{HTML: cleaned, Title: extractTitle(cleaned)}, nil
}

// extractTitle 解析 HTML 并返回 <title> 文本；解析失败或缺失时返回空串。
func extractTitle(doc string) string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return ""
	}
	var walk func(*html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.Data == "title" {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			return strings.TrimSpace(sb.String())
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if t := walk(c); t != "" {
				return t
			}
		}
		return ""
	}
	return walk(root)
}
