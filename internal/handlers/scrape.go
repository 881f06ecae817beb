package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/maru-mm/funnel-swiper-completo/internal/utils"
)

// ScrapeURLRequest 为抓取端点的请求体。
type ScrapeURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// ScrapeURLResponse 携带清理后的完整页面 HTML 与解析出的标题。
type ScrapeURLResponse struct {
	Content string `json:"content"`
	Title   string `json:"title,omitempty"`
}

// scrapeURL 抓取目标页面的完整 HTML（响应体），供后续导入编辑器使用。
// 使用浏览器 UA 并跟随重定向；JS 渲染的内容需要无头浏览器，不在范围内。
// @Summary      抓取页面 HTML
// @Description  获取目标 URL 的完整 HTML 文档并清理检查器残留
// @Tags         api
// @Accept       json
// @Produce      json
// @Param        body  body   ScrapeURLRequest  true  "抓取请求体"
// @Success      200   {object} ScrapeURLResponse
// @Failure      400   {object} map[string]string
// @Failure      502   {object} map[string]string
// @Router       /api/scrape-url [post]
func (h *Handler) scrapeURL(c *gin.Context) {
	var req ScrapeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "bad json"})
		return
	}

	normalized, err := utils.NormalizeURL(req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.scrapeSvc.Fetch(c, normalized)
	if err != nil {
		log.WithFields(log.Fields{
			"url":        normalized,
			"request_id": c.GetString("request_id"),
		}).WithError(err).Warn("scrape failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	log.WithFields(log.Fields{
		"url":        normalized,
		"title":      page.Title,
		"bytes":      len(page.HTML),
		"request_id": c.GetString("request_id"),
	}).Info("page scraped")
	c.JSON(http.StatusOK, ScrapeURLResponse{Content: page.HTML, Title: page.Title})
}
