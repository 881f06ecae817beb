package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/maru-mm/funnel-swiper-completo/internal/services"
	"github.com/maru-mm/funnel-swiper-completo/internal/utils"
)

// ScreenshotRequest 为截图端点的请求体；apiKey 为调用方自己的 ScreenshotOne 密钥。
type ScreenshotRequest struct {
	URL    string `json:"url" binding:"required"`
	APIKey string `json:"apiKey" binding:"required"`
	Device string `json:"device"`
}

// ScreenshotResponse 返回内联的 data URL，前端可直接作为 <img> src 使用。
type ScreenshotResponse struct {
	URL string `json:"url"`
}

// screenshot 截取目标页面的整页截图并以 data URL 返回。
// 与上游行为保持一致：包括 URL 规范化失败在内的所有错误均返回 500。
// @Summary      页面截图
// @Description  调用 ScreenshotOne 截取整页 PNG，以 base64 data URL 返回
// @Tags         api
// @Accept       json
// @Produce      json
// @Param        body  body   ScreenshotRequest  true  "截图请求体"
// @Success      200   {object} ScreenshotResponse
// @Failure      500   {object} map[string]string
// @Router       /api/screenshot [post]
func (h *Handler) screenshot(c *gin.Context) {
	var req ScreenshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid_request", "error_description": "bad json"})
		return
	}
	device := req.Device
	if device == "" {
		device = services.DeviceDesktop
	}

	normalized, err := utils.NormalizeURL(req.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	img, err := h.screenshotSvc.Capture(c, normalized, req.APIKey, device)
	if err != nil {
		log.WithFields(log.Fields{
			"url":        normalized,
			"device":     device,
			"request_id": c.GetString("request_id"),
		}).WithError(err).Warn("screenshot capture failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error capturing screenshot: " + err.Error()})
		return
	}

	setNoCache(c)
	c.JSON(http.StatusOK, ScreenshotResponse{URL: utils.BytesToDataURL(img, "image/png")})
}
