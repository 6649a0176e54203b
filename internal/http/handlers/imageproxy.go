package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velmora/brandpulse-backend/internal/http/response"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

// ImageProxyHandler streams remote images through the backend so the
// browser never hits CDN hosts that block cross-origin embeds.
type ImageProxyHandler struct {
	log        *logger.Logger
	httpClient *http.Client
}

func NewImageProxyHandler(log *logger.Logger) *ImageProxyHandler {
	return &ImageProxyHandler{
		log:        log.With("handler", "ImageProxy"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// GET /api/image-proxy?url=...
func (h *ImageProxyHandler) Proxy(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_url", fmt.Errorf("url query parameter is required"))
		return
	}

	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		response.RespondError(c, http.StatusBadRequest, "invalid_url", fmt.Errorf("only http and https urls are allowed"))
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, parsed.String(), nil)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_url", err)
		return
	}
	// Some CDNs refuse requests without a browser-ish user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; brandpulse/1.0)")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		response.RespondError(c, http.StatusBadGateway, "fetch_failed", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		response.RespondError(c, http.StatusBadGateway, "fetch_failed", fmt.Errorf("upstream returned %d", resp.StatusCode))
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		contentType = "image/jpeg"
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		h.log.Warn("image proxy stream interrupted", "error", err)
	}
}
