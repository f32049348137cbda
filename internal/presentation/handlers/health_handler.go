package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness. It does not call the upstream.
type HealthHandler struct {
	upstream string
}

// NewHealthHandler creates a health handler reporting upstreamBase, with any
// userinfo password redacted.
func NewHealthHandler(upstreamBase string) *HealthHandler {
	if u, err := url.Parse(upstreamBase); err == nil {
		upstreamBase = u.Redacted()
	}
	return &HealthHandler{upstream: upstreamBase}
}

// Health handles GET /health
// @Summary Health check
// @Description Returns the health status of the service and the upstream it lists from
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "healthy",
		Message:  "Service is running",
		Upstream: h.upstream,
	})
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status" example:"healthy"`
	Message  string `json:"message" example:"Service is running"`
	Upstream string `json:"upstream" example:"https://api.github.com"`
}
