package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = time.Second

// HealthResponse is the body of GET /health. DB is "up", "down" or
// "disabled" when the service runs without a database handle.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db"`
	CheckedAt time.Time `json:"checked_at"`
}

// HealthCheck is the handler for GET /health and /healthz.
// A failed database ping turns the whole service unhealthy (503).
func (h *Handlers) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Service:   h.ServiceName,
		Version:   h.Version,
		DB:        h.pingDB(c),
		CheckedAt: time.Now().UTC(),
	}

	code := http.StatusOK
	if resp.DB == "down" {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

func (h *Handlers) pingDB(c *gin.Context) string {
	if h.DB == nil {
		return "disabled"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		logError(c, "health_ping", err)
		return "down"
	}
	return "up"
}
