package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/internal/health"
	"github.com/Ayash-Bera/copilot-chatbot/pkg/utils"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health reports every registered dependency.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	report := h.checker.CheckAll(ctx)
	if report.Status != health.StatusHealthy {
		utils.ErrorResponseWithData(c, http.StatusServiceUnavailable, "Service unhealthy", report)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Service healthy", report)
}
