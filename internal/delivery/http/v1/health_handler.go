package v1

import (
	"net/http"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

func NewHealthHandler(r *gin.RouterGroup, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	r.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Health check
// @Description  Liveness plus a database ping. Auxiliary dependencies only degrade the status.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response{data=map[string]string}
// @Failure      503  {object}  response.Response{data=map[string]string}
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status, healthy := h.healthUC.Check(c.Request.Context())
	if !healthy {
		response.Degraded(c, http.StatusServiceUnavailable, "Service unavailable", status)
		return
	}
	response.Success(c, http.StatusOK, "System operational", status)
}
