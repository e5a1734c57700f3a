package middleware

import (
	"errors"
	"net/http"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log := logger.FromContext(c.Request.Context())

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				log.Error("Request failed",
					"path", c.FullPath(),
					"kind", appErr.Kind,
					"error", appErr.Err,
				)
			}
			response.Fail(c, appErr)
			return
		}

		// Never expose internal error details to clients
		log.Error("Internal Server Error", "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.",
			apperror.KindInternal)
	}
}
