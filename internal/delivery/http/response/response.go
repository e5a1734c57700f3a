package response

import (
	"go-careers-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the request id middleware writes.
const RequestIDKey = "RequestID"

// Response is the envelope every careers endpoint answers with.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorBody carries the machine-readable failure kind. Driver errors and
// stack details never reach it.
type ErrorBody struct {
	Kind apperror.Kind `json:"kind"`
}

// RequestID returns the id tagged on the request, or "" outside the middleware chain.
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: RequestID(c),
	})
}

// Fail renders an AppError with its own status code, public message and kind.
func Fail(c *gin.Context, err *apperror.AppError) {
	Error(c, err.Code, err.Message, err.Kind)
}

// Error renders a failure of the given kind.
func Error(c *gin.Context, code int, message string, kind apperror.Kind) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     &ErrorBody{Kind: kind},
		RequestID: RequestID(c),
	})
}

// Degraded reports a failed health check while still listing per-dependency status.
func Degraded(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Data:      data,
		RequestID: RequestID(c),
	})
}
