package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	appErr := domainerrors.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", appErr.Status),
			zap.Error(err),
		)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message,
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
		"error":   message,
	})
}

// Paginated wraps a page of items with pagination metadata
func Paginated(c *gin.Context, items interface{}, meta interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"meta":  meta,
	})
}
