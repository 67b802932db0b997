package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "munibudget/internal/errors"
	"munibudget/internal/logger"
)

// respondWithError writes the API's error shape {"success":false,"message":...}.
// If the error is an *AppError it uses the error's status code and message.
// Otherwise it logs the unexpected error and returns a generic server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"success": false,
			"message": appErr.Message,
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"success": false,
		"message": apperrors.ErrInternalServer.Message,
	})
}
