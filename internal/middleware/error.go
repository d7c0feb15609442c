package middleware

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "kasatakip/internal/errors"
	"kasatakip/internal/logger"
)

// ErrorHandler renders the last error attached to the context with c.Error,
// unless a handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		RenderError(c, c.Errors.Last().Err)
	}
}

// Recovery turns a panic into an INTERNAL_ERROR response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		RenderError(c, fmt.Errorf("panic: %v", recovered))
	})
}

// RenderError writes err as {"error":{"code","message"}}. AppErrors keep their
// status and code; anything else is logged and becomes INTERNAL_ERROR.
func RenderError(c *gin.Context, err error) {
	log := logger.Get()

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		log.Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"user_id", c.GetString(UserIDKey),
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil || appErr.Kind == apperrors.KindAtomicUnit {
		log.Errorw("app error",
			"code", appErr.Code,
			"kind", appErr.Kind,
			"message", appErr.Message,
			"internal", errorText(appErr.Internal),
			"path", c.Request.URL.Path,
			"user_id", c.GetString(UserIDKey),
		)
	}

	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
