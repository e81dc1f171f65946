package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/service"
)

func abortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, messageOut{Message: msg})
}

// writeError maps service error kinds to HTTP statuses. Anything else is logged
// and reported as a bare 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		h.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("requestID", c.GetString(ctxRequestID)),
			zap.Error(err),
		)
		abortMessage(c, http.StatusInternalServerError, "internal server error")
		return
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		abortMessage(c, http.StatusBadRequest, svcErr.Message)
	case errors.Is(err, service.ErrUnauthorized):
		abortMessage(c, http.StatusUnauthorized, svcErr.Message)
	case errors.Is(err, service.ErrNotFound):
		abortMessage(c, http.StatusNotFound, svcErr.Message)
	case errors.Is(err, service.ErrConflict):
		abortMessage(c, http.StatusConflict, svcErr.Message)
	default:
		abortMessage(c, http.StatusInternalServerError, "internal server error")
	}
}
