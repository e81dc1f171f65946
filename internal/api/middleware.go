package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskflow/internal/auth"
)

const (
	ctxUserID    = "uid"
	ctxRequestID = "requestID"
)

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	})
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.New().String()
		c.Set(ctxRequestID, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		log.Info("request",
			zap.String("requestID", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("clientIP", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// requireAuth rejects requests without a valid bearer token and stores the caller's id.
func requireAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortMessage(c, http.StatusUnauthorized, "missing authorization header")
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			abortMessage(c, http.StatusUnauthorized, "authorization header must be a bearer token")
			return
		}

		userID, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			abortMessage(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(ctxUserID, userID)
		c.Next()
	}
}

// currentUserID returns the id stored by requireAuth.
func currentUserID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}
