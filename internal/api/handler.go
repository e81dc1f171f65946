package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/auth"
	"taskflow/internal/service"
)

// Handler holds everything the routes need. It is built once at startup.
type Handler struct {
	users      *service.UserService
	tasks      *service.TaskService
	categories *service.CategoryService
	tokens     *auth.TokenIssuer
	log        *zap.Logger
}

func NewHandler(users *service.UserService, tasks *service.TaskService, categories *service.CategoryService, tokens *auth.TokenIssuer, log *zap.Logger) *Handler {
	return &Handler{
		users:      users,
		tasks:      tasks,
		categories: categories,
		tokens:     tokens,
		log:        log,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSON decodes the body into dst. An empty body decodes as {}.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		abortMessage(c, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// pathID parses the :id segment. Ids that cannot exist are reported as missing.
func pathID(c *gin.Context, what string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		abortMessage(c, http.StatusNotFound, what+" not found")
		return 0, false
	}
	return uint(id), true
}
