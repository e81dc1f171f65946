package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/model"
)

func (h *Handler) Register(c *gin.Context) {
	var in credentialsIn
	if !bindJSON(c, &in) {
		return
	}

	user, err := h.users.Register(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.log.Info("user registered", zap.Uint("userID", user.ID))
	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var in credentialsIn
	if !bindJSON(c, &in) {
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, user)
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userOut{ID: user.ID, Username: user.Username})
}

func (h *Handler) respondWithToken(c *gin.Context, status int, user *model.User) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(status, authOut{Token: token, Username: user.Username})
}
