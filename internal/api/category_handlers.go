package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow/internal/service"
)

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]categoryOut, 0, len(categories))
	for _, cat := range categories {
		out = append(out, newCategoryOut(cat))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var in categoryIn
	if !bindJSON(c, &in) {
		return
	}

	color := ""
	if in.Color != nil {
		color = *in.Color
	}
	category, err := h.categories.Create(c.Request.Context(), currentUserID(c), in.Name, color)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCategoryOut(*category))
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}
	var in categoryIn
	if !bindJSON(c, &in) {
		return
	}

	category, err := h.categories.Update(c.Request.Context(), currentUserID(c), id, service.CategoryPatch{
		Name:  &in.Name,
		Color: in.Color,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryOut(*category))
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}

	if err := h.categories.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageOut{Message: "category deleted"})
}
