package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow/internal/service"
)

func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]taskOut, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskOut(t))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetTask(c *gin.Context) {
	id, ok := pathID(c, "task")
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskOut(*task))
}

func (h *Handler) CreateTask(c *gin.Context) {
	var in createTaskIn
	if !bindJSON(c, &in) {
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), currentUserID(c), service.TaskInput{
		Title:       in.Title,
		Description: in.Desc,
		CategoryID:  in.CategoryID,
		Priority:    in.Priority,
		Status:      in.Status,
		DueDate:     in.DueDate,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskOut(*task))
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, "task")
	if !ok {
		return
	}
	var in updateTaskIn
	if !bindJSON(c, &in) {
		return
	}

	patch := service.TaskPatch{
		Title:       in.Title.ptr(),
		SetCategory: in.CategoryID.Set,
		CategoryID:  in.CategoryID.ptr(),
		Priority:    in.Priority.ptr(),
		Status:      in.Status.ptr(),
	}
	// null clears desc and due_date.
	if in.Desc.Set {
		desc := in.Desc.Value
		patch.Description = &desc
	}
	if in.DueDate.Set {
		due := in.DueDate.Value
		patch.DueDate = &due
	}

	task, err := h.tasks.Update(c.Request.Context(), currentUserID(c), id, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskOut(*task))
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c, "task")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageOut{Message: "task deleted"})
}
