package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

const maxTitleLen = 200

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	CategoryID  *uint
	Priority    string
	Status      string
	DueDate     string
}

// TaskPatch lists the fields an update touches. Nil pointers are left alone.
type TaskPatch struct {
	Title       *string
	Description *string
	// SetCategory applies CategoryID, which may be nil to clear the category.
	SetCategory bool
	CategoryID  *uint
	Priority    *string
	Status      *string
	DueDate     *string
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

func (s *TaskService) List(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, notFound("task not found")
	case err != nil:
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validation("task title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return nil, validation("task title must be at most 200 characters")
	}

	task := model.Task{
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		Priority:    model.PriorityMedium,
		Status:      model.StatusPending,
	}

	if input.Priority != "" {
		p, err := parsePriority(input.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = p
	}
	if input.Status != "" {
		st, err := parseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		task.Status = st
	}

	due, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}
	task.DueDate = due

	if err := s.checkCategory(ctx, userID, input.CategoryID); err != nil {
		return nil, err
	}
	task.CategoryID = input.CategoryID

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies patch to the user's task. A blank title keeps the current one.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, patch TaskPatch) (*model.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if title := strings.TrimSpace(*patch.Title); title != "" {
			if utf8.RuneCountInString(title) > maxTitleLen {
				return nil, validation("task title must be at most 200 characters")
			}
			task.Title = title
		}
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.SetCategory {
		if err := s.checkCategory(ctx, userID, patch.CategoryID); err != nil {
			return nil, err
		}
		task.CategoryID = patch.CategoryID
	}
	if patch.Priority != nil {
		p, err := parsePriority(*patch.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = p
	}
	if patch.Status != nil {
		st, err := parseStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		task.Status = st
	}
	if patch.DueDate != nil {
		due, err := parseDueDate(*patch.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = due
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	err := s.taskRepo.Delete(ctx, userID, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("task not found")
	}
	return err
}

// checkCategory rejects category ids the user does not own.
func (s *TaskService) checkCategory(ctx context.Context, userID uint, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.categoryRepo.FindByID(ctx, userID, *categoryID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound("category not found")
	case err != nil:
		return err
	}
	return nil
}

func parsePriority(raw string) (model.Priority, error) {
	p := model.Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", validation("priority must be one of high, medium, low")
	}
	return p, nil
}

func parseStatus(raw string) (model.Status, error) {
	st := model.Status(strings.ToLower(strings.TrimSpace(raw)))
	if !st.Valid() {
		return "", validation("status must be pending or done")
	}
	return st, nil
}

// parseDueDate maps an empty value to no due date.
func parseDueDate(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if _, err := time.Parse(model.DueDateLayout, raw); err != nil {
		return nil, validation("due date must be in YYYY-MM-DD format")
	}
	return &raw, nil
}
