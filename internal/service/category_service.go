package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

const (
	maxCategoryNameLen  = 50
	maxCategoryColorLen = 20
)

// CategoryPatch lists the fields a category update touches.
type CategoryPatch struct {
	Name  *string
	Color *string
}

// CategoryService provides helpers around categories.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create adds a category. An empty color falls back to model.DefaultCategoryColor.
func (s *CategoryService) Create(ctx context.Context, userID uint, name, color string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validation("category name is required")
	}
	if err := checkCategoryFields(name, color); err != nil {
		return nil, err
	}
	if color == "" {
		color = model.DefaultCategoryColor
	}

	category := model.Category{UserID: userID, Name: name, Color: color}
	if err := s.repo.Create(ctx, &category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("category name already exists")
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, categoryID uint, patch CategoryPatch) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, userID, categoryID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, notFound("category not found")
	case err != nil:
		return nil, err
	}

	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" && name != category.Name {
			category.Name = name
		}
	}
	if patch.Color != nil {
		category.Color = *patch.Color
	}
	if err := checkCategoryFields(category.Name, category.Color); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("category name already exists")
		}
		return nil, err
	}
	return category, nil
}

// Delete refuses to remove a category that still has tasks.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uint) error {
	err := s.repo.DeleteUnused(ctx, userID, categoryID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound("category not found")
	case errors.Is(err, repository.ErrInUse):
		return conflict("category still has tasks")
	}
	return err
}

func checkCategoryFields(name, color string) error {
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return validation("category name must be at most 50 characters")
	}
	if utf8.RuneCountInString(color) > maxCategoryColorLen {
		return validation("color must be at most 20 characters")
	}
	return nil
}
