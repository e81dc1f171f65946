package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskflow/internal/model"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Omit("Tasks").Create(category).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// ListByUser returns the user's categories in insertion order.
func (r *CategoryRepository) ListByUser(ctx context.Context, userID uint) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, userID, categoryID uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, categoryID).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	err := r.db.WithContext(ctx).Model(category).
		Updates(map[string]interface{}{"name": category.Name, "color": category.Color}).Error
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// DeleteUnused removes the category unless one of the user's tasks still points at it.
func (r *CategoryRepository) DeleteUnused(ctx context.Context, userID, categoryID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.Where("user_id = ? AND id = ?", userID, categoryID).First(&category).Error; err != nil {
			return err
		}

		var inUse int64
		if err := tx.Model(&model.Task{}).
			Where("user_id = ? AND category_id = ?", userID, categoryID).
			Count(&inUse).Error; err != nil {
			return fmt.Errorf("count category tasks: %w", err)
		}
		if inUse > 0 {
			return ErrInUse
		}

		if err := tx.Delete(&category).Error; err != nil {
			if isForeignKeyViolation(err) {
				return ErrInUse
			}
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}
