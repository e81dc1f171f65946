package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskflow/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithCategories inserts the user and its starting categories in one transaction.
func (r *UserRepository) CreateWithCategories(ctx context.Context, user *model.User, categories []model.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories", "Tasks").Create(user).Error; err != nil {
			if isDuplicate(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("create user: %w", err)
		}
		for i := range categories {
			categories[i].UserID = user.ID
		}
		if len(categories) == 0 {
			return nil
		}
		if err := tx.Omit("Tasks").Create(&categories).Error; err != nil {
			return fmt.Errorf("create default categories: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user together with every category and task it owns.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete user tasks: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Category{}).Error; err != nil {
			return fmt.Errorf("delete user categories: %w", err)
		}
		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
