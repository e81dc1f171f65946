package model

import "time"

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#6366f1"

// Category groups tasks by area (work, health, study, etc.).
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_category_name"`
	Name      string `gorm:"size:50;not null;uniqueIndex:idx_user_category_name"`
	Color     string `gorm:"size:20"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID"`
}

// DefaultCategories returns the set created for every new account.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Work", Color: "#6366f1"},
		{Name: "Personal", Color: "#22c55e"},
		{Name: "Study", Color: "#f59e0b"},
		{Name: "Health", Color: "#ef4444"},
	}
}
