package model

import "time"

// User is an account that owns categories and tasks.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:256;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Categories   []Category `gorm:"foreignKey:UserID"`
	Tasks        []Task     `gorm:"foreignKey:UserID"`
}
