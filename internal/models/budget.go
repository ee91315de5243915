package models

import "time"

// Budget - one spending limit per (user, month). Month is "YYYY-MM".
type Budget struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"uniqueIndex:idx_budgets_user_month;not null"`
	User   User
	Month  string  `gorm:"size:7;uniqueIndex:idx_budgets_user_month;not null"`
	Limit  float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
