package models

import "time"

type Expense struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index;not null"`
	User        User
	Amount      float64   `gorm:"not null"`
	Description string    `gorm:"size:255"`
	Category    string    `gorm:"size:100;not null"`
	Date        time.Time `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
