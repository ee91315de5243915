package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	// Optional target for the telegram notification backend.
	TelegramChatID *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
