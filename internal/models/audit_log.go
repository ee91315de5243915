package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog - write-only trail of expense/budget mutations, scoped to the user
// who performed them.
type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID   uint   `gorm:"index;not null"`
	UserName string `gorm:"size:100"` // denormalized for display

	// "expense" or "budget"
	EntityType string `gorm:"size:50;index"`
	EntityID   uint   `gorm:"index"`

	Action      AuditAction `gorm:"size:20"`
	Description string      `gorm:"size:255"`
}
