package budget

import (
	"errors"

	"spendtrack-backend/internal/apperr"
	"spendtrack-backend/internal/ledger"
	"spendtrack-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists one spending limit per (user, month). Budgets are only ever
// created or replaced, never deleted.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Upsert creates or replaces the budget for (userID, month). Idempotent:
// repeated calls with the same inputs leave the same stored state.
func (s *Store) Upsert(userID uint, month string, limit float64) (*models.Budget, error) {
	if month == "" || limit <= 0 {
		return nil, apperr.Validation("month and limit required")
	}
	if _, _, err := ledger.MonthRange(month); err != nil {
		return nil, err
	}

	b := models.Budget{
		UserID: userID,
		Month:  month,
		Limit:  limit,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"limit", "updated_at"}),
	}).Create(&b).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored row (Create leaves a zero ID on
	// the conflict path with some drivers).
	var stored models.Budget
	if err := s.db.First(&stored, "user_id = ? AND month = ?", userID, month).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// Find returns the budget for (userID, month), or nil when none has been set.
// Absence is not an error.
func (s *Store) Find(userID uint, month string) (*models.Budget, error) {
	var b models.Budget
	err := s.db.First(&b, "user_id = ? AND month = ?", userID, month).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
