package ledger

import (
	"errors"
	"strings"
	"time"

	"spendtrack-backend/internal/apperr"
	"spendtrack-backend/internal/models"

	"gorm.io/gorm"
)

// Store persists expense records and answers date-ranged aggregations.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Patch carries the updatable expense fields; nil means "leave unchanged".
type Patch struct {
	Amount      *float64
	Description *string
	Category    *string
	Date        *time.Time
}

// Record validates and persists one expense. A zero date defaults to now (UTC).
func (s *Store) Record(userID uint, amount float64, description, category string, date time.Time) (*models.Expense, error) {
	if amount <= 0 {
		return nil, apperr.Validation("amount and category required")
	}
	if strings.TrimSpace(category) == "" {
		return nil, apperr.Validation("amount and category required")
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	exp := models.Expense{
		UserID:      userID,
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
	}
	if err := s.db.Create(&exp).Error; err != nil {
		return nil, err
	}
	return &exp, nil
}

// List returns the user's expenses, newest occurrence first. month ("YYYY-MM")
// is optional; limit/skip paginate the result.
func (s *Store) List(userID uint, month string, limit, skip int) ([]models.Expense, error) {
	q := s.db.Where("user_id = ?", userID)

	if month != "" {
		start, end, err := MonthRange(month)
		if err != nil {
			return nil, err
		}
		q = q.Where("date >= ? AND date < ?", start, end)
	}

	var rows []models.Expense
	err := q.Order("date desc, id desc").Limit(limit).Offset(skip).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SumRange totals the user's amounts over [start, end). No matching rows sum
// to exactly 0.
func (s *Store) SumRange(userID uint, start, end time.Time) (float64, error) {
	var total float64
	err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Update overwrites the provided fields of an expense owned by userID.
func (s *Store) Update(userID, id uint, patch Patch) (*models.Expense, error) {
	var exp models.Expense
	err := s.db.First(&exp, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, apperr.Validation("amount must be greater than zero")
		}
		exp.Amount = *patch.Amount
	}
	if patch.Description != nil {
		exp.Description = *patch.Description
	}
	if patch.Category != nil {
		if strings.TrimSpace(*patch.Category) == "" {
			return nil, apperr.Validation("category cannot be empty")
		}
		exp.Category = *patch.Category
	}
	if patch.Date != nil {
		exp.Date = *patch.Date
	}

	if err := s.db.Save(&exp).Error; err != nil {
		return nil, err
	}
	return &exp, nil
}

// Remove deletes an expense owned by userID.
func (s *Store) Remove(userID, id uint) error {
	res := s.db.Delete(&models.Expense{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
