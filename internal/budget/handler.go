package budget

import (
	"fmt"

	"spendtrack-backend/internal/audit"
	"spendtrack-backend/internal/auth"
	"spendtrack-backend/internal/ledger"
	"spendtrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SetBudgetRequest struct {
	Month string  `json:"month"` // "2025-09"
	Limit float64 `json:"limit"`
}

type BudgetResponse struct {
	ID     uint    `json:"id"`
	UserID uint    `json:"user_id"`
	Month  string  `json:"month"`
	Limit  float64 `json:"limit"`
}

type BudgetStatusResponse struct {
	Month string  `json:"month"`
	Limit float64 `json:"limit"`
	Spent float64 `json:"spent"`
}

// POST /api/budget
func SetBudgetHandler(store *Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body SetBudgetRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		b, err := store.Upsert(userID, body.Month, body.Limit)
		if err != nil {
			return err
		}

		rec.Record(userID, "budget", b.ID, models.AuditActionUpdate,
			fmt.Sprintf("Budget set: %s - %.2f", b.Month, b.Limit))

		return c.JSON(BudgetResponse{
			ID:     b.ID,
			UserID: b.UserID,
			Month:  b.Month,
			Limit:  b.Limit,
		})
	}
}

// GET /api/budget?month=2025-09
//
// The month defaults to the current one. A month with no budget reports
// limit 0; spent is always computed live.
func GetBudgetHandler(guard *Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		month := c.Query("month")
		if month == "" {
			month = ledger.CurrentMonth()
		}

		st, err := guard.Status(userID, month)
		if err != nil {
			return err
		}

		return c.JSON(BudgetStatusResponse{
			Month: st.Month,
			Limit: st.Limit,
			Spent: st.Spent,
		})
	}
}
