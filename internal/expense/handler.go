package expense

import (
	"fmt"
	"time"

	"spendtrack-backend/internal/audit"
	"spendtrack-backend/internal/auth"
	"spendtrack-backend/internal/budget"
	"spendtrack-backend/internal/ledger"
	"spendtrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateExpenseRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"` // "2025-09-14", optional
}

type UpdateExpenseRequest struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
}

type ExpenseResponse struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	Spent     float64           `json:"spent"`
	Remaining *float64          `json:"remaining"`
}

func toResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date.UTC().Format("2006-01-02"),
	}
}

// POST /api/expenses
func CreateExpenseHandler(ld *ledger.Store, guard *budget.Guard, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var date time.Time
		if body.Date != "" {
			date, err = time.ParseInLocation("2006-01-02", body.Date, time.UTC)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Date must be 'YYYY-MM-DD'")
			}
		}

		exp, err := ld.Record(userID, body.Amount, body.Description, body.Category, date)
		if err != nil {
			return err
		}

		rec.Record(userID, "expense", exp.ID, models.AuditActionCreate,
			fmt.Sprintf("Expense added: %s - %.2f", exp.Category, exp.Amount))

		// Over-budget check for the current month. Notification outcome is a
		// side effect and never part of the creation contract.
		guard.AfterCreate(userID)

		return c.Status(fiber.StatusCreated).JSON(toResponse(exp))
	}
}

// GET /api/expenses?limit=20&skip=0&month=2025-09
func ListExpensesHandler(ld *ledger.Store, budgets *budget.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		limit := c.QueryInt("limit", 20)
		skip := c.QueryInt("skip", 0)
		month := c.Query("month")

		rows, err := ld.List(userID, month, limit, skip)
		if err != nil {
			return err
		}

		res := ListExpensesResponse{
			Expenses: make([]ExpenseResponse, 0, len(rows)),
		}
		for i := range rows {
			res.Expenses = append(res.Expenses, toResponse(&rows[i]))
		}

		// spent/remaining cover the whole month, not just the returned page.
		if month != "" {
			start, end, err := ledger.MonthRange(month)
			if err != nil {
				return err
			}
			spent, err := ld.SumRange(userID, start, end)
			if err != nil {
				return err
			}
			res.Spent = spent

			b, err := budgets.Find(userID, month)
			if err != nil {
				return err
			}
			if b != nil {
				remaining := b.Limit - spent
				res.Remaining = &remaining
			}
		}

		return c.JSON(res)
	}
}

// PUT /api/expenses/:id
func UpdateExpenseHandler(ld *ledger.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid expense id")
		}

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		patch := ledger.Patch{
			Amount:      body.Amount,
			Description: body.Description,
			Category:    body.Category,
		}
		if body.Date != nil {
			d, err := time.ParseInLocation("2006-01-02", *body.Date, time.UTC)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Date must be 'YYYY-MM-DD'")
			}
			patch.Date = &d
		}

		exp, err := ld.Update(userID, uint(id), patch)
		if err != nil {
			return err
		}

		rec.Record(userID, "expense", exp.ID, models.AuditActionUpdate,
			fmt.Sprintf("Expense updated: %s - %.2f", exp.Category, exp.Amount))

		return c.JSON(toResponse(exp))
	}
}

// DELETE /api/expenses/:id
func DeleteExpenseHandler(ld *ledger.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid expense id")
		}

		if err := ld.Remove(userID, uint(id)); err != nil {
			return err
		}

		rec.Record(userID, "expense", uint(id), models.AuditActionDelete, "Expense deleted")

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Deleted successfully",
		})
	}
}
