package expense

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"spendtrack-backend/internal/apperr"
	"spendtrack-backend/internal/audit"
	"spendtrack-backend/internal/auth"
	"spendtrack-backend/internal/budget"
	"spendtrack-backend/internal/database"
	"spendtrack-backend/internal/ledger"
	"spendtrack-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type noopNotifier struct{}

func (noopNotifier) Notify(user *models.User, subject, body string) error { return nil }

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func newExpenseApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := testDB(t)
	ld := ledger.NewStore(db)
	budgets := budget.NewStore(db)
	guard := budget.NewGuard(db, ld, budgets, noopNotifier{}, zap.NewNop())
	rec := audit.NewRecorder(db, zap.NewNop())

	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.FiberErrorHandler(zap.NewNop()),
	})
	// Stand-in for the JWT middleware: every request acts as user 1.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, uint(1))
		return c.Next()
	})
	app.Post("/api/expenses", CreateExpenseHandler(ld, guard, rec))
	app.Get("/api/expenses", ListExpensesHandler(ld, budgets))
	app.Put("/api/expenses/:id", UpdateExpenseHandler(ld, rec))
	app.Delete("/api/expenses/:id", DeleteExpenseHandler(ld, rec))

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func TestCreateExpense(t *testing.T) {
	app, _ := newExpenseApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/expenses", CreateExpenseRequest{
		Amount:   42.5,
		Category: "food",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var created ExpenseResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 || created.UserID != 1 || created.Amount != 42.5 {
		t.Errorf("unexpected expense: %+v", created)
	}
	if created.Date != time.Now().UTC().Format("2006-01-02") {
		t.Errorf("omitted date should default to today, got %q", created.Date)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	app, db := newExpenseApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/expenses", CreateExpenseRequest{Amount: 10})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing category status = %d, want 400", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/expenses", CreateExpenseRequest{Category: "food"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing amount status = %d, want 400", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Expense{}).Count(&count)
	if count != 0 {
		t.Errorf("invalid requests persisted %d rows", count)
	}
}

func TestListReportsFullMonthSpendDespitePagination(t *testing.T) {
	app, db := newExpenseApp(t)

	ld := ledger.NewStore(db)
	day := func(d int) time.Time {
		return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
	}
	for d, amount := range map[int]float64{5: 10, 12: 30, 20: 20} {
		if _, err := ld.Record(1, amount, "", "misc", day(d)); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if _, err := budget.NewStore(db).Upsert(1, "2025-01", 100); err != nil {
		t.Fatalf("set budget: %v", err)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/expenses?month=2025-01&limit=1&skip=0", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var res ListExpensesResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(res.Expenses) != 1 {
		t.Errorf("limit=1 should return at most 1 expense, got %d", len(res.Expenses))
	}
	if res.Spent != 60 {
		t.Errorf("spent should cover the full month (60), got %v", res.Spent)
	}
	if res.Remaining == nil || *res.Remaining != 40 {
		t.Errorf("remaining should be limit-spent (40), got %v", res.Remaining)
	}
}

func TestListWithoutBudgetHasNullRemaining(t *testing.T) {
	app, db := newExpenseApp(t)

	ld := ledger.NewStore(db)
	if _, err := ld.Record(1, 25, "", "misc", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("record: %v", err)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/expenses?month=2025-01", nil)
	var res ListExpensesResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Spent != 25 {
		t.Errorf("spent = %v, want 25", res.Spent)
	}
	if res.Remaining != nil {
		t.Errorf("remaining should be null without a budget, got %v", *res.Remaining)
	}
}

func TestUpdateForeignExpenseIsNotFound(t *testing.T) {
	app, db := newExpenseApp(t)

	// Owned by user 2; the app acts as user 1.
	theirs, err := ledger.NewStore(db).Record(2, 75, "", "food", time.Time{})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	amount := 10.0
	resp := doJSON(t, app, http.MethodPut, "/api/expenses/"+itoa(theirs.ID), UpdateExpenseRequest{Amount: &amount})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var stored models.Expense
	if err := db.First(&stored, theirs.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Amount != 75 {
		t.Errorf("foreign record changed: %v", stored.Amount)
	}
}

func TestDeleteExpense(t *testing.T) {
	app, db := newExpenseApp(t)

	exp, err := ledger.NewStore(db).Record(1, 10, "", "food", time.Time{})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	resp := doJSON(t, app, http.MethodDelete, "/api/expenses/"+itoa(exp.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var res map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res["success"] != true {
		t.Errorf("response = %v, want success true", res)
	}

	resp = doJSON(t, app, http.MethodDelete, "/api/expenses/"+itoa(exp.ID), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}
