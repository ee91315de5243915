package budget

import (
	"fmt"

	"spendtrack-backend/internal/ledger"
	"spendtrack-backend/internal/models"
	"spendtrack-backend/internal/notify"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Status is the month-to-date position of a user against their budget. Limit
// is 0 when no budget row exists for the month; Spent is always live.
type Status struct {
	Month     string
	Limit     float64
	Spent     float64
	HasBudget bool
}

// Guard decides whether a spending notification is warranted. The notifier is
// injected so tests can substitute a recording double and so transport
// lifecycle stays out of this package.
type Guard struct {
	db       *gorm.DB
	ledger   *ledger.Store
	budgets  *Store
	notifier notify.Notifier
	log      *zap.Logger
}

func NewGuard(db *gorm.DB, ld *ledger.Store, budgets *Store, notifier notify.Notifier, log *zap.Logger) *Guard {
	return &Guard{
		db:       db,
		ledger:   ld,
		budgets:  budgets,
		notifier: notifier,
		log:      log,
	}
}

// Status computes the month's total spend and looks up the budget limit.
func (g *Guard) Status(userID uint, month string) (Status, error) {
	start, end, err := ledger.MonthRange(month)
	if err != nil {
		return Status{}, err
	}

	spent, err := g.ledger.SumRange(userID, start, end)
	if err != nil {
		return Status{}, err
	}

	b, err := g.budgets.Find(userID, month)
	if err != nil {
		return Status{}, err
	}

	st := Status{Month: month, Spent: spent}
	if b != nil {
		st.Limit = b.Limit
		st.HasBudget = true
	}
	return st, nil
}

// AfterCreate runs the over-budget check for the current month after an
// expense has been persisted. It never returns an error: the surrounding
// request must succeed regardless of what happens here, so every failure is
// logged and dropped.
//
// Not exactly-once: concurrent creations in the same month can each observe
// the exceeded total and each notify.
func (g *Guard) AfterCreate(userID uint) {
	month := ledger.CurrentMonth()

	st, err := g.Status(userID, month)
	if err != nil {
		g.log.Warn("budget check failed", zap.Uint("user_id", userID), zap.String("month", month), zap.Error(err))
		return
	}
	if !st.HasBudget || st.Spent <= st.Limit {
		return
	}

	var user models.User
	if err := g.db.First(&user, "id = ?", userID).Error; err != nil {
		g.log.Warn("budget alert: user lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	if user.Email == "" {
		return
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nYour spending for %s is %.2f, which exceeds your budget of %.2f.\n\nPlease review your expenses.",
		user.Name, st.Month, st.Spent, st.Limit,
	)
	if err := g.notifier.Notify(&user, "Budget Exceeded", body); err != nil {
		g.log.Warn("budget alert delivery failed",
			zap.Uint("user_id", userID),
			zap.String("month", month),
			zap.Error(err))
		return
	}

	g.log.Info("budget alert sent",
		zap.Uint("user_id", userID),
		zap.String("month", month),
		zap.Float64("spent", st.Spent),
		zap.Float64("limit", st.Limit))
}
