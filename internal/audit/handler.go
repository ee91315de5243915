package audit

import (
	"spendtrack-backend/internal/auth"
	"spendtrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
}

// GET /api/audit-logs?entity_type=expense
func ListAuditLogsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		q := db.Where("user_id = ?", userID)
		if et := c.Query("entity_type"); et != "" {
			q = q.Where("entity_type = ?", et)
		}

		var logs []models.AuditLog
		if err := q.Order("created_at desc, id desc").Limit(100).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list audit logs")
		}

		res := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			res = append(res, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
			})
		}
		return c.JSON(res)
	}
}
