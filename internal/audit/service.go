package audit

import (
	"spendtrack-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder writes the mutation trail. Recording is best-effort: a failed
// audit write is logged and never fails the mutation it describes.
type Recorder struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRecorder(db *gorm.DB, log *zap.Logger) *Recorder {
	return &Recorder{db: db, log: log}
}

func (r *Recorder) Record(userID uint, entityType string, entityID uint, action models.AuditAction, description string) {
	var user models.User
	userName := ""
	if err := r.db.First(&user, userID).Error; err == nil {
		userName = user.Name
	}

	entry := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
	}

	if err := r.db.Create(&entry).Error; err != nil {
		r.log.Warn("audit log write failed",
			zap.Uint("user_id", userID),
			zap.String("entity_type", entityType),
			zap.Uint("entity_id", entityID),
			zap.Error(err))
	}
}
