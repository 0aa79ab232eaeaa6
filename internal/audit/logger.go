package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BarberProDZ/salon-scheduler/internal/models"
)

type Logger struct {
	db *gorm.DB
}

var _ Sink = (*Logger)(nil)

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	shopID uint,
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ShopID:   shopID,
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	return l.db.Create(&entry).Error
}
