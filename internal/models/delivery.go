package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DeliveryStatusSent    = "sent"
	DeliveryStatusFailed  = "failed"
	DeliveryStatusSkipped = "skipped"
)

// DeliveryRecord is one attempt to post a message to the group webhook.
type DeliveryRecord struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// daily, manual, weather, fortune, lunch
	Kind    string `gorm:"type:varchar(30);not null;index"`
	Channel string `gorm:"type:varchar(30);not null"`
	Status  string `gorm:"type:varchar(20);not null;index"`

	Content string `gorm:"type:text"`
	Error   string `gorm:"type:text"`

	// per-mirror outcome, e.g. {"slack":"ok"}
	Mirrors datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (DeliveryRecord) TableName() string {
	return "delivery_records"
}
