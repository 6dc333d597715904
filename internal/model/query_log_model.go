package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QueryLog struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      string         `gorm:"type:varchar(255);index"`
	SessionId   *string        `gorm:"type:varchar(64)"`
	Question    string         `gorm:"type:text;not null"`
	DisplayText string         `gorm:"type:text;not null"`
	Route       string         `gorm:"type:varchar(32);index"`
	Failure     string         `gorm:"type:varchar(32);index"`
	Chart       datatypes.JSON `gorm:"type:jsonb"`
	DurationMs  int64          `gorm:"not null;default:0"`
	CreatedAt   time.Time      `gorm:"default:now();not null;index"`
}

func (QueryLog) TableName() string {
	return "query_logs"
}
