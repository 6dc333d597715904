package model

import (
	"time"

	"github.com/google/uuid"
)

// SalesRecord backs the analytics table the structured-query agent reads.
type SalesRecord struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderDate time.Time `gorm:"type:date;not null;index"`
	Region    string    `gorm:"type:varchar(64);not null;index"`
	Product   string    `gorm:"type:varchar(128);not null;index"`
	Quantity  int       `gorm:"not null"`
	UnitPrice float64   `gorm:"type:numeric(12,2);not null"`
	Revenue   float64   `gorm:"type:numeric(14,2);not null"`
}

func (SalesRecord) TableName() string {
	return "sales_data"
}
