package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ByGenerationID struct {
	GenerationID uuid.UUID
}

func (s ByGenerationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("generation_id = ?", s.GenerationID)
}

type ByUserID struct {
	UserID string
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByRoute struct {
	Route string
}

func (s ByRoute) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("route = ?", s.Route)
}

// WithFailure keeps only answers that recorded a failure kind.
type WithFailure struct{}

func (s WithFailure) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("failure <> ''")
}

// OrderBy sorts on a single column. The name is quoted as an identifier.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Field}, Desc: s.Desc})
}

// Pagination ignores zero values so it can be applied unconditionally.
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit > 0 {
		db = db.Limit(s.Limit)
	}
	if s.Offset > 0 {
		db = db.Offset(s.Offset)
	}
	return db
}
