package specification

import "gorm.io/gorm"

// Specification narrows a repository query. Specs compose by applying each in
// turn to the same *gorm.DB.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
