package scope

import "gorm.io/gorm"

// OrderByCreatedDesc lists newest first. Gate run history and profile
// listings both read in reverse chronological order.
func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
