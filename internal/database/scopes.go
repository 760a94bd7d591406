package database

import "gorm.io/gorm"

// OwnedBy restricts a query to rows belonging to userID.
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// OwnedRecord matches a single row by id and owner in one predicate, so a
// row owned by someone else is indistinguishable from a missing one.
func OwnedRecord(userID, id uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND id = ?", userID, id)
	}
}
