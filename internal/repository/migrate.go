package repository

import "gorm.io/gorm"

// AutoMigrate creates the users, refresh_tokens and token_blacklist tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&refreshTokenModel{},
		&blacklistedTokenModel{},
	)
}
