package models

import "gorm.io/gorm"

// Migrate creates or updates every table used by the API.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Address{},
		&Category{},
		&Product{},
		&ProductImage{},
		&CartLine{},
		&Order{},
		&OrderItem{},
	)
}
