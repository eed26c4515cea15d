package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username    string `gorm:"size:120;uniqueIndex;not null"`
	Email       string `gorm:"size:120;uniqueIndex;not null"`
	Password    string `gorm:"size:255;not null"`
	FirstName   string `gorm:"size:120"`
	LastName    string `gorm:"size:120"`
	PhoneNumber string `gorm:"size:20"`
	IsAdmin     bool   `gorm:"not null"`
	IsActive    bool   `gorm:"not null"`
}

// ProfileChanges carries the optional fields of a profile update. Nil fields are left as is.
type ProfileChanges struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
}
