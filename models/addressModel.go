package models

import (
	"gorm.io/gorm"
)

// Address is a shipping destination owned by a user.
type Address struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index"`
	User      *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Street    string `gorm:"size:255;not null"`
	City      string `gorm:"size:100;not null"`
	State     string `gorm:"size:100;not null"`
	ZipCode   string `gorm:"size:20;not null"`
	IsDefault bool   `gorm:"not null"`
}

type AddressChanges struct {
	Street    *string
	City      *string
	State     *string
	ZipCode   *string
	IsDefault *bool
}

// AddressSnapshot is the copy of an address stored on an order.
type AddressSnapshot struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

func (a Address) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
	}
}
