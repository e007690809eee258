package model

import (
	"gorm.io/gorm"
)

// User holds at most one live refresh credential at a time; login overwrites
// it and logout clears it, so the stored value is always the latest issued.
type User struct {
	gorm.Model
	Name         string `gorm:"column:name;not null"`
	Email        string `gorm:"column:email;unique;not null"`
	Password     string `gorm:"column:password;not null"`
	RefreshToken string `gorm:"column:refresh_token;default:null"`
}
