package model

import "gorm.io/gorm"

type Expense struct {
	gorm.Model
	UserID      uint   `gorm:"column:user_id;index;not null"`
	CategoryID  uint   `gorm:"column:category_id;index;not null"`
	Description string `gorm:"column:description"`
	Amount      int64  `gorm:"column:amount;not null"`

	User     User     `gorm:"constraint:OnDelete:CASCADE"`
	Category Category `gorm:"constraint:OnDelete:CASCADE"`
}
