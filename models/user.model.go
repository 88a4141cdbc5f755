package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                string     `json:"name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Password            string     `json:"-" gorm:"not null"`
	Role                string     `json:"role" gorm:"default:'USER'"` // USER, INSTITUTION, ADMIN
	InstituteID         uint       `json:"institute_id" gorm:"index"`
	WalletAddress       string     `json:"wallet_address" gorm:"default:''"`
	Status              string     `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	LastLogin           time.Time  `json:"last_login" gorm:"default:NULL"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"-"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
