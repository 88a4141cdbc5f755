package models

import "gorm.io/gorm"

// Institution is an onboarded certificate issuer. New registrations start
// PENDING and must be approved by an admin before certificates can be
// minted against them.
type Institution struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	LegalID      string `json:"legal_id" gorm:"unique;not null"`
	Website      string `json:"website"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
	Status       string `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	IsDeleted    bool   `json:"-" gorm:"default:false"`
}
