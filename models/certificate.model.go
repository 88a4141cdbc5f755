package models

import "time"

// Certificate is the central entity of the issuance pipeline. The four
// progress field groups are populated monotonically, one per pipeline
// step, and are never cleared once set:
//
//	step 2: ImageHash + MetadataHash (IPFS CIDs)
//	step 3: TransactionHash (+ optional ArbitrumHash)
//	step 4: QRURL
//
// TransactionHash is only ever set when both CIDs are set, and QRURL is
// only ever set when TransactionHash is set.
type Certificate struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	RecipientName string    `json:"recipient_name" gorm:"not null"`
	CourseName    string    `json:"course_name" gorm:"not null"`
	InstituteID   uint      `json:"institute_id" gorm:"index;not null"`
	IssuedAt      time.Time `json:"issued_at"`

	ImageHash       *string `json:"image_hash"`
	MetadataHash    *string `json:"metadata_hash"`
	TransactionHash *string `json:"transaction_hash"`
	ArbitrumHash    *string `json:"arbitrum_hash"`
	QRURL           *string `json:"qr_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"-" gorm:"default:false"`
}

func (Certificate) TableName() string {
	return "certificates"
}
