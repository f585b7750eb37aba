package models

import (
	"time"

	"gorm.io/gorm"
)

// CivilRecord holds the columns shared by birth certificates and ID cards.
// Both tables carry their own unique indexes on id_number and photo_hash.
type CivilRecord struct {
	ID                 uint         `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt          time.Time    `gorm:"index" json:"created_at" example:"2024-01-01T00:00:00Z"`
	UpdatedAt          time.Time    `json:"updated_at" example:"2024-01-01T00:00:00Z"`
	IDNumber           string       `gorm:"uniqueIndex;size:64;not null" json:"id_number" example:"ID001234567"`
	FullName           string       `gorm:"not null" json:"full_name" example:"Ahmed Hassan Mohamed"`
	DateOfBirth        time.Time    `json:"date_of_birth" example:"1990-05-15T00:00:00Z"`
	Gender             string       `gorm:"size:16" json:"gender" example:"Male"`
	PlaceOfBirth       string       `json:"place_of_birth" example:"Mogadishu"`
	Nationality        string       `json:"nationality" example:"Somali"`
	ParentSerialNumber string       `json:"parent_serial_number" example:"PS123456"`
	DateOfIssue        time.Time    `json:"date_of_issue" example:"2020-01-15T00:00:00Z"`
	DateOfExpiry       time.Time    `gorm:"index" json:"date_of_expiry" example:"2030-01-15T00:00:00Z"`
	County             string       `json:"county" example:"Banaadir"`
	Email              string       `json:"email" example:"ahmed.hassan@email.com"`
	PhotoHash          string       `gorm:"uniqueIndex;size:64;not null" json:"photo_hash"`
	Status             RecordStatus `gorm:"type:varchar(16);index;not null;default:pending" json:"status" example:"pending"`
	VerifiedOn         *time.Time   `json:"verified_on,omitempty"`
	RejectedOn         *time.Time   `json:"rejected_on,omitempty"`
	Reason             string       `json:"reason,omitempty"`
	DisplayStatus      string       `gorm:"-" json:"display_status" example:"verified"`
}

// @description Birth certificate submission
type BirthRecord struct {
	CivilRecord
}

func (BirthRecord) TableName() string { return "birth_records" }

func (b *BirthRecord) AfterFind(tx *gorm.DB) error {
	b.DisplayStatus = b.Status.Label(KindBirth)
	return nil
}

func (b *BirthRecord) AfterCreate(tx *gorm.DB) error {
	b.DisplayStatus = b.Status.Label(KindBirth)
	return nil
}

// @description National ID card application
type IDCardRecord struct {
	CivilRecord
	PhotoPath string `json:"photo_path" example:"/uploads/3f1c.jpg"`
}

func (IDCardRecord) TableName() string { return "id_card_records" }

func (r *IDCardRecord) AfterFind(tx *gorm.DB) error {
	r.DisplayStatus = r.Status.Label(KindIDCard)
	return nil
}

func (r *IDCardRecord) AfterCreate(tx *gorm.DB) error {
	r.DisplayStatus = r.Status.Label(KindIDCard)
	return nil
}

// RecordFilter narrows list and count queries. Zero values are ignored.
type RecordFilter struct {
	Status        RecordStatus
	Gender        string // matched case-insensitively
	CreatedFrom   time.Time
	CreatedTo     time.Time
	ExpiresFrom   time.Time
	ExpiresTo     time.Time
	OrderByColumn string
}
