package models

import "time"

// @description Death record
type DeathRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt    time.Time `gorm:"index" json:"created_at" example:"2024-01-01T00:00:00Z"`
	UpdatedAt    time.Time `json:"updated_at" example:"2024-01-01T00:00:00Z"`
	SerialNumber string    `gorm:"uniqueIndex;size:64;not null" json:"serial_number" binding:"required" example:"DR-2024-0001"`
	Name         string    `gorm:"not null" json:"name" binding:"required" example:"Omar Jama Hussein"`
	Gender       string    `gorm:"size:8;not null" json:"gender" binding:"required,oneof=Male Female" example:"Male"`
	DateOfDeath  time.Time `gorm:"index;not null" json:"date_of_death" binding:"required" example:"2024-03-01T00:00:00Z"`
	Location     string    `gorm:"not null" json:"location" binding:"required" example:"Kismayo"`
	Reason       string    `gorm:"not null" json:"reason" binding:"required" example:"Natural causes"`
}
