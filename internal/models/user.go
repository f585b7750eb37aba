package models

import "time"

// Role is the staff role that gates the HTTP routes.
type Role string

const (
	RoleAdmin          Role = "Admin"
	RoleReviewer       Role = "Reviewer"
	RoleBirthRecorder  Role = "Birth Recorder"
	RoleIDCardRecorder Role = "ID Card Recorder"
	RoleDeathRecorder  Role = "Death Recorder"
)

// Roles lists every valid role, in display order.
var Roles = []Role{RoleAdmin, RoleReviewer, RoleBirthRecorder, RoleIDCardRecorder, RoleDeathRecorder}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// @description Staff account
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time `gorm:"index" json:"created_at" example:"2024-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-01T00:00:00Z"`
	Username  string    `gorm:"uniqueIndex;size:30;not null" json:"username" example:"ahmed"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email" example:"admin@nira.gov"`
	Password  string    `gorm:"not null" json:"-"`
	FullName  string    `gorm:"not null" json:"full_name" example:"Ahmed Hassan"`
	Role      Role      `gorm:"type:varchar(32);index;not null" json:"role" example:"Reviewer"`
}
