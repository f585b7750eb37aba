package models

import "time"

// RecordInput is the descriptive part of a birth or ID card submission as it
// arrives in a multipart form. The photo travels separately.
type RecordInput struct {
	IDNumber           string    `form:"id_number" binding:"required,max=64"`
	FullName           string    `form:"full_name" binding:"required"`
	DateOfBirth        time.Time `form:"date_of_birth" time_format:"2006-01-02" binding:"required"`
	Gender             string    `form:"gender" binding:"required"`
	PlaceOfBirth       string    `form:"place_of_birth"`
	Nationality        string    `form:"nationality"`
	ParentSerialNumber string    `form:"parent_serial_number"`
	DateOfIssue        time.Time `form:"date_of_issue" time_format:"2006-01-02" binding:"required"`
	DateOfExpiry       time.Time `form:"date_of_expiry" time_format:"2006-01-02" binding:"required"`
	County             string    `form:"county"`
	Email              string    `form:"email" binding:"omitempty,email"`
}

// Apply copies the descriptive fields onto rec. Status columns are untouched.
func (in RecordInput) Apply(rec *CivilRecord) {
	rec.IDNumber = in.IDNumber
	rec.FullName = in.FullName
	rec.DateOfBirth = in.DateOfBirth
	rec.Gender = in.Gender
	rec.PlaceOfBirth = in.PlaceOfBirth
	rec.Nationality = in.Nationality
	rec.ParentSerialNumber = in.ParentSerialNumber
	rec.DateOfIssue = in.DateOfIssue
	rec.DateOfExpiry = in.DateOfExpiry
	rec.County = in.County
	rec.Email = in.Email
}

// Citizen is a birth or ID card record tagged with its kind, as returned by
// the combined citizen views.
type Citizen struct {
	CivilRecord
	PhotoPath string     `json:"photo_path,omitempty"`
	Type      RecordKind `json:"type" example:"ID Card"`
}
