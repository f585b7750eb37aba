package models

// RegisterInput is the public sign-up payload. Self-registered accounts are
// always Reviewers; Role is honoured only when an Admin creates the user.
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=30" example:"ahmed"`
	Email    string `json:"email" binding:"required,email" example:"ahmed@nira.gov"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	FullName string `json:"full_name" binding:"required" example:"Ahmed Hassan"`
	Role     Role   `json:"role,omitempty" example:"Reviewer"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"admin@nira.gov"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

type ProfileInput struct {
	FullName string `json:"full_name" binding:"required" example:"Ahmed Hassan"`
	Email    string `json:"email" binding:"required,email" example:"ahmed@nira.gov"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// UserUpdateInput is the admin edit payload. Empty fields keep their value.
type UserUpdateInput struct {
	Username string `json:"username" binding:"omitempty,min=3,max=30"`
	Email    string `json:"email" binding:"omitempty,email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}
