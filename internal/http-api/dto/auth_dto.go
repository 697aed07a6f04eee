package dto

// Data Transfer Objects for authentication requests

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Name       string `json:"name" binding:"required,max=50"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Department string `json:"department,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdatePasswordRequest: payload for changing the password of the logged-in user
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UpdateMeRequest: partial profile update. Password is captured only so the
// handler can reject attempts to change it through this route.
type UpdateMeRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Department *string `json:"department,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Password   *string `json:"password,omitempty"`
}

// ForgotPasswordRequest: payload for requesting a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest: payload for completing a password reset
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}
