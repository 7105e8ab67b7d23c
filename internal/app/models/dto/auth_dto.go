package dto

import "github.com/abroadly/abroadly/internal/app/models"

// SignupRequest represents a student registration request.
// PasswordConfirm must equal Password; the check happens before any hashing.
type SignupRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=150"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

// LoginRequest represents student login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StudentResponse represents student data returned by auth endpoints.
// It never carries the password hash.
type StudentResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AuthResponse wraps a principal returned on successful signup/login.
type AuthResponse struct {
	Message string          `json:"message"`
	User    StudentResponse `json:"user"`
}

// FromStudent converts a models.Student to a StudentResponse
func FromStudent(s *models.Student) StudentResponse {
	if s == nil {
		return StudentResponse{}
	}
	return StudentResponse{
		ID:        s.ID,
		Username:  s.Username,
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
	}
}
