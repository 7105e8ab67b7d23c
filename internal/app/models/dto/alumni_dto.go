package dto

import "github.com/abroadly/abroadly/internal/app/models"

// AlumniSignupRequest represents an alumni registration request.
// ProgramID is the external program identifier of the program attended.
type AlumniSignupRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	ProgramID       string `json:"programId" binding:"required"`
	GraduationYear  int    `json:"graduationYear" binding:"required,min=1950"`
	StudyAbroadTerm string `json:"studyAbroadTerm"`
	Bio             string `json:"bio"`
}

// AlumniLoginRequest represents alumni login credentials
type AlumniLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AlumniResponse represents alumni data returned by the API.
// It never carries the password hash.
type AlumniResponse struct {
	ID              int64           `json:"id"`
	Email           string          `json:"email"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	GraduationYear  int             `json:"graduationYear"`
	StudyAbroadTerm string          `json:"studyAbroadTerm,omitempty"`
	Bio             string          `json:"bio,omitempty"`
	Program         *models.Program `json:"program,omitempty"`
}

// AlumniAuthResponse wraps an alumni principal returned on successful signup/login.
type AlumniAuthResponse struct {
	Message string         `json:"message"`
	Alumni  AlumniResponse `json:"alumni"`
}

// FromAlumni converts a models.Alumni to an AlumniResponse
func FromAlumni(a *models.Alumni) AlumniResponse {
	if a == nil {
		return AlumniResponse{}
	}
	return AlumniResponse{
		ID:              a.ID,
		Email:           a.Email,
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		GraduationYear:  a.GraduationYear,
		StudyAbroadTerm: a.StudyAbroadTerm,
		Bio:             a.Bio,
		Program:         a.Program,
	}
}
