package models

import (
	"time"
)

// Alumni defines the alumni principal based on the 'alumni' table.
// Alumni are a separate credential store from students: they register with an
// email (unique) and are always tied to the program they attended.
type Alumni struct {
	ID              int64     `json:"id" db:"id"`
	Email           string    `json:"email" db:"email"`
	Password        string    `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName       string    `json:"firstName" db:"first_name"`
	LastName        string    `json:"lastName" db:"last_name"`
	ProgramID       int64     `json:"programId" db:"program_id"`
	GraduationYear  int       `json:"graduationYear" db:"graduation_year"`
	StudyAbroadTerm string    `json:"studyAbroadTerm" db:"study_abroad_term"`
	Bio             string    `json:"bio" db:"bio"`
	IsActive        bool      `json:"isActive" db:"is_active"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	Program         *Program  `json:"program,omitempty"` // Relation, no db tag
}
