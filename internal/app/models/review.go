package models

import (
	"time"
)

// Review is an alumni-authored review of a program. The author is always the
// resolved alumni identity, never client-supplied.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	ProgramID int64     `json:"-" db:"program_id"`
	AlumniID  int64     `json:"-" db:"alumni_id"`
	Text      string    `json:"text" db:"text"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Denormalized author fields for display, populated by list/create queries.
	AlumniFirstName      string `json:"alumniFirstName,omitempty"`
	AlumniLastName       string `json:"alumniLastName,omitempty"`
	AlumniGraduationYear int    `json:"alumniGraduationYear,omitempty"`
	ProgramName          string `json:"programName,omitempty"`
}
