package models

import (
	"time"
)

// Student defines the student principal based on the 'students' table
type Student struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Profile defines a student's study-abroad profile based on the 'profiles' table.
// Each student owns at most one profile; it is created lazily on first read.
type Profile struct {
	ID              int64  `json:"id" db:"id"`
	StudentID       int64  `json:"studentId" db:"student_id"`
	Year            string `json:"year" db:"year"`
	Major           string `json:"major" db:"major"`
	StudyAbroadTerm string `json:"studyAbroadTerm" db:"study_abroad_term"`
}
