package models

import (
	"time"
)

// Favorite links a student to a program. The (student, program) pair is
// unique at the storage layer; duplicate inserts fail atomically.
type Favorite struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"-" db:"student_id"`
	ProgramID int64     `json:"-" db:"program_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Program   *Program  `json:"program,omitempty"` // Relation, no db tag
}
