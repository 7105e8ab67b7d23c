package models

import (
	"time"
)

// Program defines a study-abroad program based on the 'programs' table.
// ExternalID is the provider's program identifier used in API paths and in
// the bulk-load data file; the numeric ID is internal.
type Program struct {
	ID          int64            `json:"id" db:"id"`
	ExternalID  string           `json:"programId" db:"external_id"`
	Name        string           `json:"name" db:"name"`
	Description string           `json:"description" db:"description"`
	Latitude    *float64         `json:"latitude" db:"latitude"`
	Longitude   *float64         `json:"longitude" db:"longitude"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
	Budgets     []BudgetItem     `json:"budgets,omitempty"`
	Sections    []ProgramSection `json:"sections,omitempty"`
}

// BudgetItem is a single cost line for a program, grouped by term.
type BudgetItem struct {
	ID        int64  `json:"id" db:"id"`
	ProgramID int64  `json:"-" db:"program_id"`
	Term      string `json:"term" db:"term"`
	Item      string `json:"item" db:"item"`
	Amount    string `json:"amount" db:"amount"`
	Position  int    `json:"-" db:"position"`
}

// ProgramSection is a titled description block for a program page.
type ProgramSection struct {
	ID        int64  `json:"id" db:"id"`
	ProgramID int64  `json:"-" db:"program_id"`
	Title     string `json:"title" db:"title"`
	Content   string `json:"content" db:"content"`
	Position  int    `json:"-" db:"position"`
}
