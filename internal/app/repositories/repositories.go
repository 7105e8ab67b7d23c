package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository  *StudentRepository
	AlumniRepository   *AlumniRepository
	ProgramRepository  *ProgramRepository
	FavoriteRepository *FavoriteRepository
	ReviewRepository   *ReviewRepository
	ProfileRepository  *ProfileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:  NewStudentRepository(db),
		AlumniRepository:   NewAlumniRepository(db),
		ProgramRepository:  NewProgramRepository(db),
		FavoriteRepository: NewFavoriteRepository(db),
		ReviewRepository:   NewReviewRepository(db),
		ProfileRepository:  NewProfileRepository(db),
	}
}
