package services

import (
	"context"

	"github.com/abroadly/abroadly/internal/app/models"
	"github.com/abroadly/abroadly/internal/pkg/apperrors"
)

type fakeStudentRepo struct {
	students map[string]*models.Student
	nextID   int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[string]*models.Student{}, nextID: 1}
}

func (f *fakeStudentRepo) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	if _, exists := f.students[student.Username]; exists {
		return 0, apperrors.ErrUsernameAlreadyExists
	}
	student.ID = f.nextID
	f.nextID++
	f.students[student.Username] = student
	return student.ID, nil
}

func (f *fakeStudentRepo) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	for _, student := range f.students {
		if student.ID == id {
			return student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) GetStudentByUsername(ctx context.Context, username string) (*models.Student, error) {
	if student, ok := f.students[username]; ok {
		return student, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

type fakeAlumniRepo struct {
	alumni map[string]*models.Alumni
	nextID int64
}

func newFakeAlumniRepo() *fakeAlumniRepo {
	return &fakeAlumniRepo{alumni: map[string]*models.Alumni{}, nextID: 1}
}

func (f *fakeAlumniRepo) CreateAlumni(ctx context.Context, alumni *models.Alumni) (int64, error) {
	if _, exists := f.alumni[alumni.Email]; exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	alumni.ID = f.nextID
	f.nextID++
	f.alumni[alumni.Email] = alumni
	return alumni.ID, nil
}

func (f *fakeAlumniRepo) GetAlumniByID(ctx context.Context, id int64) (*models.Alumni, error) {
	for _, alumni := range f.alumni {
		if alumni.ID == id {
			return alumni, nil
		}
	}
	return nil, apperrors.ErrAlumniNotFound
}

func (f *fakeAlumniRepo) GetAlumniByEmail(ctx context.Context, email string) (*models.Alumni, error) {
	if alumni, ok := f.alumni[email]; ok {
		return alumni, nil
	}
	return nil, apperrors.ErrAlumniNotFound
}

func (f *fakeAlumniRepo) ListAlumniByProgramID(ctx context.Context, programID int64) ([]*models.Alumni, error) {
	result := []*models.Alumni{}
	for _, alumni := range f.alumni {
		if alumni.ProgramID == programID {
			result = append(result, alumni)
		}
	}
	return result, nil
}

type fakeProgramRepo struct {
	programs map[string]*models.Program
	budgets  map[int64][]models.BudgetItem
	sections map[int64][]models.ProgramSection
	nextID   int64
}

func newFakeProgramRepo(externalIDs ...string) *fakeProgramRepo {
	f := &fakeProgramRepo{
		programs: map[string]*models.Program{},
		budgets:  map[int64][]models.BudgetItem{},
		sections: map[int64][]models.ProgramSection{},
		nextID:   1,
	}
	for _, externalID := range externalIDs {
		f.programs[externalID] = &models.Program{ID: f.nextID, ExternalID: externalID, Name: externalID}
		f.nextID++
	}
	return f
}

func (f *fakeProgramRepo) GetAll(ctx context.Context) ([]*models.Program, error) {
	result := []*models.Program{}
	for _, program := range f.programs {
		result = append(result, program)
	}
	return result, nil
}

func (f *fakeProgramRepo) GetByExternalID(ctx context.Context, externalID string) (*models.Program, error) {
	if program, ok := f.programs[externalID]; ok {
		return program, nil
	}
	return nil, apperrors.ErrProgramNotFound
}

func (f *fakeProgramRepo) GetIDByExternalID(ctx context.Context, externalID string) (int64, error) {
	if program, ok := f.programs[externalID]; ok {
		return program.ID, nil
	}
	return 0, apperrors.ErrProgramNotFound
}

func (f *fakeProgramRepo) Upsert(ctx context.Context, program *models.Program) (int64, bool, error) {
	if existing, ok := f.programs[program.ExternalID]; ok {
		existing.Name = program.Name
		existing.Description = program.Description
		existing.Latitude = program.Latitude
		existing.Longitude = program.Longitude
		program.ID = existing.ID
		return existing.ID, false, nil
	}
	program.ID = f.nextID
	f.nextID++
	f.programs[program.ExternalID] = program
	return program.ID, true, nil
}

func (f *fakeProgramRepo) ReplaceBudgets(ctx context.Context, programID int64, budgets []models.BudgetItem) error {
	f.budgets[programID] = budgets
	return nil
}

func (f *fakeProgramRepo) ReplaceSections(ctx context.Context, programID int64, sections []models.ProgramSection) error {
	f.sections[programID] = sections
	return nil
}

func (f *fakeProgramRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.programs)), nil
}

type favoriteKey struct {
	studentID int64
	programID int64
}

type fakeFavoriteRepo struct {
	favorites map[favoriteKey]*models.Favorite
	nextID    int64
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: map[favoriteKey]*models.Favorite{}, nextID: 1}
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, studentID, programID int64) (*models.Favorite, error) {
	key := favoriteKey{studentID, programID}
	if _, exists := f.favorites[key]; exists {
		return nil, apperrors.ErrAlreadyFavorited
	}
	favorite := &models.Favorite{
		ID:        f.nextID,
		StudentID: studentID,
		ProgramID: programID,
		Program:   &models.Program{ID: programID},
	}
	f.favorites[key] = favorite
	f.nextID++
	return favorite, nil
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, studentID, programID int64) error {
	key := favoriteKey{studentID, programID}
	if _, exists := f.favorites[key]; !exists {
		return apperrors.ErrFavoriteNotFound
	}
	delete(f.favorites, key)
	return nil
}

func (f *fakeFavoriteRepo) Exists(ctx context.Context, studentID, programID int64) (bool, error) {
	_, ok := f.favorites[favoriteKey{studentID, programID}]
	return ok, nil
}

func (f *fakeFavoriteRepo) ListByStudent(ctx context.Context, studentID int64) ([]*models.Favorite, error) {
	result := []*models.Favorite{}
	for key, favorite := range f.favorites {
		if key.studentID == studentID {
			result = append(result, favorite)
		}
	}
	return result, nil
}

type fakeReviewRepo struct {
	reviews []*models.Review
	nextID  int64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{nextID: 1}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *models.Review) (int64, error) {
	review.ID = f.nextID
	f.nextID++
	f.reviews = append(f.reviews, review)
	return review.ID, nil
}

func (f *fakeReviewRepo) ListByProgram(ctx context.Context, programID int64) ([]*models.Review, error) {
	result := []*models.Review{}
	for _, review := range f.reviews {
		if review.ProgramID == programID {
			result = append(result, review)
		}
	}
	return result, nil
}
