// Package auth resolves session state into a request identity. Students and
// alumni are distinct account populations that share one session store, so
// every guarded handler goes through the resolver here instead of reading
// session slots directly.
package auth

import (
	"context"
	"errors"

	"github.com/abroadly/abroadly/internal/app/models"
	"github.com/abroadly/abroadly/internal/pkg/apperrors"
	"github.com/abroadly/abroadly/internal/pkg/logger"
	"github.com/abroadly/abroadly/internal/pkg/session"
)

// IdentityKind discriminates the three possible request principals.
type IdentityKind string

const (
	KindAnonymous IdentityKind = "ANONYMOUS"
	KindStudent   IdentityKind = "STUDENT"
	KindAlumni    IdentityKind = "ALUMNI"
)

// Identity is the resolved principal of a request. Exactly one of Student or
// Alumni is non-nil for a non-anonymous identity.
type Identity struct {
	Kind    IdentityKind
	Student *models.Student
	Alumni  *models.Alumni
}

// Anonymous is the identity of a request with no usable session state.
var Anonymous = Identity{Kind: KindAnonymous}

func (i Identity) IsAnonymous() bool { return i.Kind == KindAnonymous }
func (i Identity) IsStudent() bool   { return i.Kind == KindStudent }
func (i Identity) IsAlumni() bool    { return i.Kind == KindAlumni }

// StudentFinder loads a student account by primary key.
type StudentFinder interface {
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
}

// AlumniFinder loads an alumni account by primary key.
type AlumniFinder interface {
	GetAlumniByID(ctx context.Context, id int64) (*models.Alumni, error)
}

// Resolver turns a session into an Identity.
type Resolver struct {
	students StudentFinder
	alumni   AlumniFinder
}

// NewResolver creates an identity Resolver.
func NewResolver(students StudentFinder, alumni AlumniFinder) *Resolver {
	return &Resolver{
		students: students,
		alumni:   alumni,
	}
}

// Resolve maps session state to a request identity. The alumni slot takes
// precedence over the student slot: a session holding both resolves as
// alumni. A populated alumni slot whose account row no longer exists yields
// ErrIdentityNotFound; it never falls through to the student slot, since
// that would silently swap the principal mid-session.
func (r *Resolver) Resolve(ctx context.Context, sess *session.Session) (Identity, error) {
	alumniID, ok, err := sess.AlumniID(ctx)
	if err != nil {
		return Anonymous, err
	}
	if ok {
		alumni, err := r.alumni.GetAlumniByID(ctx, alumniID)
		if err != nil {
			if errors.Is(err, apperrors.ErrAlumniNotFound) {
				logger.Warn().Int64("alumniId", alumniID).Msg("Session references a deleted alumni account")
				return Anonymous, apperrors.ErrIdentityNotFound
			}
			return Anonymous, err
		}
		return Identity{Kind: KindAlumni, Alumni: alumni}, nil
	}

	studentID, ok, err := sess.StudentID(ctx)
	if err != nil {
		return Anonymous, err
	}
	if ok {
		student, err := r.students.GetStudentByID(ctx, studentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				// A stale student slot degrades to anonymous so the public
				// surface keeps working after an account is removed.
				logger.Warn().Int64("studentId", studentID).Msg("Session references a deleted student account")
				return Anonymous, nil
			}
			return Anonymous, err
		}
		return Identity{Kind: KindStudent, Student: student}, nil
	}

	return Anonymous, nil
}
