package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abroadly/abroadly/internal/app/models"
	"github.com/abroadly/abroadly/internal/pkg/apperrors"
	"github.com/abroadly/abroadly/internal/pkg/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStudentFinder struct {
	students map[int64]*models.Student
}

func (f *fakeStudentFinder) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if student, ok := f.students[id]; ok {
		return student, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

type fakeAlumniFinder struct {
	alumni map[int64]*models.Alumni
}

func (f *fakeAlumniFinder) GetAlumniByID(ctx context.Context, id int64) (*models.Alumni, error) {
	if alumni, ok := f.alumni[id]; ok {
		return alumni, nil
	}
	return nil, apperrors.ErrAlumniNotFound
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	manager := session.NewManager(session.NewMemoryStore(time.Hour), "test_session", 3600, false)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return manager.Load(c)
}

func newResolverWith(students map[int64]*models.Student, alumni map[int64]*models.Alumni) *Resolver {
	return NewResolver(&fakeStudentFinder{students: students}, &fakeAlumniFinder{alumni: alumni})
}

func TestResolveAnonymousSession(t *testing.T) {
	ctx := context.Background()
	resolver := newResolverWith(nil, nil)
	sess := newTestSession(t)

	identity, err := resolver.Resolve(ctx, sess)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !identity.IsAnonymous() {
		t.Errorf("identity kind = %v, want anonymous", identity.Kind)
	}
}

func TestResolveStudentSession(t *testing.T) {
	ctx := context.Background()
	resolver := newResolverWith(map[int64]*models.Student{
		7: {ID: 7, Username: "maria"},
	}, nil)

	sess := newTestSession(t)
	if err := sess.SetStudentID(ctx, 7); err != nil {
		t.Fatalf("SetStudentID: %v", err)
	}

	identity, err := resolver.Resolve(ctx, sess)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !identity.IsStudent() {
		t.Fatalf("identity kind = %v, want student", identity.Kind)
	}
	if identity.Student.ID != 7 {
		t.Errorf("student ID = %d, want 7", identity.Student.ID)
	}
}

func TestResolveAlumniTakesPrecedence(t *testing.T) {
	ctx := context.Background()
	resolver := newResolverWith(
		map[int64]*models.Student{7: {ID: 7}},
		map[int64]*models.Alumni{3: {ID: 3, Email: "grad@example.com"}},
	)

	sess := newTestSession(t)
	if err := sess.SetStudentID(ctx, 7); err != nil {
		t.Fatalf("SetStudentID: %v", err)
	}
	if err := sess.SetAlumniID(ctx, 3); err != nil {
		t.Fatalf("SetAlumniID: %v", err)
	}

	identity, err := resolver.Resolve(ctx, sess)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !identity.IsAlumni() {
		t.Fatalf("identity kind = %v, want alumni", identity.Kind)
	}
	if identity.Alumni.ID != 3 {
		t.Errorf("alumni ID = %d, want 3", identity.Alumni.ID)
	}
}

func TestResolveStaleAlumniDoesNotFallThrough(t *testing.T) {
	ctx := context.Background()
	// The student account exists but the alumni account is gone. Resolution
	// must fail rather than quietly switching principals.
	resolver := newResolverWith(map[int64]*models.Student{7: {ID: 7}}, nil)

	sess := newTestSession(t)
	if err := sess.SetStudentID(ctx, 7); err != nil {
		t.Fatalf("SetStudentID: %v", err)
	}
	if err := sess.SetAlumniID(ctx, 99); err != nil {
		t.Fatalf("SetAlumniID: %v", err)
	}

	identity, err := resolver.Resolve(ctx, sess)
	if !errors.Is(err, apperrors.ErrIdentityNotFound) {
		t.Fatalf("Resolve returned %v, want ErrIdentityNotFound", err)
	}
	if !identity.IsAnonymous() {
		t.Errorf("identity kind = %v, want anonymous on resolution failure", identity.Kind)
	}
}

func TestResolveStaleStudentDegradesToAnonymous(t *testing.T) {
	ctx := context.Background()
	resolver := newResolverWith(nil, nil)

	sess := newTestSession(t)
	if err := sess.SetStudentID(ctx, 404); err != nil {
		t.Fatalf("SetStudentID: %v", err)
	}

	identity, err := resolver.Resolve(ctx, sess)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !identity.IsAnonymous() {
		t.Errorf("identity kind = %v, want anonymous for stale student slot", identity.Kind)
	}
}
