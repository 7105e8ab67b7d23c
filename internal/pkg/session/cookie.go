package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abroadly/abroadly/internal/pkg/apperrors"
)

// Manager binds a Store to the HTTP cookie that carries the session token.
type Manager struct {
	store      Store
	cookieName string
	maxAge     int
	secure     bool
}

// NewManager creates a session Manager.
func NewManager(store Store, cookieName string, maxAgeSeconds int, secure bool) *Manager {
	return &Manager{
		store:      store,
		cookieName: cookieName,
		maxAge:     maxAgeSeconds,
		secure:     secure,
	}
}

// Load returns the Session attached to the request. A request without a
// session cookie still gets a usable Session; the backing row is only
// created on the first slot write.
func (m *Manager) Load(c *gin.Context) *Session {
	token, err := c.Cookie(m.cookieName)
	if err != nil {
		token = ""
	}
	return &Session{manager: m, ginCtx: c, token: token}
}

func (m *Manager) setCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, m.maxAge, "/", "", m.secure, true)
}

func (m *Manager) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}

// Session is a per-request view of one session. It exposes the two identity
// slots through typed accessors; raw slot access stays inside this package.
type Session struct {
	manager *Manager
	ginCtx  *gin.Context
	token   string
}

// Token returns the opaque session token, or an empty string when the
// request carried no session cookie.
func (s *Session) Token() string {
	return s.token
}

func (s *Session) getIDSlot(ctx context.Context, slot string) (int64, bool, error) {
	if s.token == "" {
		return 0, false, nil
	}

	raw, ok, err := s.manager.store.GetSlot(ctx, s.token, slot)
	if err != nil || !ok {
		return 0, false, err
	}

	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		// A non-numeric value in an identity slot means the session data is
		// corrupt; treat the slot as absent rather than failing the request.
		return 0, false, nil
	}
	return id, true, nil
}

// setIDSlot writes an identity slot, creating the backing session and
// issuing the cookie when the request arrived without one. A stale cookie
// pointing at an expired row is replaced the same way.
func (s *Session) setIDSlot(ctx context.Context, slot string, id int64) error {
	if s.token != "" {
		err := s.manager.store.SetSlot(ctx, s.token, slot, id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrSessionNotFound) {
			return err
		}
		s.token = ""
	}

	token, err := s.manager.store.Create(ctx)
	if err != nil {
		return err
	}
	if err := s.manager.store.SetSlot(ctx, token, slot, id); err != nil {
		return err
	}

	s.token = token
	s.manager.setCookie(s.ginCtx, token)
	return nil
}

func (s *Session) clearIDSlot(ctx context.Context, slot string) error {
	if s.token == "" {
		return nil
	}
	return s.manager.store.DeleteSlot(ctx, s.token, slot)
}

// StudentID returns the student identity slot, if set.
func (s *Session) StudentID(ctx context.Context) (int64, bool, error) {
	return s.getIDSlot(ctx, slotStudentID)
}

// SetStudentID marks the session as logged in as the given student.
func (s *Session) SetStudentID(ctx context.Context, id int64) error {
	return s.setIDSlot(ctx, slotStudentID, id)
}

// ClearStudentID logs out the student identity without touching any other
// slot. Clearing an anonymous session is a no-op.
func (s *Session) ClearStudentID(ctx context.Context) error {
	return s.clearIDSlot(ctx, slotStudentID)
}

// AlumniID returns the alumni identity slot, if set.
func (s *Session) AlumniID(ctx context.Context) (int64, bool, error) {
	return s.getIDSlot(ctx, slotAlumniID)
}

// SetAlumniID marks the session as logged in as the given alumni.
func (s *Session) SetAlumniID(ctx context.Context, id int64) error {
	return s.setIDSlot(ctx, slotAlumniID, id)
}

// ClearAlumniID logs out the alumni identity without touching any other
// slot. Clearing an anonymous session is a no-op.
func (s *Session) ClearAlumniID(ctx context.Context) error {
	return s.clearIDSlot(ctx, slotAlumniID)
}

// Destroy removes the session row and expires the cookie.
func (s *Session) Destroy(ctx context.Context) error {
	if s.token == "" {
		return nil
	}
	if err := s.manager.store.Destroy(ctx, s.token); err != nil {
		return err
	}
	s.token = ""
	s.manager.clearCookie(s.ginCtx)
	return nil
}
