package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T, cookie *http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}
	return c, w
}

func issuedCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := http.Response{Header: w.Header()}
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestManagerIssuesCookieOnFirstWrite(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryStore(time.Hour), "test_session", 3600, false)

	c, w := newTestContext(t, nil)
	sess := manager.Load(c)
	if sess.Token() != "" {
		t.Fatalf("fresh request has token %q, want empty", sess.Token())
	}

	if _, ok, err := sess.StudentID(ctx); err != nil || ok {
		t.Fatalf("StudentID on anonymous session = (ok=%v, err=%v), want absent", ok, err)
	}

	if err := sess.SetStudentID(ctx, 42); err != nil {
		t.Fatalf("SetStudentID returned error: %v", err)
	}

	cookie := issuedCookie(t, w, "test_session")
	if cookie == nil {
		t.Fatal("no session cookie issued on first write")
	}
	if cookie.Value != sess.Token() {
		t.Errorf("cookie value %q does not match session token %q", cookie.Value, sess.Token())
	}
	if !cookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	// A follow-up request carrying the cookie sees the same identity.
	c2, _ := newTestContext(t, cookie)
	sess2 := manager.Load(c2)
	id, ok, err := sess2.StudentID(ctx)
	if err != nil {
		t.Fatalf("StudentID returned error: %v", err)
	}
	if !ok || id != 42 {
		t.Errorf("StudentID = (%d, %v), want (42, true)", id, ok)
	}
}

func TestSessionHoldsBothIdentitySlots(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryStore(time.Hour), "test_session", 3600, false)

	c, w := newTestContext(t, nil)
	sess := manager.Load(c)
	if err := sess.SetStudentID(ctx, 1); err != nil {
		t.Fatalf("SetStudentID: %v", err)
	}
	if err := sess.SetAlumniID(ctx, 2); err != nil {
		t.Fatalf("SetAlumniID: %v", err)
	}

	cookie := issuedCookie(t, w, "test_session")
	c2, _ := newTestContext(t, cookie)
	sess2 := manager.Load(c2)

	if id, ok, _ := sess2.StudentID(ctx); !ok || id != 1 {
		t.Errorf("StudentID = (%d, %v), want (1, true)", id, ok)
	}
	if id, ok, _ := sess2.AlumniID(ctx); !ok || id != 2 {
		t.Errorf("AlumniID = (%d, %v), want (2, true)", id, ok)
	}

	// Clearing one slot must not disturb the other.
	if err := sess2.ClearAlumniID(ctx); err != nil {
		t.Fatalf("ClearAlumniID: %v", err)
	}
	if _, ok, _ := sess2.AlumniID(ctx); ok {
		t.Error("alumni slot still set after ClearAlumniID")
	}
	if _, ok, _ := sess2.StudentID(ctx); !ok {
		t.Error("student slot lost after ClearAlumniID")
	}
}

func TestClearOnAnonymousSessionIsNoOp(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryStore(time.Hour), "test_session", 3600, false)

	c, w := newTestContext(t, nil)
	sess := manager.Load(c)
	if err := sess.ClearStudentID(ctx); err != nil {
		t.Errorf("ClearStudentID on anonymous session returned error: %v", err)
	}
	if cookie := issuedCookie(t, w, "test_session"); cookie != nil {
		t.Error("cookie issued by a logout on an anonymous session")
	}
}

func TestStaleCookieGetsFreshSessionOnWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	manager := NewManager(store, "test_session", 3600, false)

	// Cookie points at a session the store no longer has.
	stale := &http.Cookie{Name: "test_session", Value: "0b9fba73-74b5-4a95-a5a7-1a73a8a76a1f"}
	c, w := newTestContext(t, stale)
	sess := manager.Load(c)

	if err := sess.SetStudentID(ctx, 9); err != nil {
		t.Fatalf("SetStudentID with stale cookie returned error: %v", err)
	}
	if sess.Token() == stale.Value {
		t.Error("stale token was reused instead of replaced")
	}
	if cookie := issuedCookie(t, w, "test_session"); cookie == nil {
		t.Error("no replacement cookie issued for stale session")
	}
}

func TestTamperedCookieGetsFreshSessionOnWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	manager := NewManager(store, "test_session", 3600, false)

	// Cookie value is not even a token; a login must still succeed.
	garbage := &http.Cookie{Name: "test_session", Value: "definitely-not-a-token"}
	c, w := newTestContext(t, garbage)
	sess := manager.Load(c)

	if err := sess.SetStudentID(ctx, 4); err != nil {
		t.Fatalf("SetStudentID with tampered cookie returned error: %v", err)
	}
	if sess.Token() == garbage.Value {
		t.Error("tampered token was reused instead of replaced")
	}
	if cookie := issuedCookie(t, w, "test_session"); cookie == nil {
		t.Error("no replacement cookie issued for tampered session")
	}
}

func TestDestroyRemovesSessionAndExpiresCookie(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryStore(time.Hour), "test_session", 3600, false)

	c, w := newTestContext(t, nil)
	sess := manager.Load(c)
	if err := sess.SetStudentID(ctx, 5); err != nil {
		t.Fatalf("SetStudentID: %v", err)
	}
	token := sess.Token()

	if err := sess.Destroy(ctx); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if sess.Token() != "" {
		t.Error("session token not cleared by Destroy")
	}

	c2, _ := newTestContext(t, &http.Cookie{Name: "test_session", Value: token})
	sess2 := manager.Load(c2)
	if _, ok, _ := sess2.StudentID(ctx); ok {
		t.Error("destroyed session still resolves an identity")
	}

	res := http.Response{Header: w.Header()}
	var expired bool
	for _, cookie := range res.Cookies() {
		if cookie.Name == "test_session" && cookie.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("Destroy did not expire the session cookie")
	}
}
