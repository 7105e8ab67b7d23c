package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abroadly/abroadly/internal/pkg/apperrors"
)

func TestMemoryStoreSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	token, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if token == "" {
		t.Fatal("Create returned empty token")
	}

	if err := store.SetSlot(ctx, token, "student_id", int64(42)); err != nil {
		t.Fatalf("SetSlot returned error: %v", err)
	}

	raw, ok, err := store.GetSlot(ctx, token, "student_id")
	if err != nil {
		t.Fatalf("GetSlot returned error: %v", err)
	}
	if !ok {
		t.Fatal("GetSlot reported slot absent after SetSlot")
	}
	if string(raw) != "42" {
		t.Errorf("GetSlot returned %q, want %q", raw, "42")
	}
}

func TestMemoryStoreSlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	token, _ := store.Create(ctx)
	if err := store.SetSlot(ctx, token, "student_id", int64(1)); err != nil {
		t.Fatalf("SetSlot student_id: %v", err)
	}
	if err := store.SetSlot(ctx, token, "alumni_id", int64(2)); err != nil {
		t.Fatalf("SetSlot alumni_id: %v", err)
	}

	if err := store.DeleteSlot(ctx, token, "alumni_id"); err != nil {
		t.Fatalf("DeleteSlot returned error: %v", err)
	}

	if _, ok, _ := store.GetSlot(ctx, token, "alumni_id"); ok {
		t.Error("alumni_id still present after DeleteSlot")
	}
	if _, ok, _ := store.GetSlot(ctx, token, "student_id"); !ok {
		t.Error("student_id removed by deleting alumni_id")
	}
}

func TestMemoryStoreSetSlotUnknownSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	// Both a forgotten token and a tampered non-uuid cookie value must come
	// back as a missing session, never as a different error.
	for _, token := range []string{"deadbeef-0000-0000-0000-000000000000", "not-a-uuid"} {
		err := store.SetSlot(ctx, token, "student_id", int64(1))
		if !errors.Is(err, apperrors.ErrSessionNotFound) {
			t.Errorf("SetSlot(%q) returned %v, want ErrSessionNotFound", token, err)
		}
	}
}

func TestMemoryStoreGetSlotSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	token, _ := store.Create(ctx)
	if err := store.SetSlot(ctx, token, "student_id", int64(1)); err != nil {
		t.Fatalf("SetSlot: %v", err)
	}

	// Bring the session close to expiry, then read it.
	store.mu.Lock()
	store.sessions[token].expiresAt = time.Now().Add(time.Minute)
	store.mu.Unlock()

	if _, ok, err := store.GetSlot(ctx, token, "student_id"); err != nil || !ok {
		t.Fatalf("GetSlot = (ok=%v, err=%v), want slot present", ok, err)
	}

	store.mu.RLock()
	expiresAt := store.sessions[token].expiresAt
	store.mu.RUnlock()
	if remaining := time.Until(expiresAt); remaining < 30*time.Minute {
		t.Errorf("expiry %v away after read, want the full ttl restored", remaining)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(-time.Minute)

	token, _ := store.Create(ctx)
	if _, ok, _ := store.GetSlot(ctx, token, "student_id"); ok {
		t.Error("expired session still readable")
	}
	if err := store.SetSlot(ctx, token, "student_id", int64(1)); !errors.Is(err, apperrors.ErrSessionNotFound) {
		t.Errorf("SetSlot on expired session returned %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStoreDestroy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	token, _ := store.Create(ctx)
	if err := store.SetSlot(ctx, token, "student_id", int64(7)); err != nil {
		t.Fatalf("SetSlot: %v", err)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if _, ok, _ := store.GetSlot(ctx, token, "student_id"); ok {
		t.Error("slot readable after Destroy")
	}

	// Destroying again must stay a no-op.
	if err := store.Destroy(ctx, token); err != nil {
		t.Errorf("second Destroy returned error: %v", err)
	}
}
