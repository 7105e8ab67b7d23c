package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abroadly/abroadly/internal/app/models/dto"
	"github.com/abroadly/abroadly/internal/pkg/apperrors"
)

func TestCreateReviewBindsAuthorAndProgram(t *testing.T) {
	ctx := context.Background()
	reviewRepo := newFakeReviewRepo()
	service := NewReviewService(reviewRepo, newFakeProgramRepo("florence-fall"), zerolog.Nop())

	review, err := service.Create(ctx, 3, "florence-fall", &dto.CreateReviewRequest{
		Text:   "Best semester of my life.",
		Rating: 5,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if review.AlumniID != 3 {
		t.Errorf("review author = %d, want 3", review.AlumniID)
	}
	if review.ProgramID != 1 {
		t.Errorf("review program = %d, want resolved internal ID 1", review.ProgramID)
	}
	if review.ID == 0 {
		t.Error("review was not assigned an ID")
	}
	if review.ProgramName != "florence-fall" {
		t.Errorf("review program name = %q, want the resolved program's name", review.ProgramName)
	}
}

func TestCreateReviewUnknownProgram(t *testing.T) {
	ctx := context.Background()
	service := NewReviewService(newFakeReviewRepo(), newFakeProgramRepo(), zerolog.Nop())

	_, err := service.Create(ctx, 3, "no-such-program", &dto.CreateReviewRequest{Text: "x", Rating: 3})
	if !errors.Is(err, apperrors.ErrProgramNotFound) {
		t.Errorf("Create returned %v, want ErrProgramNotFound", err)
	}
}

func TestListForProgramFiltersByProgram(t *testing.T) {
	ctx := context.Background()
	reviewRepo := newFakeReviewRepo()
	service := NewReviewService(reviewRepo, newFakeProgramRepo("florence-fall", "tokyo-spring"), zerolog.Nop())

	if _, err := service.Create(ctx, 1, "florence-fall", &dto.CreateReviewRequest{Text: "a", Rating: 4}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := service.Create(ctx, 2, "tokyo-spring", &dto.CreateReviewRequest{Text: "b", Rating: 2}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	reviews, err := service.ListForProgram(ctx, "florence-fall")
	if err != nil {
		t.Fatalf("ListForProgram returned error: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("ListForProgram returned %d reviews, want 1", len(reviews))
	}
	if reviews[0].Text != "a" {
		t.Errorf("review text = %q, want %q", reviews[0].Text, "a")
	}
}
