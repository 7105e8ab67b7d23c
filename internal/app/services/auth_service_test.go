package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abroadly/abroadly/internal/app/models/dto"
	"github.com/abroadly/abroadly/internal/pkg/apperrors"
)

func TestSignupCreatesActiveStudent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStudentRepo()
	service := NewAuthService(repo, zerolog.Nop())

	student, err := service.Signup(ctx, &dto.SignupRequest{
		Username:        "maria",
		Email:           "maria@example.com",
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
		FirstName:       "Maria",
		LastName:        "Santos",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	if student.ID == 0 {
		t.Error("Signup did not assign an ID")
	}
	if !student.IsActive {
		t.Error("new student is not active")
	}
	if student.Password == "supersecret" {
		t.Error("password stored in plaintext")
	}
}

func TestSignupPasswordMismatch(t *testing.T) {
	ctx := context.Background()
	service := NewAuthService(newFakeStudentRepo(), zerolog.Nop())

	_, err := service.Signup(ctx, &dto.SignupRequest{
		Username:        "maria",
		Email:           "maria@example.com",
		Password:        "supersecret",
		PasswordConfirm: "different",
	})
	if !errors.Is(err, apperrors.ErrPasswordMismatch) {
		t.Errorf("Signup returned %v, want ErrPasswordMismatch", err)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	service := NewAuthService(newFakeStudentRepo(), zerolog.Nop())

	req := &dto.SignupRequest{
		Username:        "maria",
		Email:           "maria@example.com",
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
	}
	if _, err := service.Signup(ctx, req); err != nil {
		t.Fatalf("first Signup returned error: %v", err)
	}

	_, err := service.Signup(ctx, req)
	if !errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		t.Errorf("second Signup returned %v, want ErrUsernameAlreadyExists", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	service := NewAuthService(newFakeStudentRepo(), zerolog.Nop())

	if _, err := service.Signup(ctx, &dto.SignupRequest{
		Username:        "maria",
		Email:           "maria@example.com",
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
	}); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "nobody", "supersecret"},
		{"wrong password", "maria", "wrongwrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(ctx, &dto.LoginRequest{Username: tt.username, Password: tt.password})
			if !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Errorf("Login returned %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	service := NewAuthService(newFakeStudentRepo(), zerolog.Nop())

	created, err := service.Signup(ctx, &dto.SignupRequest{
		Username:        "maria",
		Email:           "maria@example.com",
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	student, err := service.Login(ctx, &dto.LoginRequest{Username: "maria", Password: "supersecret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if student.ID != created.ID {
		t.Errorf("Login resolved student %d, want %d", student.ID, created.ID)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStudentRepo()
	service := NewAuthService(repo, zerolog.Nop())

	student, err := service.Signup(ctx, &dto.SignupRequest{
		Username:        "maria",
		Email:           "maria@example.com",
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	student.IsActive = false

	_, err = service.Login(ctx, &dto.LoginRequest{Username: "maria", Password: "supersecret"})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Errorf("Login returned %v, want ErrAccountDisabled", err)
	}
}
