package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abroadly/abroadly/internal/pkg/apperrors"
)

func newFavoriteService(programs ...string) (*FavoriteService, *fakeFavoriteRepo) {
	favoriteRepo := newFakeFavoriteRepo()
	return NewFavoriteService(favoriteRepo, newFakeProgramRepo(programs...), zerolog.Nop()), favoriteRepo
}

func TestAddFavoriteResolvesExternalID(t *testing.T) {
	ctx := context.Background()
	service, repo := newFavoriteService("florence-fall")

	favorite, err := service.Add(ctx, 1, "florence-fall")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if favorite == nil || favorite.Program == nil || favorite.Program.ID != 1 {
		t.Fatal("Add did not return the created favorite with program data")
	}

	exists, err := repo.Exists(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if !exists {
		t.Error("favorite not recorded against the resolved program ID")
	}
}

func TestAddFavoriteUnknownProgram(t *testing.T) {
	ctx := context.Background()
	service, _ := newFavoriteService("florence-fall")

	_, err := service.Add(ctx, 1, "no-such-program")
	if !errors.Is(err, apperrors.ErrProgramNotFound) {
		t.Errorf("Add returned %v, want ErrProgramNotFound", err)
	}
}

func TestAddFavoriteTwice(t *testing.T) {
	ctx := context.Background()
	service, _ := newFavoriteService("florence-fall")

	if _, err := service.Add(ctx, 1, "florence-fall"); err != nil {
		t.Fatalf("first Add returned error: %v", err)
	}
	_, err := service.Add(ctx, 1, "florence-fall")
	if !errors.Is(err, apperrors.ErrAlreadyFavorited) {
		t.Errorf("second Add returned %v, want ErrAlreadyFavorited", err)
	}
}

func TestRemoveFavoriteScopedToStudent(t *testing.T) {
	ctx := context.Background()
	service, _ := newFavoriteService("florence-fall")

	if _, err := service.Add(ctx, 1, "florence-fall"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	// Another student removing the same program must not touch it.
	err := service.Remove(ctx, 2, "florence-fall")
	if !errors.Is(err, apperrors.ErrFavoriteNotFound) {
		t.Errorf("Remove for other student returned %v, want ErrFavoriteNotFound", err)
	}

	if ok, _ := service.Check(ctx, 1, "florence-fall"); !ok {
		t.Error("owner's favorite disappeared")
	}

	if err := service.Remove(ctx, 1, "florence-fall"); err != nil {
		t.Fatalf("owner Remove returned error: %v", err)
	}
	if ok, _ := service.Check(ctx, 1, "florence-fall"); ok {
		t.Error("favorite still present after owner removal")
	}
}

func TestListFavoritesOnlyOwn(t *testing.T) {
	ctx := context.Background()
	service, _ := newFavoriteService("florence-fall", "tokyo-spring")

	if _, err := service.Add(ctx, 1, "florence-fall"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := service.Add(ctx, 2, "tokyo-spring"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	favorites, err := service.List(ctx, 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(favorites) != 1 {
		t.Fatalf("List returned %d favorites, want 1", len(favorites))
	}
	if favorites[0].StudentID != 1 {
		t.Errorf("favorite belongs to student %d, want 1", favorites[0].StudentID)
	}
}
