package user

import (
	"errors"
	"testing"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/repository"
)

func TestStore(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemory()
	ctx := t.Context()
	if err := repo.Users.Create(ctx,
		repository.User{ID: "doc", Email: "doc@example.com"},
		analytics.Profile{Role: analytics.RoleDoctor, FullName: "Dr. Lima"},
	); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	svc := NewStore(repo.Users)

	p, err := svc.Profile(ctx, "doc")
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if p.FullName != "Dr. Lima" || p.Role != analytics.RoleDoctor {
		t.Errorf("Profile() = %+v", p)
	}

	menu, err := svc.Menu(ctx, "doc")
	if err != nil {
		t.Fatalf("Menu() error = %v", err)
	}
	if last := menu[len(menu)-1]; last.Name != "Patients" {
		t.Errorf("doctor menu ends with %q, want Patients", last.Name)
	}

	if _, err := svc.Profile(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Profile(ghost) error = %v, want ErrUserNotFound", err)
	}
}
