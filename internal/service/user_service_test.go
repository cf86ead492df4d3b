package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/users-generator-api/internal/models"
)

func TestViewProfile(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	admin := h.addUser(t, "admin", "admin@example.com", "password", models.RoleAdmin)
	alice := h.addUser(t, "alice", "alice@example.com", "password", models.RoleUser)
	h.addUser(t, "bob", "bob@example.com", "password", models.RoleUser)

	tests := []struct {
		name        string
		requesterID string
		username    string
		wantErr     error
	}{
		{"admin views other", admin.ID, "alice", nil},
		{"admin views self", admin.ID, "admin", nil},
		{"user views self", alice.ID, "alice", nil},
		{"user views other", alice.ID, "bob", models.ErrForbidden},
		{"user views admin", alice.ID, "admin", models.ErrForbidden},
		{"missing target reported before access check", alice.ID, "nobody", models.ErrNotFound},
		{"admin views missing", admin.ID, "nobody", models.ErrNotFound},
		{"requester gone", "00000000-0000-0000-0000-000000000009", "alice", models.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := h.services.User.ViewProfile(ctx, tt.requesterID, tt.username)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ViewProfile() failed: %v", err)
			}
			if user.Username != tt.username {
				t.Errorf("Expected %s, got %s", tt.username, user.Username)
			}
		})
	}
}

func TestMe(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	alice := h.addUser(t, "alice", "alice@example.com", "password", models.RoleUser)

	me, err := h.services.User.Me(ctx, alice.ID)
	if err != nil || me.Username != "alice" {
		t.Errorf("Me() = (%v, %v)", me, err)
	}

	if _, err := h.services.User.Me(ctx, "missing"); !errors.Is(err, models.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated for unknown id, got %v", err)
	}

	h.userRepo.LookupError = errors.New("timeout")
	if _, err := h.services.User.Me(ctx, alice.ID); err == nil || errors.Is(err, models.ErrUnauthenticated) {
		t.Errorf("Store errors must surface as internal errors, got %v", err)
	}
}

func TestSeedDefaults(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := h.services.User.SeedDefaults(ctx, "password"); err != nil {
			t.Fatalf("SeedDefaults() run %d failed: %v", i+1, err)
		}
	}

	if n, _ := h.services.User.Count(ctx); n != 2 {
		t.Fatalf("Expected exactly 2 seeded users, got %d", n)
	}

	admin, _ := h.userRepo.GetByUsername(ctx, "admin")
	if admin == nil || admin.Role != models.RoleAdmin || admin.Email != "admin@example.com" {
		t.Errorf("Unexpected admin account: %+v", admin)
	}
	user, _ := h.userRepo.GetByUsername(ctx, "user")
	if user == nil || user.Role != models.RoleUser || user.Email != "user@example.com" {
		t.Errorf("Unexpected user account: %+v", user)
	}
	if len(admin.Country) != 2 || admin.BirthDate == "" {
		t.Errorf("Seeded profile should be filled with synthetic data: %+v", admin)
	}

	if _, err := h.services.Auth.Authenticate(ctx, "admin@example.com", "password"); err != nil {
		t.Errorf("Seeded admin cannot log in: %v", err)
	}
}
