package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/users-generator-api/internal/access"
	"github.com/users-generator-api/internal/generator"
	"github.com/users-generator-api/internal/models"
	"github.com/users-generator-api/internal/repository"
	"github.com/users-generator-api/internal/security"
)

// defaultAccounts are ensured on startup when seeding is enabled
var defaultAccounts = []struct {
	username string
	email    string
	role     models.Role
}{
	{"admin", "admin@example.com", models.RoleAdmin},
	{"user", "user@example.com", models.RoleUser},
}

type userService struct {
	repos  *repository.Repositories
	hasher *security.Hasher
	gen    *generator.Generator
	log    zerolog.Logger
}

func newUserService(repos *repository.Repositories, hasher *security.Hasher, gen *generator.Generator, log zerolog.Logger) *userService {
	return &userService{
		repos:  repos,
		hasher: hasher,
		gen:    gen,
		log:    log.With().Str("service", "user").Logger(),
	}
}

// Me returns the authenticated user. A token whose user no longer exists
// is treated as unauthenticated.
func (s *userService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUnauthenticated
	}
	return user, nil
}

// ViewProfile returns the profile of username if the requester may see it.
// A missing target is reported before the access check.
func (s *userService) ViewProfile(ctx context.Context, requesterID, username string) (*models.User, error) {
	requester, err := s.Me(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	target, err := s.repos.User.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if target == nil {
		return nil, models.ErrNotFound
	}

	if !access.CanView(requester, target) {
		return nil, models.ErrForbidden
	}

	return target, nil
}

// SeedDefaults creates the admin and user accounts with the given password
// unless their usernames already exist. Remaining profile fields are
// synthetic.
func (s *userService) SeedDefaults(ctx context.Context, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	profiles, err := s.gen.Generate(len(defaultAccounts))
	if err != nil {
		return err
	}

	for i, acct := range defaultAccounts {
		exists, err := s.repos.User.UsernameExists(ctx, acct.username)
		if err != nil {
			return fmt.Errorf("failed to check seed account %s: %w", acct.username, err)
		}
		if exists {
			s.log.Debug().Str("username", acct.username).Msg("Seed account already present")
			continue
		}

		p := profiles[i]
		user := &models.User{
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			BirthDate:    p.BirthDate,
			City:         p.City,
			Country:      p.Country,
			Avatar:       p.Avatar,
			Company:      p.Company,
			JobPosition:  p.JobPosition,
			Mobile:       p.Mobile,
			Username:     acct.username,
			Email:        acct.email,
			PasswordHash: hash,
			Role:         acct.role,
		}
		if err := s.repos.User.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create seed account %s: %w", acct.username, err)
		}

		s.log.Info().Str("username", acct.username).Str("role", string(acct.role)).Msg("Seed account created")
	}

	return nil
}

// Count returns the number of stored users
func (s *userService) Count(ctx context.Context) (int, error) {
	return s.repos.User.Count(ctx)
}
