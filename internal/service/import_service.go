package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/users-generator-api/internal/metrics"
	"github.com/users-generator-api/internal/models"
	"github.com/users-generator-api/internal/repository"
	"github.com/users-generator-api/internal/security"
	"github.com/users-generator-api/internal/validation"
)

// importService is the concrete implementation of ImportService
type importService struct {
	repos   *repository.Repositories
	hasher  *security.Hasher
	metrics *metrics.Prom
	log     zerolog.Logger
}

// newImportService creates a new ImportService
func newImportService(repos *repository.Repositories, hasher *security.Hasher, prom *metrics.Prom, log zerolog.Logger) *importService {
	return &importService{
		repos:   repos,
		hasher:  hasher,
		metrics: prom,
		log:     log.With().Str("service", "import").Logger(),
	}
}

// ImportFile parses r as a JSON array of user objects and imports it.
// A payload that is not such an array fails with models.ErrMalformedInput
// before any record is touched.
func (s *importService) ImportFile(ctx context.Context, r io.Reader) (*models.ImportOutcome, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import payload: %w", err)
	}

	records, err := validation.ParseBatch(data)
	if err != nil {
		s.log.Warn().Err(err).Int("bytes", len(data)).Msg("Rejected malformed import payload")
		return nil, err
	}

	return s.ImportBatch(ctx, records), nil
}

// ImportBatch validates and stores each record in order. Every record ends
// up either imported or failed; one bad record never stops the batch and
// earlier inserts are kept.
func (s *importService) ImportBatch(ctx context.Context, records []map[string]interface{}) *models.ImportOutcome {
	startTime := time.Now()
	outcome := &models.ImportOutcome{Total: len(records)}
	validator := validation.NewValidator()

	for i, raw := range records {
		if err := s.importRecord(ctx, validator, raw); err != nil {
			outcome.Failed++
			s.log.Debug().Int("index", i).Err(err).Msg("Record rejected")
			continue
		}
		outcome.Imported++
	}

	duration := time.Since(startTime)

	var errorRate float64
	if outcome.Total > 0 {
		errorRate = float64(outcome.Failed) / float64(outcome.Total) * 100
	}

	s.log.Info().
		Int("total", outcome.Total).
		Int("imported", outcome.Imported).
		Int("failed", outcome.Failed).
		Float64("error_rate_pct", errorRate).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("Import completed")

	if s.metrics != nil {
		s.metrics.ObserveImport(outcome.Imported, outcome.Failed, duration)
	}

	return outcome
}

// importRecord makes at most one insert attempt. The username and email are
// claimed in the batch caches only after the insert succeeds.
func (s *importService) importRecord(ctx context.Context, validator *validation.Validator, raw map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rec, errs := validation.DecodeCandidate(raw)
	errs = append(errs, validator.ValidateProfile(rec)...)
	if len(errs) > 0 {
		return recordError(errs)
	}

	role, ok := models.ParseRole(rec.Role)
	if !ok {
		return recordError([]validation.ValidationError{{Field: "role", Rule: "oneof", Message: "must be one of admin, user"}})
	}

	taken, err := s.repos.User.UsernameExists(ctx, rec.Username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return recordError([]validation.ValidationError{{Field: "username", Rule: "unique", Message: "has already been taken"}})
	}

	taken, err = s.repos.User.EmailExists(ctx, rec.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return recordError([]validation.ValidationError{{Field: "email", Rule: "unique", Message: "has already been taken"}})
	}

	hash, err := s.hasher.Hash(rec.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		BirthDate:    rec.BirthDate,
		City:         rec.City,
		Country:      rec.Country,
		Avatar:       rec.Avatar,
		Company:      rec.Company,
		JobPosition:  rec.JobPosition,
		Mobile:       rec.Mobile,
		Username:     rec.Username,
		Email:        rec.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.repos.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("username or email already taken: %w", err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	validator.AddUsername(rec.Username)
	validator.AddUserEmail(rec.Email)
	return nil
}

func recordError(errs []validation.ValidationError) error {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" "+e.Message)
	}
	return errors.New(strings.Join(parts, "; "))
}
