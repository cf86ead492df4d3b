package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/users-generator-api/internal/generator"
	"github.com/users-generator-api/internal/metrics"
	"github.com/users-generator-api/internal/models"
)

type generatorService struct {
	gen     *generator.Generator
	metrics *metrics.Prom
	log     zerolog.Logger
}

func newGeneratorService(gen *generator.Generator, prom *metrics.Prom, log zerolog.Logger) *generatorService {
	return &generatorService{
		gen:     gen,
		metrics: prom,
		log:     log.With().Str("service", "generator").Logger(),
	}
}

// Generate returns count synthetic profiles. Nothing is persisted.
func (s *generatorService) Generate(ctx context.Context, count int) ([]models.GeneratedProfile, error) {
	profiles, err := s.gen.Generate(count)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ObserveGenerated(len(profiles))
	}
	s.log.Debug().Int("count", len(profiles)).Msg("Profiles generated")

	return profiles, nil
}
