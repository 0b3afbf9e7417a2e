package planner

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Service is the entry point for plan generation. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	generator  Generator
	normalizer *Normalizer
	log        *zap.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithExtractor replaces the JSON extraction heuristic.
func WithExtractor(e Extractor) Option {
	return func(s *Service) { s.normalizer = NewNormalizer(e) }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

func NewService(gen Generator, opts ...Option) *Service {
	s := &Service{
		generator:  gen,
		normalizer: NewNormalizer(nil),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate returns a plan for req. Remote and parsing failures are absorbed by
// Fallback; the only errors are ErrMissingCredential and ErrInvalidRequest.
func (s *Service) Generate(ctx context.Context, req PlanningRequest, credential string) (*TravelPlan, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, ErrMissingCredential
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	log := s.log.With(zap.String("destination", req.Destination), zap.Int("days", req.Days()))

	plan, reason := s.remote(ctx, req, credential, log)
	if plan != nil {
		generationsTotal.WithLabelValues(sourceRemote, reasonOK).Inc()
		generationDuration.WithLabelValues(sourceRemote).Observe(time.Since(start).Seconds())
		if plan.TotalCost != nil && *plan.TotalCost > plan.Budget {
			log.Warn("generated plan exceeds budget",
				zap.Float64("total_cost", *plan.TotalCost),
				zap.Float64("budget", plan.Budget),
			)
		}
		return plan, nil
	}

	generationsTotal.WithLabelValues(sourceFallback, reason).Inc()
	plan = Fallback(req)
	generationDuration.WithLabelValues(sourceFallback).Observe(time.Since(start).Seconds())
	log.Info("using fallback plan", zap.String("reason", reason))
	return plan, nil
}

// remote returns a normalised model plan, or nil and the reason it could not.
func (s *Service) remote(ctx context.Context, req PlanningRequest, credential string, log *zap.Logger) (*TravelPlan, string) {
	if s.generator == nil {
		return nil, reasonRemoteFailed
	}
	prompt := BuildPrompt(req, req.Days())

	raw, err := s.generator.Generate(ctx, prompt, credential)
	if err != nil {
		log.Warn("remote generation failed", zap.Error(err))
		return nil, reasonRemoteFailed
	}

	plan, err := s.normalizer.Normalize(raw, req)
	switch {
	case err == nil:
		return plan, reasonOK
	case errors.Is(err, ErrSchemaMismatch):
		log.Warn("model plan rejected", zap.Error(err))
		return nil, reasonSchema
	default:
		log.Warn("model reply not parseable", zap.Error(err))
		return nil, reasonUnparseable
	}
}
