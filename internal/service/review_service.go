package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bloomcart/internal/calendar"
	"bloomcart/internal/model"
	"bloomcart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo repository.ReviewRepository
	timeZone   string
	logger     zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, timeZone string, logger zerolog.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		timeZone:   timeZone,
		logger:     logger.With().Str("service", "review").Logger(),
	}
}

// ListApproved retrieves the approved reviews for the public gallery.
func (s *reviewService) ListApproved(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.reviewRepo.ListApproved(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list approved reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// ListAll retrieves every review for moderation.
func (s *reviewService) ListAll(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.reviewRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// ListByDay retrieves reviews submitted on the named calendar day in the
// store timezone.
func (s *reviewService) ListByDay(ctx context.Context, dayKey string) ([]model.Review, error) {
	rng, ok := calendar.DayRange(dayKey, s.timeZone)
	if !ok {
		s.logger.Warn().Str("day_key", dayKey).Msg("malformed day key")
		return nil, model.ErrInvalidDayKey
	}

	reviews, err := s.reviewRepo.ListByCreatedRange(ctx, rng.Start, rng.End)
	if err != nil {
		s.logger.Error().Err(err).Str("day_key", dayKey).Msg("failed to list reviews by day")
		return nil, fmt.Errorf("failed to list reviews by day: %w", err)
	}
	return reviews, nil
}

// Submit validates and stores a new review. Reviews go live only after
// moderation, so IsApproved and IsFeatured always start false.
func (s *reviewService) Submit(ctx context.Context, review *model.Review) error {
	if review == nil {
		return fmt.Errorf("review is nil")
	}
	if strings.TrimSpace(review.Author) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Review author is required")
	}
	if strings.TrimSpace(review.Text) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Review text is required")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return model.ErrInvalidRating
	}

	review.ID = uuid.New()
	review.IsApproved = false
	review.IsFeatured = false
	review.CreatedAt = time.Now()

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		s.logger.Error().Err(err).Str("review_id", review.ID.String()).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info().
		Str("review_id", review.ID.String()).
		Int("rating", review.Rating).
		Msg("review submitted")
	return nil
}

// SetApproved toggles a review's public visibility.
func (s *reviewService) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	if err := s.reviewRepo.SetApproved(ctx, id, approved); err != nil {
		s.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to moderate review")
		return err
	}

	s.logger.Info().Str("review_id", id.String()).Bool("approved", approved).Msg("review moderated")
	return nil
}

// Delete removes a review.
func (s *reviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to delete review")
		return err
	}

	s.logger.Info().Str("review_id", id.String()).Msg("review deleted")
	return nil
}
