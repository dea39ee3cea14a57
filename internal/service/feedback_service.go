package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"feedbackhub/internal/cache"
	"feedbackhub/internal/errors"
	"feedbackhub/internal/events"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
)

const (
	// DefaultListLimit is used when the caller does not supply a limit.
	DefaultListLimit = 50
	// MaxListLimit caps caller-supplied limits to avoid unbounded result sets.
	MaxListLimit = 100
	// DefaultProductID tags entries submitted without a product.
	DefaultProductID = "general"

	recentStatsCount = 10
	statsCacheKey    = "feedback:stats"
	statsCacheTTL    = 30 * time.Second
)

// SubmitFeedbackInput carries a new feedback submission.
type SubmitFeedbackInput struct {
	Name      *string
	Email     *string
	Feedback  string
	Rating    int
	ProductID string
}

// Stats is the aggregate view served to the admin dashboard.
type Stats struct {
	TotalFeedbacks     int64               `json:"totalFeedbacks"`
	AverageRating      float64             `json:"averageRating"`
	RatingDistribution []model.RatingCount `json:"ratingDistribution"`
	RecentFeedbacks    []model.Feedback    `json:"recentFeedbacks"`
}

// FeedbackService handles feedback submission and admin reads.
type FeedbackService interface {
	Submit(ctx context.Context, input SubmitFeedbackInput) (*model.Feedback, error)
	List(ctx context.Context, limit, offset int) ([]model.Feedback, error)
	Stats(ctx context.Context) (*Stats, error)
}

type feedbackService struct {
	repo      repository.FeedbackRepository
	publisher events.Publisher
	cache     *cache.Client
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(repo repository.FeedbackRepository, publisher events.Publisher, cache *cache.Client) FeedbackService {
	return &feedbackService{
		repo:      repo,
		publisher: publisher,
		cache:     cache,
	}
}

// Submit validates and persists a new feedback entry. On success it emits a
// FeedbackCreated event; a failed publish is logged and never fails the write.
func (s *feedbackService) Submit(ctx context.Context, input SubmitFeedbackInput) (*model.Feedback, error) {
	if input.Feedback == "" {
		return nil, errors.ErrFeedbackRequired
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.ErrInvalidRating
	}

	productID := input.ProductID
	if productID == "" {
		productID = DefaultProductID
	}

	feedback := &model.Feedback{
		Name:      input.Name,
		Email:     input.Email,
		Feedback:  input.Feedback,
		Rating:    input.Rating,
		ProductID: productID,
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	// The entry is durable at this point. Subscribers are best-effort.
	if err := s.publisher.FeedbackCreated(ctx, feedback); err != nil {
		log.Printf("dropped feedback event for entry %d: %v", feedback.ID, err)
	}

	// Aggregates changed; next stats read recomputes.
	_ = s.cache.Delete(ctx, statsCacheKey)

	return feedback, nil
}

// List returns feedback entries ordered newest first. Limit and offset fall
// back to defaults when unset or negative, and the limit is capped.
func (s *feedbackService) List(ctx context.Context, limit, offset int) ([]model.Feedback, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	feedbacks, err := s.repo.ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if feedbacks == nil {
		feedbacks = []model.Feedback{}
	}
	return feedbacks, nil
}

// Stats computes the dashboard aggregates: total count, mean rating rounded
// to two decimal places (exactly 0 for an empty table), a zero-filled rating
// distribution over 1-5, and the ten most recent entries.
func (s *feedbackService) Stats(ctx context.Context) (*Stats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var cached Stats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	total, average, err := s.repo.CountAndAverage(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByRating(ctx)
	if err != nil {
		return nil, err
	}

	distribution := make([]model.RatingCount, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		bucket := model.RatingCount{Rating: rating}
		for _, row := range counts {
			if row.Rating == rating {
				bucket.Count = row.Count
				break
			}
		}
		distribution = append(distribution, bucket)
	}

	recent, err := s.repo.ListRecent(ctx, recentStatsCount, 0)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []model.Feedback{}
	}

	stats := &Stats{
		TotalFeedbacks:     total,
		AverageRating:      decimal.NewFromFloat(average).Round(2).InexactFloat64(),
		RatingDistribution: distribution,
		RecentFeedbacks:    recent,
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}

	return stats, nil
}
