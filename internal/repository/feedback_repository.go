package repository

import (
	"context"

	"gorm.io/gorm"

	"feedbackhub/internal/model"
)

// FeedbackRepository defines feedback persistence operations.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	ListRecent(ctx context.Context, limit, offset int) ([]model.Feedback, error)
	CountAndAverage(ctx context.Context) (total int64, average float64, err error)
	CountByRating(ctx context.Context) ([]model.RatingCount, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository builds a GORM-backed repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create inserts a new feedback row. The rating check constraint rejects
// out-of-range values at the database level.
func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

// ListRecent returns feedback entries ordered newest first. The id tiebreak
// keeps the order stable when rows share a creation timestamp.
func (r *feedbackRepository) ListRecent(ctx context.Context, limit, offset int) ([]model.Feedback, error) {
	var feedbacks []model.Feedback
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// CountAndAverage returns the total number of entries and the mean rating.
// COALESCE keeps the average at 0 for an empty table instead of NULL.
func (r *feedbackRepository) CountAndAverage(ctx context.Context) (int64, float64, error) {
	var row struct {
		Total   int64
		Average float64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Select("COUNT(*) AS total, COALESCE(AVG(rating), 0) AS average").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Total, row.Average, nil
}

// CountByRating returns per-rating counts for ratings that occur at least
// once. Missing buckets are zero-filled by the service layer.
func (r *feedbackRepository) CountByRating(ctx context.Context) ([]model.RatingCount, error) {
	var rows []model.RatingCount
	err := r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Order("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
