package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"feedbackhub/internal/model"
)

// setupTestDB opens an isolated in-memory SQLite database per test. The named
// shared cache keeps the database alive across pooled connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.Feedback{}, &model.AdminUser{}))
	return db
}

func strPtr(s string) *string { return &s }

func TestFeedbackRepository_Create(t *testing.T) {
	repo := NewFeedbackRepository(setupTestDB(t))
	ctx := context.Background()

	feedback := &model.Feedback{
		Name:      strPtr("Maya"),
		Feedback:  "Great service, will use again",
		Rating:    5,
		ProductID: "general",
	}
	err := repo.Create(ctx, feedback)
	assert.NoError(t, err)
	assert.NotZero(t, feedback.ID)
	assert.False(t, feedback.CreatedAt.IsZero())
}

func TestFeedbackRepository_Create_RatingConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1, 100} {
		err := repo.Create(ctx, &model.Feedback{
			Feedback:  "out of range",
			Rating:    rating,
			ProductID: "general",
		})
		assert.Error(t, err, "rating %d must be rejected", rating)
	}

	// No rows persisted by the rejected writes.
	var count int64
	assert.NoError(t, db.Model(&model.Feedback{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	for rating := 1; rating <= 5; rating++ {
		err := repo.Create(ctx, &model.Feedback{
			Feedback:  "in range",
			Rating:    rating,
			ProductID: "general",
		})
		assert.NoError(t, err, "rating %d must be accepted", rating)
	}
}

func TestFeedbackRepository_ListRecent_OrderAndPagination(t *testing.T) {
	repo := NewFeedbackRepository(setupTestDB(t))
	ctx := context.Background()

	// Inserted oldest first: ratings 5, 3, 1.
	for _, rating := range []int{5, 3, 1} {
		require.NoError(t, repo.Create(ctx, &model.Feedback{
			Feedback:  "entry",
			Rating:    rating,
			ProductID: "general",
		}))
	}

	feedbacks, err := repo.ListRecent(ctx, 2, 0)
	assert.NoError(t, err)
	require.Len(t, feedbacks, 2)
	assert.Equal(t, 1, feedbacks[0].Rating) // most recent first
	assert.Equal(t, 3, feedbacks[1].Rating)

	feedbacks, err = repo.ListRecent(ctx, 2, 2)
	assert.NoError(t, err)
	require.Len(t, feedbacks, 1)
	assert.Equal(t, 5, feedbacks[0].Rating)
}

func TestFeedbackRepository_CountAndAverage(t *testing.T) {
	repo := NewFeedbackRepository(setupTestDB(t))
	ctx := context.Background()

	// Empty table: zero count, zero average (never NULL).
	total, average, err := repo.CountAndAverage(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, 0.0, average)

	for _, rating := range []int{2, 4, 4, 5} {
		require.NoError(t, repo.Create(ctx, &model.Feedback{
			Feedback:  "entry",
			Rating:    rating,
			ProductID: "general",
		}))
	}

	total, average, err = repo.CountAndAverage(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.InDelta(t, 3.75, average, 0.0001)
}

func TestFeedbackRepository_CountByRating(t *testing.T) {
	repo := NewFeedbackRepository(setupTestDB(t))
	ctx := context.Background()

	for _, rating := range []int{5, 5, 5, 3, 1} {
		require.NoError(t, repo.Create(ctx, &model.Feedback{
			Feedback:  "entry",
			Rating:    rating,
			ProductID: "general",
		}))
	}

	counts, err := repo.CountByRating(ctx)
	assert.NoError(t, err)

	// Only occurring ratings appear; the service zero-fills the rest.
	require.Len(t, counts, 3)
	assert.Equal(t, model.RatingCount{Rating: 1, Count: 1}, counts[0])
	assert.Equal(t, model.RatingCount{Rating: 3, Count: 1}, counts[1])
	assert.Equal(t, model.RatingCount{Rating: 5, Count: 3}, counts[2])
}

func TestAdminUserRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &model.AdminUser{Username: "admin", PasswordHash: "hash-one"}))
	require.NoError(t, repo.Upsert(ctx, &model.AdminUser{Username: "admin", PasswordHash: "hash-two"}))

	// Still a single row, with the hash rewritten.
	var count int64
	assert.NoError(t, db.Model(&model.AdminUser{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	admin, err := repo.FindByUsername(ctx, "admin")
	assert.NoError(t, err)
	assert.Equal(t, "hash-two", admin.PasswordHash)
}

func TestAdminUserRepository_FindByUsername_NotFound(t *testing.T) {
	repo := NewAdminUserRepository(setupTestDB(t))

	admin, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, admin)
}
