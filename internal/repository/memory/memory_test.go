package memory

import (
	"context"
	"testing"
	"time"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/repository"
	"student_dashboard_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ repository.UserStore         = (*UserRepository)(nil)
	_ repository.QuizStore         = (*QuizRepository)(nil)
	_ repository.AttemptStore      = (*AttemptRepository)(nil)
	_ repository.AnnouncementStore = (*AnnouncementRepository)(nil)
	_ repository.StatsCache        = (*StatsCache)(nil)
)

func TestAttemptRepositoryCopiesRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewAttemptRepository()

	attempt := &model.Attempt{UserID: 1, QuizID: 2, AttemptNumber: 1, StartTime: time.Now()}
	require.NoError(t, repo.Create(ctx, attempt))
	require.NotZero(t, attempt.ID)

	loaded, err := repo.FindByID(ctx, attempt.ID)
	require.NoError(t, err)
	loaded.Answers = append(loaded.Answers, model.AttemptAnswer{QuestionIndex: 0, PointsEarned: 5})
	loaded.TotalScore = 5

	again, err := repo.FindByID(ctx, attempt.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Answers)
	assert.Zero(t, again.TotalScore)

	require.NoError(t, repo.Save(ctx, loaded))
	again, err = repo.FindByID(ctx, attempt.ID)
	require.NoError(t, err)
	require.Len(t, again.Answers, 1)
	assert.NotZero(t, again.Answers[0].ID)
	assert.Equal(t, attempt.ID, again.Answers[0].AttemptID)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
	assert.ErrorIs(t, repo.Save(ctx, &model.Attempt{BaseModel: model.BaseModel{ID: 99}}), util.ErrAttemptNotFound)
}

func TestAttemptRepositoryNumbering(t *testing.T) {
	ctx := context.Background()
	repo := NewAttemptRepository()

	n, err := repo.MaxAttemptNumber(ctx, 1, 2)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.Create(ctx, &model.Attempt{UserID: 1, QuizID: 2, AttemptNumber: 1}))
	require.NoError(t, repo.Create(ctx, &model.Attempt{UserID: 1, QuizID: 2, AttemptNumber: 2, IsSubmitted: true}))
	require.NoError(t, repo.Create(ctx, &model.Attempt{UserID: 1, QuizID: 3, AttemptNumber: 1}))

	err = repo.Create(ctx, &model.Attempt{UserID: 1, QuizID: 2, AttemptNumber: 2})
	assert.ErrorIs(t, err, util.ErrAttemptConflict)

	n, err = repo.MaxAttemptNumber(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	submitted, err := repo.ListSubmittedByQuiz(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, submitted, 1)

	byQuiz, err := repo.ListByUserAndQuiz(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, byQuiz, 2)

	byUser, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byUser, 3)
}

func TestQuizRepositoryFilterAndReplace(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizRepository()

	bio := &model.Quiz{Title: "Bio", Course: "BIO", IsActive: true, Questions: []model.QuizQuestion{
		{Position: 0, Text: "a", Options: []string{"x", "y"}, Points: 1},
	}}
	chem := &model.Quiz{Title: "Chem", Course: "CHEM", IsActive: false}
	require.NoError(t, repo.Create(ctx, bio))
	require.NoError(t, repo.Create(ctx, chem))

	_, total, err := repo.List(ctx, repository.QuizFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	list, total, err := repo.List(ctx, repository.QuizFilter{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 1)
	assert.Equal(t, bio.ID, list[0].ID)

	bio.Title = "Biology"
	bio.Questions = nil
	require.NoError(t, repo.Update(ctx, bio, false))
	stored, err := repo.FindByID(ctx, bio.ID)
	require.NoError(t, err)
	assert.Equal(t, "Biology", stored.Title)
	assert.Len(t, stored.Questions, 1)

	stored.Questions = []model.QuizQuestion{
		{Position: 0, Text: "b", Options: []string{"p", "q"}, Points: 2},
		{Position: 1, Text: "c", Options: []string{"r", "s"}, Points: 3},
	}
	require.NoError(t, repo.Update(ctx, stored, true))
	stored, err = repo.FindByID(ctx, bio.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.TotalPoints())

	_, err = repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestUserRepositoryEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, &model.User{Email: "a@b.c"}))
	assert.ErrorIs(t, repo.Create(ctx, &model.User{Email: "A@B.C"}), util.ErrEmailRegistered)

	_, err := repo.FindByEmail(ctx, "x@y.z")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestStatsCacheExpires(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return clock }
	t.Cleanup(func() { nowFunc = time.Now })

	cache := NewStatsCache(time.Minute)
	require.NoError(t, cache.Set(ctx, &model.QuizStatistics{QuizID: 3, Count: 2}))

	clock = clock.Add(59 * time.Second)
	stats, ok, err := cache.Get(ctx, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, stats.Count)

	clock = clock.Add(time.Second)
	_, ok, err = cache.Get(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, &model.QuizStatistics{QuizID: 3, Count: 4}))
	require.NoError(t, cache.Invalidate(ctx, 3))
	_, ok, err = cache.Get(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}
