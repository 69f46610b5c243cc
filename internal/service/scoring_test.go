package service

import (
	"testing"

	"student_dashboard_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestScorePercentage(t *testing.T) {
	cases := []struct {
		score, possible, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 30, 0},
		{10, 30, 33},
		{20, 30, 67},
		{30, 30, 100},
		{1, 8, 13},
		{40, 30, 100},
		{-5, 30, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, scorePercentage(tc.score, tc.possible), "%d/%d", tc.score, tc.possible)
	}
}

func TestGradeAnswer(t *testing.T) {
	q := model.QuizQuestion{Options: []string{"a", "b"}, CorrectAnswer: 1, Points: 7}

	right := gradeAnswer(3, 1, q)
	assert.True(t, right.IsCorrect)
	assert.Equal(t, 7, right.PointsEarned)
	assert.Equal(t, 3, right.QuestionIndex)

	wrong := gradeAnswer(3, 0, q)
	assert.False(t, wrong.IsCorrect)
	assert.Zero(t, wrong.PointsEarned)

	outOfRange := gradeAnswer(3, 9, q)
	assert.False(t, outOfRange.IsCorrect)
	assert.Zero(t, outOfRange.PointsEarned)
	assert.Equal(t, 9, outOfRange.SelectedOption)
}

func TestApplyAnswerReplacesByQuestionIndex(t *testing.T) {
	attempt := &model.Attempt{TotalPossible: 30}

	applyAnswer(attempt, model.AttemptAnswer{QuestionIndex: 1, PointsEarned: 0})
	attempt.Answers[0].ID = 42
	applyAnswer(attempt, model.AttemptAnswer{QuestionIndex: 0, PointsEarned: 10, IsCorrect: true})
	applyAnswer(attempt, model.AttemptAnswer{QuestionIndex: 1, PointsEarned: 20, IsCorrect: true})

	assert.Len(t, attempt.Answers, 2)
	answer, ok := attempt.AnswerFor(1)
	assert.True(t, ok)
	assert.Equal(t, uint(42), answer.ID)
	assert.Equal(t, 20, answer.PointsEarned)
	assert.Equal(t, 30, attempt.TotalScore)
	assert.Equal(t, 100, attempt.Percentage)
}

func TestBestAttemptPrefersLaterOnTie(t *testing.T) {
	attempts := []model.Attempt{
		{AttemptNumber: 1, TotalScore: 20},
		{AttemptNumber: 2, TotalScore: 10},
		{AttemptNumber: 3, TotalScore: 20},
	}
	best, ok := bestAttempt(attempts)
	assert.True(t, ok)
	assert.Equal(t, 3, best.AttemptNumber)

	_, ok = bestAttempt(nil)
	assert.False(t, ok)
}

func TestCurrentAttemptSkipsSubmitted(t *testing.T) {
	attempts := []model.Attempt{
		{AttemptNumber: 1},
		{AttemptNumber: 2},
		{AttemptNumber: 3, IsSubmitted: true},
	}
	current, ok := currentAttempt(attempts)
	assert.True(t, ok)
	assert.Equal(t, 2, current.AttemptNumber)

	_, ok = currentAttempt([]model.Attempt{{AttemptNumber: 1, IsSubmitted: true}})
	assert.False(t, ok)
}

func TestComputeStatistics(t *testing.T) {
	empty := computeStatistics(5, nil)
	assert.Equal(t, model.QuizStatistics{QuizID: 5}, empty)

	stats := computeStatistics(5, []model.Attempt{
		{Percentage: 100, IsSubmitted: true},
		{Percentage: 33, IsSubmitted: true},
		{Percentage: 60, IsSubmitted: true},
		{Percentage: 90},
	})
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 64, stats.Mean)
	assert.Equal(t, 100, stats.Max)
	assert.Equal(t, 33, stats.Min)
	assert.Equal(t, 67, stats.PassRate)
}
