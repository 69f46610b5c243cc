package service

import (
	"context"
	"testing"
	"time"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	quizzes  *memory.QuizRepository
	attempts *memory.AttemptRepository
	cache    *memory.StatsCache
	quizSvc  *QuizService
	svc      *AttemptService
	clock    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		quizzes:  memory.NewQuizRepository(),
		attempts: memory.NewAttemptRepository(),
		cache:    memory.NewStatsCache(5 * time.Minute),
		clock:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.quizSvc = NewQuizService(f.quizzes)
	f.svc = NewAttemptService(f.quizzes, f.attempts, f.cache)
	f.svc.now = func() time.Time { return f.clock }
	f.cache.Now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

// twoQuestionReq describes a quiz worth 30 points: question 0 (10 points,
// answer 1) and question 1 (20 points, answer 0).
func twoQuestionReq() QuizReq {
	return QuizReq{
		Title:  "Cell biology",
		Course: "BIO101",
		Topic:  "cells",
		Questions: []QuestionReq{
			{Text: "Powerhouse of the cell?", Options: []string{"Nucleus", "Mitochondria", "Ribosome"}, CorrectAnswer: 1, Points: 10},
			{Text: "Carries genetic code?", Options: []string{"DNA", "Lipid"}, CorrectAnswer: 0, Points: 20},
		},
	}
}

func (f *fixture) createQuiz(t *testing.T) *model.Quiz {
	t.Helper()
	quiz, err := f.quizSvc.CreateQuiz(context.Background(), 1, twoQuestionReq())
	require.NoError(t, err)
	return quiz
}
