package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/repository"
	"student_dashboard_backend/internal/util"
	"student_dashboard_backend/pkg/logger"
	"student_dashboard_backend/pkg/monitoring"
	"student_dashboard_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AttemptService runs the attempt lifecycle against the quiz catalog.
// Each mutation loads the attempt, changes it in memory and saves it back;
// there is no version check, so concurrent writers to the same attempt
// race and the last save wins.
type AttemptService struct {
	Quizzes  repository.QuizStore
	Attempts repository.AttemptStore
	// Cache is optional.
	Cache repository.StatsCache

	now func() time.Time
}

func NewAttemptService(quizzes repository.QuizStore, attempts repository.AttemptStore, cache repository.StatsCache) *AttemptService {
	return &AttemptService{
		Quizzes:  quizzes,
		Attempts: attempts,
		Cache:    cache,
		now:      time.Now,
	}
}

// RecordAnswerReq is the body of an answer submission.
type RecordAnswerReq struct {
	QuestionIndex  *int `json:"questionIndex" binding:"required,min=0"`
	SelectedOption *int `json:"selectedOption" binding:"required,min=0"`
}

func (s *AttemptService) StartAttempt(ctx context.Context, userID, quizID uint) (*model.Attempt, error) {
	ctx, span := tracing.Tracer().Start(ctx, "AttemptService.StartAttempt")
	defer span.End()

	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, util.ErrQuizInactive
	}

	last, err := s.Attempts.MaxAttemptNumber(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	attempt := &model.Attempt{
		UserID:        userID,
		QuizID:        quizID,
		AttemptNumber: last + 1,
		Answers:       []model.AttemptAnswer{},
		TotalPossible: quiz.TotalPoints(),
		StartTime:     s.now(),
	}
	if err := s.Attempts.Create(ctx, attempt); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("attempt.number", attempt.AttemptNumber))
	monitoring.AttemptsStarted.Inc()
	logger.Log.Info("Attempt started",
		zap.Uint("userId", userID),
		zap.Uint("quizId", quizID),
		zap.Uint("attemptId", attempt.ID),
		zap.Int("attemptNumber", attempt.AttemptNumber),
	)
	return attempt, nil
}

// loadOwned fetches an attempt the caller may modify.
func (s *AttemptService) loadOwned(ctx context.Context, userID, attemptID uint) (*model.Attempt, error) {
	attempt, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if attempt.State() == model.AttemptSubmitted {
		return nil, util.ErrAttemptSubmitted
	}
	return attempt, nil
}

// RecordAnswer grades selectedOption against the quiz as it is stored now
// and stores it for questionIndex, replacing an earlier answer.
func (s *AttemptService) RecordAnswer(ctx context.Context, userID, attemptID uint, questionIndex, selectedOption int) (*model.Attempt, error) {
	ctx, span := tracing.Tracer().Start(ctx, "AttemptService.RecordAnswer")
	defer span.End()

	if questionIndex < 0 || selectedOption < 0 {
		return nil, fmt.Errorf("%w: questionIndex and selectedOption must be non-negative", util.ErrValidation)
	}

	attempt, err := s.loadOwned(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.Quizzes.FindByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}
	question, ok := quiz.Question(questionIndex)
	if !ok {
		return nil, fmt.Errorf("%w: index %d", util.ErrQuestionNotFound, questionIndex)
	}

	answer := gradeAnswer(questionIndex, selectedOption, question)
	applyAnswer(attempt, answer)

	if err := s.Attempts.Save(ctx, attempt); err != nil {
		return nil, err
	}

	monitoring.AnswersRecorded.WithLabelValues(strconv.FormatBool(answer.IsCorrect)).Inc()
	logger.Log.Debug("Answer recorded",
		zap.Uint("attemptId", attempt.ID),
		zap.Int("questionIndex", questionIndex),
		zap.Bool("correct", answer.IsCorrect),
		zap.Int("totalScore", attempt.TotalScore),
	)
	return attempt, nil
}

func (s *AttemptService) SubmitAttempt(ctx context.Context, userID, attemptID uint) (*model.Attempt, error) {
	ctx, span := tracing.Tracer().Start(ctx, "AttemptService.SubmitAttempt")
	defer span.End()

	attempt, err := s.loadOwned(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	spent := int(now.Sub(attempt.StartTime) / time.Second)
	if spent < 0 {
		spent = 0
	}
	attempt.EndTime = &now
	attempt.TimeSpent = spent
	attempt.IsCompleted = true
	attempt.IsSubmitted = true

	if err := s.Attempts.Save(ctx, attempt); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, attempt.QuizID); err != nil {
			logger.Log.Warn("Failed to invalidate quiz statistics", zap.Uint("quizId", attempt.QuizID), zap.Error(err))
		}
	}

	monitoring.AttemptsSubmitted.Inc()
	monitoring.SubmittedPercentage.Observe(float64(attempt.Percentage))
	logger.Log.Info("Attempt submitted",
		zap.Uint("attemptId", attempt.ID),
		zap.Int("totalScore", attempt.TotalScore),
		zap.Int("percentage", attempt.Percentage),
		zap.Int("timeSpent", attempt.TimeSpent),
	)
	return attempt, nil
}

// GetAttempt returns an attempt to its owner, or to an admin.
func (s *AttemptService) GetAttempt(ctx context.Context, userID uint, isAdmin bool, attemptID uint) (*model.Attempt, error) {
	attempt, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}
	return attempt, nil
}

func (s *AttemptService) ListAttempts(ctx context.Context, userID, quizID uint) ([]model.Attempt, error) {
	if _, err := s.Quizzes.FindByID(ctx, quizID); err != nil {
		return nil, err
	}
	return s.Attempts.ListByUserAndQuiz(ctx, userID, quizID)
}

func (s *AttemptService) ListUserAttempts(ctx context.Context, userID uint) ([]model.Attempt, error) {
	return s.Attempts.ListByUser(ctx, userID)
}

func (s *AttemptService) BestAttempt(ctx context.Context, userID, quizID uint) (*model.Attempt, error) {
	attempts, err := s.Attempts.ListByUserAndQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	best, ok := bestAttempt(attempts)
	if !ok {
		return nil, util.ErrAttemptNotFound
	}
	return best, nil
}

// CurrentAttempt returns the attempt still in progress, if any; callers
// start a new one otherwise.
func (s *AttemptService) CurrentAttempt(ctx context.Context, userID, quizID uint) (*model.Attempt, error) {
	attempts, err := s.Attempts.ListByUserAndQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	current, ok := currentAttempt(attempts)
	if !ok {
		return nil, util.ErrAttemptNotFound
	}
	return current, nil
}

func (s *AttemptService) ComputeStatistics(ctx context.Context, quizID uint) (*model.QuizStatistics, error) {
	ctx, span := tracing.Tracer().Start(ctx, "AttemptService.ComputeStatistics")
	defer span.End()

	if _, err := s.Quizzes.FindByID(ctx, quizID); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, quizID)
		if err != nil {
			logger.Log.Warn("Failed to read cached quiz statistics", zap.Uint("quizId", quizID), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	attempts, err := s.Attempts.ListSubmittedByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	stats := computeStatistics(quizID, attempts)

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, &stats); err != nil {
			logger.Log.Warn("Failed to cache quiz statistics", zap.Uint("quizId", quizID), zap.Error(err))
		}
	}
	return &stats, nil
}
