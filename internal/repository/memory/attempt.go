package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/util"
)

type AttemptRepository struct {
	mu        sync.RWMutex
	seq       sequence
	answerSeq sequence
	attempts  map[uint]model.Attempt
}

func NewAttemptRepository() *AttemptRepository {
	return &AttemptRepository{attempts: make(map[uint]model.Attempt)}
}

func copyAttempt(a model.Attempt) model.Attempt {
	out := a
	out.Answers = append([]model.AttemptAnswer(nil), a.Answers...)
	sort.Slice(out.Answers, func(i, j int) bool {
		return out.Answers[i].QuestionIndex < out.Answers[j].QuestionIndex
	})
	if a.EndTime != nil {
		end := *a.EndTime
		out.EndTime = &end
	}
	return out
}

func (r *AttemptRepository) Create(_ context.Context, attempt *model.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.attempts {
		if a.UserID == attempt.UserID && a.QuizID == attempt.QuizID && a.AttemptNumber == attempt.AttemptNumber {
			return fmt.Errorf("%w: attempt number %d", util.ErrAttemptConflict, attempt.AttemptNumber)
		}
	}
	now := nowFunc()
	attempt.ID = r.seq.nextID()
	attempt.CreatedAt = now
	attempt.UpdatedAt = now
	r.attempts[attempt.ID] = copyAttempt(*attempt)
	return nil
}

func (r *AttemptRepository) FindByID(_ context.Context, id uint) (*model.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.attempts[id]
	if !ok {
		return nil, util.ErrAttemptNotFound
	}
	out := copyAttempt(a)
	return &out, nil
}

func (r *AttemptRepository) Save(_ context.Context, attempt *model.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.attempts[attempt.ID]; !ok {
		return util.ErrAttemptNotFound
	}
	for i := range attempt.Answers {
		if attempt.Answers[i].ID == 0 {
			attempt.Answers[i].ID = r.answerSeq.nextID()
		}
		attempt.Answers[i].AttemptID = attempt.ID
	}
	attempt.UpdatedAt = nowFunc()
	r.attempts[attempt.ID] = copyAttempt(*attempt)
	return nil
}

func (r *AttemptRepository) MaxAttemptNumber(_ context.Context, userID, quizID uint) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for _, a := range r.attempts {
		if a.UserID == userID && a.QuizID == quizID && a.AttemptNumber > max {
			max = a.AttemptNumber
		}
	}
	return max, nil
}

func (r *AttemptRepository) collect(keep func(model.Attempt) bool) []model.Attempt {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Attempt
	for _, a := range r.attempts {
		if keep(a) {
			out = append(out, copyAttempt(a))
		}
	}
	return out
}

func (r *AttemptRepository) ListByUserAndQuiz(_ context.Context, userID, quizID uint) ([]model.Attempt, error) {
	out := r.collect(func(a model.Attempt) bool {
		return a.UserID == userID && a.QuizID == quizID
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].AttemptNumber < out[j].AttemptNumber
	})
	return out, nil
}

func (r *AttemptRepository) ListByUser(_ context.Context, userID uint) ([]model.Attempt, error) {
	out := r.collect(func(a model.Attempt) bool {
		return a.UserID == userID
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out, nil
}

func (r *AttemptRepository) ListSubmittedByQuiz(_ context.Context, quizID uint) ([]model.Attempt, error) {
	out := r.collect(func(a model.Attempt) bool {
		return a.QuizID == quizID && a.IsSubmitted
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}
