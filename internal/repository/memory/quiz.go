package memory

import (
	"context"
	"sort"
	"sync"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/repository"
	"student_dashboard_backend/internal/util"
)

type QuizRepository struct {
	mu          sync.RWMutex
	seq         sequence
	questionSeq sequence
	quizzes     map[uint]model.Quiz
}

func NewQuizRepository() *QuizRepository {
	return &QuizRepository{quizzes: make(map[uint]model.Quiz)}
}

func copyQuiz(q model.Quiz) model.Quiz {
	out := q
	out.Questions = make([]model.QuizQuestion, len(q.Questions))
	for i, question := range q.Questions {
		question.Options = append([]string(nil), question.Options...)
		out.Questions[i] = question
	}
	return out
}

func (r *QuizRepository) assignQuestionIDs(quiz *model.Quiz) {
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == 0 {
			quiz.Questions[i].ID = r.questionSeq.nextID()
		}
		quiz.Questions[i].QuizID = quiz.ID
	}
}

func (r *QuizRepository) Create(_ context.Context, quiz *model.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := nowFunc()
	quiz.ID = r.seq.nextID()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	r.assignQuestionIDs(quiz)
	r.quizzes[quiz.ID] = copyQuiz(*quiz)
	return nil
}

func (r *QuizRepository) FindByID(_ context.Context, id uint) (*model.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quizzes[id]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	out := copyQuiz(q)
	return &out, nil
}

func (r *QuizRepository) Update(_ context.Context, quiz *model.Quiz, replaceQuestions bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.quizzes[quiz.ID]
	if !ok {
		return util.ErrQuizNotFound
	}
	quiz.UpdatedAt = nowFunc()
	next := copyQuiz(*quiz)
	if replaceQuestions {
		for i := range quiz.Questions {
			quiz.Questions[i].ID = 0
		}
		r.assignQuestionIDs(quiz)
		next = copyQuiz(*quiz)
	} else {
		next.Questions = copyQuiz(stored).Questions
	}
	r.quizzes[quiz.ID] = next
	return nil
}

func (r *QuizRepository) List(_ context.Context, filter repository.QuizFilter) ([]model.Quiz, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []model.Quiz
	for _, q := range r.quizzes {
		if filter.Course != "" && q.Course != filter.Course {
			continue
		}
		if filter.Topic != "" && q.Topic != filter.Topic {
			continue
		}
		if filter.ActiveOnly && !q.IsActive {
			continue
		}
		matched = append(matched, copyQuiz(q))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})
	return page(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}
