package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/repository"
	"student_dashboard_backend/internal/util"
	"student_dashboard_backend/pkg/logger"

	"go.uber.org/zap"
)

// QuizService is the quiz catalog: admin maintenance plus read access.
type QuizService struct {
	Repo repository.QuizStore
}

func NewQuizService(repo repository.QuizStore) *QuizService {
	return &QuizService{Repo: repo}
}

type QuestionReq struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=1,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" binding:"min=0"`
	Points        int      `json:"points" binding:"required,gt=0"`
}

type QuizReq struct {
	Title     string        `json:"title" binding:"required,max=255"`
	Course    string        `json:"course" binding:"required,max=100"`
	Topic     string        `json:"topic" binding:"max=100"`
	Questions []QuestionReq `json:"questions" binding:"required,min=1,dive"`
	DueDate   *time.Time    `json:"dueDate"`
	Duration  int           `json:"duration" binding:"min=0"`
	IsActive  *bool         `json:"isActive"`
}

// QuizUpdateReq changes only the fields present. Questions, when given,
// replace the whole list.
type QuizUpdateReq struct {
	Title     *string        `json:"title" binding:"omitempty,max=255"`
	Course    *string        `json:"course" binding:"omitempty,max=100"`
	Topic     *string        `json:"topic" binding:"omitempty,max=100"`
	Questions *[]QuestionReq `json:"questions" binding:"omitempty,min=1,dive"`
	DueDate   *time.Time     `json:"dueDate"`
	Duration  *int           `json:"duration" binding:"omitempty,min=0"`
	IsActive  *bool          `json:"isActive"`
	// ClearDueDate removes a stored due date; it cannot be combined with DueDate.
	ClearDueDate bool `json:"clearDueDate"`
}

// ValidateQuestion enforces the catalog invariant: positive points and a
// correct answer that indexes into the options.
func ValidateQuestion(q QuestionReq) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("at least one option is required")
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("correctAnswer %d is not a valid option index", q.CorrectAnswer)
	}
	if q.Points <= 0 {
		return fmt.Errorf("points must be positive")
	}
	return nil
}

func buildQuestions(reqs []QuestionReq) ([]model.QuizQuestion, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one question is required", util.ErrValidation)
	}
	questions := make([]model.QuizQuestion, 0, len(reqs))
	for i, q := range reqs {
		if err := ValidateQuestion(q); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", util.ErrValidation, i, err)
		}
		questions = append(questions, model.QuizQuestion{
			Position:      i,
			Text:          q.Text,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
		})
	}
	return questions, nil
}

func (s *QuizService) CreateQuiz(ctx context.Context, creatorID uint, req QuizReq) (*model.Quiz, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", util.ErrValidation)
	}
	if req.Duration < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", util.ErrValidation)
	}
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Title:     req.Title,
		Course:    req.Course,
		Topic:     req.Topic,
		Questions: questions,
		DueDate:   req.DueDate,
		Duration:  req.Duration,
		IsActive:  true,
		CreatedBy: creatorID,
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	if err := s.Repo.Create(ctx, quiz); err != nil {
		return nil, err
	}

	logger.Log.Info("Quiz created", zap.Uint("quizId", quiz.ID), zap.Uint("creatorId", creatorID))
	return quiz, nil
}

func (s *QuizService) UpdateQuiz(ctx context.Context, quizID uint, req QuizUpdateReq) (*model.Quiz, error) {
	quiz, err := s.Repo.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", util.ErrValidation)
		}
		quiz.Title = *req.Title
	}
	if req.Course != nil {
		quiz.Course = *req.Course
	}
	if req.Topic != nil {
		quiz.Topic = *req.Topic
	}
	switch {
	case req.ClearDueDate && req.DueDate != nil:
		return nil, fmt.Errorf("%w: dueDate and clearDueDate are exclusive", util.ErrValidation)
	case req.ClearDueDate:
		quiz.DueDate = nil
	case req.DueDate != nil:
		quiz.DueDate = req.DueDate
	}
	if req.Duration != nil {
		if *req.Duration < 0 {
			return nil, fmt.Errorf("%w: duration must not be negative", util.ErrValidation)
		}
		quiz.Duration = *req.Duration
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	replace := req.Questions != nil
	if replace {
		questions, err := buildQuestions(*req.Questions)
		if err != nil {
			return nil, err
		}
		quiz.Questions = questions
	}

	if err := s.Repo.Update(ctx, quiz, replace); err != nil {
		return nil, err
	}
	return quiz, nil
}

// DeactivateQuiz is the catalog's delete: the quiz stays stored with
// isActive=false so existing attempts keep resolving it.
func (s *QuizService) DeactivateQuiz(ctx context.Context, quizID uint) error {
	quiz, err := s.Repo.FindByID(ctx, quizID)
	if err != nil {
		return err
	}
	if !quiz.IsActive {
		return nil
	}
	quiz.IsActive = false
	if err := s.Repo.Update(ctx, quiz, false); err != nil {
		return err
	}
	logger.Log.Info("Quiz deactivated", zap.Uint("quizId", quizID))
	return nil
}

func (s *QuizService) GetByID(ctx context.Context, quizID uint) (*model.Quiz, error) {
	return s.Repo.FindByID(ctx, quizID)
}

func (s *QuizService) ListQuizzes(ctx context.Context, filter repository.QuizFilter) ([]model.Quiz, int64, error) {
	return s.Repo.List(ctx, filter)
}

// StudentQuestion omits the correct answer.
type StudentQuestion struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Points  int      `json:"points"`
}

type StudentQuiz struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	Course        string            `json:"course"`
	Topic         string            `json:"topic"`
	DueDate       *time.Time        `json:"dueDate,omitempty"`
	Duration      int               `json:"duration"`
	QuestionCount int               `json:"questionCount"`
	TotalPoints   int               `json:"totalPoints"`
	Questions     []StudentQuestion `json:"questions,omitempty"`
}

func toStudentQuiz(q *model.Quiz, withQuestions bool) StudentQuiz {
	view := StudentQuiz{
		ID:            q.ID,
		Title:         q.Title,
		Course:        q.Course,
		Topic:         q.Topic,
		DueDate:       q.DueDate,
		Duration:      q.Duration,
		QuestionCount: len(q.Questions),
		TotalPoints:   q.TotalPoints(),
	}
	if withQuestions {
		view.Questions = make([]StudentQuestion, 0, len(q.Questions))
		for i, question := range q.Questions {
			view.Questions = append(view.Questions, StudentQuestion{
				Index:   i,
				Text:    question.Text,
				Options: append([]string(nil), question.Options...),
				Points:  question.Points,
			})
		}
	}
	return view
}

// ListActiveQuizzes lists active quizzes without their questions.
func (s *QuizService) ListActiveQuizzes(ctx context.Context, course string, page, limit int) ([]StudentQuiz, int64, error) {
	quizzes, total, err := s.Repo.List(ctx, repository.QuizFilter{
		Course:     course,
		ActiveOnly: true,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, 0, err
	}
	views := make([]StudentQuiz, 0, len(quizzes))
	for i := range quizzes {
		views = append(views, toStudentQuiz(&quizzes[i], false))
	}
	return views, total, nil
}

// GetStudentQuiz returns an active quiz with its questions but no answers.
// Inactive quizzes are reported as missing.
func (s *QuizService) GetStudentQuiz(ctx context.Context, quizID uint) (*StudentQuiz, error) {
	quiz, err := s.Repo.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, util.ErrQuizNotFound
	}
	view := toStudentQuiz(quiz, true)
	return &view, nil
}
