package repository

import (
	"context"
	"time"

	"student_dashboard_backend/internal/model"
)

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
}

type QuizFilter struct {
	Course     string
	Topic      string
	ActiveOnly bool
	Page       int
	Limit      int
}

// QuizStore is the quiz catalog. FindByID returns questions ordered by
// position.
type QuizStore interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	FindByID(ctx context.Context, id uint) (*model.Quiz, error)
	// Update saves quiz fields; when replaceQuestions is set the stored
	// questions are replaced by quiz.Questions.
	Update(ctx context.Context, quiz *model.Quiz, replaceQuestions bool) error
	List(ctx context.Context, filter QuizFilter) ([]model.Quiz, int64, error)
}

// AttemptStore persists attempts together with their answers. Save writes
// the attempt and every answer it holds; it performs no version check, so
// of two concurrent read-modify-write cycles the last Save wins.
type AttemptStore interface {
	Create(ctx context.Context, attempt *model.Attempt) error
	FindByID(ctx context.Context, id uint) (*model.Attempt, error)
	Save(ctx context.Context, attempt *model.Attempt) error
	MaxAttemptNumber(ctx context.Context, userID, quizID uint) (int, error)
	ListByUserAndQuiz(ctx context.Context, userID, quizID uint) ([]model.Attempt, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Attempt, error)
	ListSubmittedByQuiz(ctx context.Context, quizID uint) ([]model.Attempt, error)
}

type AnnouncementFilter struct {
	Course string
	// VisibleAt, when set, keeps only published announcements that have
	// not expired at that instant.
	VisibleAt *time.Time
	Page      int
	Limit     int
}

type AnnouncementStore interface {
	Create(ctx context.Context, a *model.Announcement) error
	FindByID(ctx context.Context, id string) (*model.Announcement, error)
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AnnouncementFilter) ([]model.Announcement, int64, error)
}

// StatsCache holds computed quiz statistics between submissions.
type StatsCache interface {
	Get(ctx context.Context, quizID uint) (*model.QuizStatistics, bool, error)
	Set(ctx context.Context, stats *model.QuizStatistics) error
	Invalidate(ctx context.Context, quizID uint) error
}
