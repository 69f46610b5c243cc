package repository

import (
	"context"
	"errors"
	"fmt"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func preloadAnswers(db *gorm.DB) *gorm.DB {
	return db.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_index asc")
	})
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	err := r.DB.WithContext(ctx).Create(attempt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: attempt number %d", util.ErrAttemptConflict, attempt.AttemptNumber)
	}
	if err != nil {
		return storageError("create attempt", err)
	}
	return nil
}

func (r *AttemptRepository) FindByID(ctx context.Context, id uint) (*model.Attempt, error) {
	var a model.Attempt
	if err := preloadAnswers(r.DB.WithContext(ctx)).First(&a, id).Error; err != nil {
		return nil, lookupError("find attempt", err, util.ErrAttemptNotFound)
	}
	return &a, nil
}

// answerUpsert overwrites the stored answer for the same question index, so
// a concurrent first answer to a question replaces the other instead of
// failing on the unique index.
var answerUpsert = clause.OnConflict{
	Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_index"}},
	DoUpdates: clause.AssignmentColumns([]string{"selected_option", "is_correct", "points_earned", "updated_at"}),
}

// Save writes the attempt row and upserts its answers in one transaction.
// Answers loaded from the store keep their ids and are updated in place;
// new ones are inserted.
func (r *AttemptRepository) Save(ctx context.Context, attempt *model.Attempt) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Answers").Save(attempt).Error; err != nil {
			return err
		}
		for i := range attempt.Answers {
			answer := &attempt.Answers[i]
			answer.AttemptID = attempt.ID
			if answer.ID != 0 {
				if err := tx.Save(answer).Error; err != nil {
					return err
				}
				continue
			}
			if err := tx.Clauses(answerUpsert).Create(answer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageError("save attempt", err)
	}
	return nil
}

func (r *AttemptRepository) MaxAttemptNumber(ctx context.Context, userID, quizID uint) (int, error) {
	var max int
	err := r.DB.WithContext(ctx).Model(&model.Attempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Select("COALESCE(MAX(attempt_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, storageError("max attempt number", err)
	}
	return max, nil
}

func (r *AttemptRepository) ListByUserAndQuiz(ctx context.Context, userID, quizID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := preloadAnswers(r.DB.WithContext(ctx)).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempt_number asc").
		Find(&attempts).Error
	if err != nil {
		return nil, storageError("list attempts", err)
	}
	return attempts, nil
}

func (r *AttemptRepository) ListByUser(ctx context.Context, userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time desc").
		Find(&attempts).Error
	if err != nil {
		return nil, storageError("list user attempts", err)
	}
	return attempts, nil
}

func (r *AttemptRepository) ListSubmittedByQuiz(ctx context.Context, quizID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.WithContext(ctx).
		Where("quiz_id = ? AND is_submitted = ?", quizID, true).
		Find(&attempts).Error
	if err != nil {
		return nil, storageError("list submitted attempts", err)
	}
	return attempts, nil
}
