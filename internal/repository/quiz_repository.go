package repository

import (
	"context"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/util"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	if err := r.DB.WithContext(ctx).Create(quiz).Error; err != nil {
		return storageError("create quiz", err)
	}
	return nil
}

func (r *QuizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&quiz, id).Error
	if err != nil {
		return nil, lookupError("find quiz", err, util.ErrQuizNotFound)
	}
	return &quiz, nil
}

func (r *QuizRepository) Update(ctx context.Context, quiz *model.Quiz, replaceQuestions bool) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Save(quiz).Error; err != nil {
			return err
		}
		if !replaceQuestions {
			return nil
		}
		if err := tx.Unscoped().Where("quiz_id = ?", quiz.ID).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if len(quiz.Questions) == 0 {
			return nil
		}
		for i := range quiz.Questions {
			quiz.Questions[i].ID = 0
			quiz.Questions[i].QuizID = quiz.ID
		}
		return tx.Create(&quiz.Questions).Error
	})
	if err != nil {
		return storageError("update quiz", err)
	}
	return nil
}

func (r *QuizRepository) List(ctx context.Context, filter QuizFilter) ([]model.Quiz, int64, error) {
	query := r.DB.WithContext(ctx).Model(&model.Quiz{})
	if filter.Course != "" {
		query = query.Where("course = ?", filter.Course)
	}
	if filter.Topic != "" {
		query = query.Where("topic = ?", filter.Topic)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storageError("count quizzes", err)
	}

	var quizzes []model.Quiz
	if filter.Limit > 0 {
		query = query.Offset(offset(filter.Page, filter.Limit)).Limit(filter.Limit)
	}
	err := query.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Order("created_at desc").
		Find(&quizzes).Error
	if err != nil {
		return nil, 0, storageError("list quizzes", err)
	}
	return quizzes, total, nil
}
