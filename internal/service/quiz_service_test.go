package service

import (
	"context"
	"testing"
	"time"

	"student_dashboard_backend/internal/repository"
	"student_dashboard_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuizValidatesCorrectAnswer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := twoQuestionReq()
	req.Questions[1].CorrectAnswer = 2
	_, err := f.quizSvc.CreateQuiz(ctx, 1, req)
	assert.ErrorIs(t, err, util.ErrValidation)
	assert.Contains(t, err.Error(), "question 1")

	req = twoQuestionReq()
	req.Questions[0].Points = 0
	_, err = f.quizSvc.CreateQuiz(ctx, 1, req)
	assert.ErrorIs(t, err, util.ErrValidation)

	req = twoQuestionReq()
	req.Questions = nil
	_, err = f.quizSvc.CreateQuiz(ctx, 1, req)
	assert.ErrorIs(t, err, util.ErrValidation)

	_, total, err := f.quizzes.List(ctx, repository.QuizFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateQuizStoresOrderedQuestions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	quiz := f.createQuiz(t)
	assert.True(t, quiz.IsActive)
	assert.Equal(t, uint(1), quiz.CreatedBy)

	stored, err := f.quizSvc.GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, stored.Questions, 2)
	for i, q := range stored.Questions {
		assert.Equal(t, i, q.Position)
		assert.GreaterOrEqual(t, q.CorrectAnswer, 0)
		assert.Less(t, q.CorrectAnswer, len(q.Options))
	}
	assert.Equal(t, 30, stored.TotalPoints())

	_, err = f.quizSvc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestUpdateQuizPartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t)

	title := "Cells, revised"
	updated, err := f.quizSvc.UpdateQuiz(ctx, quiz.ID, QuizUpdateReq{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "BIO101", updated.Course)
	assert.Len(t, updated.Questions, 2)

	bad := []QuestionReq{{Text: "q", Options: []string{"a"}, CorrectAnswer: 1, Points: 1}}
	_, err = f.quizSvc.UpdateQuiz(ctx, quiz.ID, QuizUpdateReq{Questions: &bad})
	assert.ErrorIs(t, err, util.ErrValidation)

	stored, err := f.quizSvc.GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, title, stored.Title)
	assert.Len(t, stored.Questions, 2)

	_, err = f.quizSvc.UpdateQuiz(ctx, 999, QuizUpdateReq{Title: &title})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestUpdateQuizClearsDueDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t)

	due := time.Date(2024, 4, 1, 23, 59, 0, 0, time.UTC)
	updated, err := f.quizSvc.UpdateQuiz(ctx, quiz.ID, QuizUpdateReq{DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
	assert.True(t, due.Equal(*updated.DueDate))

	// Unrelated updates leave the due date alone.
	duration := 30
	updated, err = f.quizSvc.UpdateQuiz(ctx, quiz.ID, QuizUpdateReq{Duration: &duration})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)

	_, err = f.quizSvc.UpdateQuiz(ctx, quiz.ID, QuizUpdateReq{DueDate: &due, ClearDueDate: true})
	assert.ErrorIs(t, err, util.ErrValidation)

	updated, err = f.quizSvc.UpdateQuiz(ctx, quiz.ID, QuizUpdateReq{ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)

	stored, err := f.quizSvc.GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DueDate)
	assert.Equal(t, 30, stored.Duration)
}

func TestDeactivateQuizKeepsRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t)

	require.NoError(t, f.quizSvc.DeactivateQuiz(ctx, quiz.ID))
	require.NoError(t, f.quizSvc.DeactivateQuiz(ctx, quiz.ID))

	stored, err := f.quizSvc.GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Len(t, stored.Questions, 2)

	_, err = f.quizSvc.GetStudentQuiz(ctx, quiz.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)

	active, total, err := f.quizSvc.ListActiveQuizzes(ctx, "", 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, active)

	assert.ErrorIs(t, f.quizSvc.DeactivateQuiz(ctx, 999), util.ErrQuizNotFound)
}

func TestStudentQuizHidesAnswers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t)

	view, err := f.quizSvc.GetStudentQuiz(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.QuestionCount)
	assert.Equal(t, 30, view.TotalPoints)
	require.Len(t, view.Questions, 2)
	assert.Equal(t, []string{"DNA", "Lipid"}, view.Questions[1].Options)

	list, total, err := f.quizSvc.ListActiveQuizzes(ctx, "BIO101", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Questions)

	_, total, err = f.quizSvc.ListActiveQuizzes(ctx, "CHEM", 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestValidateQuestion(t *testing.T) {
	assert.NoError(t, ValidateQuestion(QuestionReq{Text: "q", Options: []string{"a", "b"}, CorrectAnswer: 1, Points: 1}))
	assert.Error(t, ValidateQuestion(QuestionReq{Text: " ", Options: []string{"a"}, Points: 1}))
	assert.Error(t, ValidateQuestion(QuestionReq{Text: "q", Points: 1}))
	assert.Error(t, ValidateQuestion(QuestionReq{Text: "q", Options: []string{"a"}, CorrectAnswer: -1, Points: 1}))
	assert.Error(t, ValidateQuestion(QuestionReq{Text: "q", Options: []string{"a"}, Points: -3}))
}
