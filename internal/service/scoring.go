package service

import (
	"math"
	"sort"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/util"
)

// scorePercentage returns round(100*score/possible) clamped to [0,100], or
// 0 when nothing is possible.
func scorePercentage(score, possible int) int {
	if possible <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(score) / float64(possible)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// gradeAnswer scores selected against question. An index outside the
// option list is simply wrong.
func gradeAnswer(questionIndex, selected int, question model.QuizQuestion) model.AttemptAnswer {
	answer := model.AttemptAnswer{
		QuestionIndex:  questionIndex,
		SelectedOption: selected,
		IsCorrect:      selected == question.CorrectAnswer,
	}
	if answer.IsCorrect {
		answer.PointsEarned = question.Points
	}
	return answer
}

// applyAnswer replaces the stored answer for the same question index, or
// appends a new one, then recomputes the totals.
func applyAnswer(attempt *model.Attempt, answer model.AttemptAnswer) {
	if existing, ok := attempt.AnswerFor(answer.QuestionIndex); ok {
		answer.BaseModel = existing.BaseModel
		answer.AttemptID = existing.AttemptID
		*existing = answer
	} else {
		answer.AttemptID = attempt.ID
		attempt.Answers = append(attempt.Answers, answer)
	}
	recalculate(attempt)
}

func recalculate(attempt *model.Attempt) {
	total := 0
	for _, a := range attempt.Answers {
		total += a.PointsEarned
	}
	attempt.TotalScore = total
	attempt.Percentage = scorePercentage(total, attempt.TotalPossible)
}

// bestAttempt orders by total score, then by attempt number, both
// descending, and returns the first.
func bestAttempt(attempts []model.Attempt) (*model.Attempt, bool) {
	if len(attempts) == 0 {
		return nil, false
	}
	sorted := append([]model.Attempt(nil), attempts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalScore != sorted[j].TotalScore {
			return sorted[i].TotalScore > sorted[j].TotalScore
		}
		return sorted[i].AttemptNumber > sorted[j].AttemptNumber
	})
	return &sorted[0], true
}

// currentAttempt is the highest-numbered attempt not yet submitted.
func currentAttempt(attempts []model.Attempt) (*model.Attempt, bool) {
	var current *model.Attempt
	for i := range attempts {
		if attempts[i].State() != model.AttemptInProgress {
			continue
		}
		if current == nil || attempts[i].AttemptNumber > current.AttemptNumber {
			current = &attempts[i]
		}
	}
	return current, current != nil
}

func computeStatistics(quizID uint, attempts []model.Attempt) model.QuizStatistics {
	stats := model.QuizStatistics{QuizID: quizID}
	sum, passed := 0, 0
	for _, a := range attempts {
		if !a.IsSubmitted {
			continue
		}
		if stats.Count == 0 || a.Percentage > stats.Max {
			stats.Max = a.Percentage
		}
		if stats.Count == 0 || a.Percentage < stats.Min {
			stats.Min = a.Percentage
		}
		if a.Percentage >= util.PassingPercentage {
			passed++
		}
		sum += a.Percentage
		stats.Count++
	}
	if stats.Count == 0 {
		return stats
	}
	stats.Mean = int(math.Round(float64(sum) / float64(stats.Count)))
	stats.PassRate = int(math.Round(100 * float64(passed) / float64(stats.Count)))
	return stats
}
