package model

import "time"

// AttemptState is derived from IsSubmitted; an attempt is InProgress until
// it is submitted, and Submitted is terminal.
type AttemptState string

const (
	AttemptInProgress AttemptState = "in_progress"
	AttemptSubmitted  AttemptState = "submitted"
)

// swagger:model Attempt
type Attempt struct {
	BaseModel

	UserID        uint            `gorm:"uniqueIndex:idx_attempt_user_quiz_number" json:"userId"`
	QuizID        uint            `gorm:"uniqueIndex:idx_attempt_user_quiz_number;index" json:"quizId"`
	AttemptNumber int             `gorm:"uniqueIndex:idx_attempt_user_quiz_number" json:"attemptNumber"`
	Answers       []AttemptAnswer `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"answers"`
	TotalScore    int             `gorm:"default:0" json:"totalScore"`
	TotalPossible int             `gorm:"default:0" json:"totalPossible"`
	Percentage    int             `gorm:"default:0" json:"percentage"`
	StartTime     time.Time       `json:"startTime"`
	EndTime       *time.Time      `json:"endTime,omitempty"`
	TimeSpent     int             `gorm:"default:0" json:"timeSpent"` // seconds
	IsCompleted   bool            `gorm:"default:false" json:"isCompleted"`
	IsSubmitted   bool            `gorm:"default:false;index" json:"isSubmitted"`
}

func (Attempt) TableName() string {
	return "attempts"
}

func (a *Attempt) State() AttemptState {
	if a.IsSubmitted {
		return AttemptSubmitted
	}
	return AttemptInProgress
}

// AnswerFor returns the stored answer for questionIndex, if any.
func (a *Attempt) AnswerFor(questionIndex int) (*AttemptAnswer, bool) {
	for i := range a.Answers {
		if a.Answers[i].QuestionIndex == questionIndex {
			return &a.Answers[i], true
		}
	}
	return nil, false
}
