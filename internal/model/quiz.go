package model

import (
	"time"

	"gorm.io/datatypes"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title     string         `gorm:"size:255;not null" json:"title"`
	Course    string         `gorm:"size:100;index" json:"course"`
	Topic     string         `gorm:"size:100" json:"topic"`
	Questions []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions"`
	DueDate   *time.Time     `json:"dueDate,omitempty"`
	Duration  int            `gorm:"default:0" json:"duration"` // minutes
	IsActive  bool           `gorm:"not null;index" json:"isActive"`
	CreatedBy uint           `gorm:"index" json:"createdBy"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question returns the question at the 0-based index, or false when the
// index does not address one.
func (q *Quiz) Question(index int) (QuizQuestion, bool) {
	if index < 0 || index >= len(q.Questions) {
		return QuizQuestion{}, false
	}
	return q.Questions[index], true
}

// TotalPoints sums the point values of every question.
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// QuizQuestion is one multiple-choice question. Position is its 0-based
// index within the quiz and is what attempts refer to.
type QuizQuestion struct {
	BaseModel
	QuizID        uint                        `gorm:"index" json:"-"`
	Position      int                         `gorm:"not null" json:"position"`
	Text          string                      `gorm:"type:text;not null" json:"text"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswer int                         `json:"correctAnswer"`
	Points        int                         `gorm:"not null" json:"points"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
