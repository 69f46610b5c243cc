package model

// AttemptAnswer is the recorded response to one question of an attempt,
// with correctness and points derived when it was recorded.
type AttemptAnswer struct {
	BaseModel
	AttemptID      uint `gorm:"uniqueIndex:idx_attempt_answer_question" json:"-"`
	QuestionIndex  int  `gorm:"uniqueIndex:idx_attempt_answer_question" json:"questionIndex"`
	SelectedOption int  `json:"selectedOption"`
	IsCorrect      bool `gorm:"default:false" json:"isCorrect"`
	PointsEarned   int  `gorm:"default:0" json:"pointsEarned"`
}

func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
