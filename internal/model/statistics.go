package model

// QuizStatistics aggregates the submitted attempts of one quiz. Percentages
// are whole numbers; PassRate is the rounded share of attempts at or above
// the passing percentage.
type QuizStatistics struct {
	QuizID   uint `json:"quizId"`
	Count    int  `json:"count"`
	Mean     int  `json:"mean"`
	Max      int  `json:"max"`
	Min      int  `json:"min"`
	PassRate int  `json:"passRate"`
}
