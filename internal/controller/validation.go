package controller

import (
	"sync"

	"student_dashboard_backend/internal/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the struct-level rules gin's binding cannot
// express with tags. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterStructValidation(questionValidation, service.QuestionReq{})
		}
	})
}

// questionValidation rejects a correctAnswer that does not index into options.
func questionValidation(sl validator.StructLevel) {
	q := sl.Current().Interface().(service.QuestionReq)
	if len(q.Options) == 0 {
		return
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		sl.ReportError(q.CorrectAnswer, "correctAnswer", "CorrectAnswer", "optionindex", "")
	}
}
