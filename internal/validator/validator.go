package validator

import (
	"reflect"
	"strings"

	"github.com/formcraft/formbuilder-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator bundles struct-tag validation with the domain validators for
// question content and candidate submissions.
type Validator struct {
	structValidator     *validator.Validate
	questionValidator   *QuestionValidator
	submissionValidator *SubmissionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:     structValidator,
		questionValidator:   NewQuestionValidator(),
		submissionValidator: NewSubmissionValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Question returns the question content validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// Submission returns the submission validator
func (v *Validator) Submission() *SubmissionValidator {
	return v.submissionValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)

	// Report json field names in validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	return models.QuestionType(fl.Field().String()).Valid()
}
