package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/goliatone/go-surveybuilder/pkg/model"
)

// submission mirrors the snapshot with the presence rules attached. notblank
// rejects values that are empty after trimming whitespace.
type submission struct {
	Title     string           `validate:"notblank"`
	Questions []questionFields `validate:"dive"`
}

type questionFields struct {
	Text string `validate:"notblank"`
}

var questionIndexPattern = regexp.MustCompile(`Questions\[(\d+)\]`)

// Validator checks a snapshot before it may be submitted.
type Validator struct {
	validate *validator.Validate
}

// New returns a ready Validator. It panics if the notblank rule cannot be
// registered, since every submission check depends on it.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// notblank ships with the library but is not registered by default.
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("validation: register notblank: %v", err))
	}
	return &Validator{validate: validate}
}

// Validate returns nil when the snapshot may be submitted, or a
// *ValidationError listing every failure.
func (v *Validator) Validate(snapshot model.Snapshot) error {
	form := submission{
		Title:     snapshot.SurveyTitle,
		Questions: make([]questionFields, len(snapshot.Questions)),
	}
	for i, q := range snapshot.Questions {
		form.Questions[i] = questionFields{Text: q.Text}
	}

	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return fmt.Errorf("validation: %w", err)
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(failures))}
	for _, fe := range failures {
		out.Errors = append(out.Errors, toFieldError(fe))
	}
	return out
}

func toFieldError(fe validator.FieldError) FieldError {
	if match := questionIndexPattern.FindStringSubmatch(fe.StructNamespace()); match != nil {
		idx, _ := strconv.Atoi(match[1])
		n := idx + 1
		return FieldError{
			Field:   model.QuestionField(n, model.RoleQuestionText),
			Message: fmt.Sprintf("Question %d text is required", n),
		}
	}
	return FieldError{
		Field:   model.TitleField,
		Message: "Survey Title is required",
	}
}
