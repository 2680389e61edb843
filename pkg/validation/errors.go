package validation

import (
	"strings"

	"github.com/goliatone/go-surveybuilder/pkg/model"
)

// FieldError points at one invalid widget and says why it is invalid.
type FieldError struct {
	Field   model.FieldID `json:"field"`
	Message string        `json:"message"`
}

// ValidationError collects every failure found in a snapshot, in form order:
// the title first, then questions 1..N.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return "validation: invalid survey"
	}
	return "validation: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the user-facing messages in order.
func (e *ValidationError) Messages() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.Message)
	}
	return out
}

// Fields returns the invalid field ids in order.
func (e *ValidationError) Fields() []model.FieldID {
	if e == nil {
		return nil
	}
	out := make([]model.FieldID, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.Field)
	}
	return out
}

// Alert formats the blocking message shown when submission is refused.
func (e *ValidationError) Alert() string {
	return "Please fix the following errors:\n\n" + strings.Join(e.Messages(), "\n")
}
