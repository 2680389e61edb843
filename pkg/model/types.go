package model

import (
	"fmt"
	"strings"
)

// Question count bounds enforced by QuestionList.
const (
	MaxQuestions = 5
	MinQuestions = 1
)

// QuestionType is the response kind attached to a question.
type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeCheckbox       QuestionType = "checkbox"
	QuestionTypeRating         QuestionType = "rating"
)

// QuestionTypes lists the supported types in display order.
func QuestionTypes() []QuestionType {
	return []QuestionType{
		QuestionTypeText,
		QuestionTypeMultipleChoice,
		QuestionTypeCheckbox,
		QuestionTypeRating,
	}
}

// ParseQuestionType resolves a wire value. The empty string maps to
// QuestionTypeText so partially written entries restore with the default.
func ParseQuestionType(raw string) (QuestionType, error) {
	switch QuestionType(strings.TrimSpace(raw)) {
	case "", QuestionTypeText:
		return QuestionTypeText, nil
	case QuestionTypeMultipleChoice:
		return QuestionTypeMultipleChoice, nil
	case QuestionTypeCheckbox:
		return QuestionTypeCheckbox, nil
	case QuestionTypeRating:
		return QuestionTypeRating, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownQuestionType, raw)
	}
}

// Label returns the human label shown next to the type selector.
func (t QuestionType) Label() string {
	switch t {
	case QuestionTypeMultipleChoice:
		return "Multiple Choice"
	case QuestionTypeCheckbox:
		return "Checkbox"
	case QuestionTypeRating:
		return "Rating"
	default:
		return "Text Response"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t QuestionType) MarshalText() ([]byte, error) {
	if t == "" {
		return []byte(QuestionTypeText), nil
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *QuestionType) UnmarshalText(data []byte) error {
	parsed, err := ParseQuestionType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Question is a single user-authored survey question.
type Question struct {
	Text     string       `json:"text"`
	Type     QuestionType `json:"type"`
	Required bool         `json:"required"`
}

// BlankQuestion returns a question with every field at its default.
func BlankQuestion() Question {
	return Question{Type: QuestionTypeText}
}

// Snapshot is the complete serialisable state of an in-progress survey.
type Snapshot struct {
	SurveyTitle       string     `json:"surveyTitle"`
	SurveyDescription string     `json:"surveyDescription"`
	Questions         []Question `json:"questions"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Questions != nil {
		out.Questions = append([]Question(nil), s.Questions...)
	}
	return out
}
