package model

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxReached matches a BoundsError raised when adding past MaxQuestions.
	ErrMaxReached = errors.New("model: maximum questions reached")
	// ErrMinReached matches a BoundsError raised when removing below MinQuestions.
	ErrMinReached = errors.New("model: minimum questions reached")
	// ErrQuestionNotFound is returned for question numbers outside 1..Len().
	ErrQuestionNotFound = errors.New("model: question not found")
	// ErrUnknownQuestionType is returned when a type value is not recognised.
	ErrUnknownQuestionType = errors.New("model: unknown question type")
)

// BoundsKind distinguishes the two count bounds.
type BoundsKind int

const (
	MaxReached BoundsKind = iota + 1
	MinReached
)

func (k BoundsKind) String() string {
	switch k {
	case MaxReached:
		return "max_reached"
	case MinReached:
		return "min_reached"
	default:
		return "unknown"
	}
}

// BoundsError reports a rejected add or remove. The list is left untouched
// whenever one is returned.
type BoundsError struct {
	Kind  BoundsKind
	Limit int
}

func (e *BoundsError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case MaxReached:
		return fmt.Sprintf("model: maximum %d questions allowed", e.Limit)
	case MinReached:
		return fmt.Sprintf("model: minimum %d %s required", e.Limit, pluralQuestion(e.Limit))
	default:
		return "model: question bounds violated"
	}
}

// Is lets errors.Is match the ErrMaxReached / ErrMinReached sentinels.
func (e *BoundsError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrMaxReached:
		return e.Kind == MaxReached
	case ErrMinReached:
		return e.Kind == MinReached
	}
	return false
}

// UserMessage is the alert text shown to the person editing the survey.
func (e *BoundsError) UserMessage() string {
	if e == nil {
		return ""
	}
	if e.Kind == MaxReached {
		return fmt.Sprintf("Maximum %d questions allowed!", e.Limit)
	}
	return fmt.Sprintf("You must have at least %d %s!", e.Limit, pluralQuestion(e.Limit))
}

func pluralQuestion(n int) string {
	if n == 1 {
		return "question"
	}
	return "questions"
}
