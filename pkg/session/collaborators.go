package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/goliatone/go-surveybuilder/pkg/model"
)

// ErrCancelled is returned when the user declines a confirmation prompt.
var ErrCancelled = errors.New("session: cancelled by user")

// Persistence is the draft store the session saves to and restores from.
// store.Store satisfies it.
type Persistence interface {
	Save(model.Snapshot) error
	Load() (model.Snapshot, bool)
	Clear() error
}

// Confirmer asks the user a blocking yes/no question before destructive
// operations.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(message string) (bool, error) {
	return f(message)
}

// AlwaysConfirm approves every prompt. It is the default for programmatic
// use where no person is around to answer.
type AlwaysConfirm struct{}

// Confirm implements Confirmer.
func (AlwaysConfirm) Confirm(string) (bool, error) {
	return true, nil
}

// Notifier shows blocking, user-facing messages.
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Alert implements Notifier.
func (f NotifierFunc) Alert(message string) {
	f(message)
}

type noopNotifier struct{}

func (noopNotifier) Alert(string) {}

// Logger receives operational messages. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// SubmittedMessage is shown after a survey is accepted.
const SubmittedMessage = "Survey created successfully!"

// Receipt acknowledges an accepted submission.
type Receipt struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
	Message   string `json:"message"`
}

// Submitter receives validated snapshots.
type Submitter interface {
	Submit(ctx context.Context, snapshot model.Snapshot) (Receipt, error)
}

// AcknowledgeSubmitter accepts every survey locally and hands back a receipt.
// No network contract is defined for submissions.
type AcknowledgeSubmitter struct{}

// Submit implements Submitter.
func (AcknowledgeSubmitter) Submit(ctx context.Context, snapshot model.Snapshot) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	return Receipt{
		ID:        uuid.NewString(),
		Title:     snapshot.SurveyTitle,
		Questions: len(snapshot.Questions),
		Message:   SubmittedMessage,
	}, nil
}
