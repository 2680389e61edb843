package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-surveybuilder/pkg/autosave"
	"github.com/goliatone/go-surveybuilder/pkg/binder"
	"github.com/goliatone/go-surveybuilder/pkg/model"
	"github.com/goliatone/go-surveybuilder/pkg/validation"
)

const (
	clearPrompt  = "Are you sure you want to clear all form data? This action cannot be undone."
	removePrompt = "Are you sure you want to remove Question %d?"
)

// Session is one editing session over a single survey draft. All draft
// mutation is serialized by mu, including the snapshot taken by the autosave
// timer.
type Session struct {
	mu sync.Mutex

	draft     *model.Draft
	host      binder.Host
	binder    *binder.Binder
	autosave  *autosave.Controller
	store     Persistence
	validator *validation.Validator

	confirmer Confirmer
	notifier  Notifier
	submitter Submitter
	logger    Logger

	started bool
}

// New wires a draft, binder, autosave controller and validator around store.
func New(store Persistence, options ...Option) (*Session, error) {
	if store == nil {
		return nil, errors.New("session: store is required")
	}

	cfg := config{
		host:      binder.NewMemoryHost(),
		confirmer: AlwaysConfirm{},
		notifier:  noopNotifier{},
		submitter: AcknowledgeSubmitter{},
		logger:    noopLogger{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	s := &Session{
		draft:     model.NewDraft(),
		host:      cfg.host,
		store:     store,
		validator: validation.New(),
		confirmer: cfg.confirmer,
		notifier:  cfg.notifier,
		submitter: cfg.submitter,
		logger:    cfg.logger,
	}

	b, err := binder.New(s.draft, s.host, binder.Handlers{
		Add:    s.addLocked,
		Remove: s.removeLocked,
	})
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.binder = b

	autosaveOptions := append([]autosave.Option{autosave.WithLogger(cfg.logger)}, cfg.autosave...)
	controller, err := autosave.New(s.Snapshot, store, autosaveOptions...)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.autosave = controller

	s.binder.BindChangeNotifications(func(change binder.Change) {
		s.logger.Printf("session: %s %s", change.Kind, change.Field)
		s.autosave.Notify()
	})
	return s, nil
}

// Start restores any saved draft, renders it and binds every widget. It is
// safe to call once; later calls only re-render.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.binder.Refresh(); err != nil {
		return err
	}
	if s.started {
		return nil
	}
	s.started = true
	return s.restoreLocked()
}

// Handle routes a host event for id. Bounds violations are shown through the
// Notifier and returned.
func (s *Session) Handle(id model.FieldID, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.binder.Dispatch(id, value)
	s.surfaceLocked(err)
	return err
}

// SetTitle replaces the survey title.
func (s *Session) SetTitle(value string) error {
	return s.Handle(model.TitleField, value)
}

// SetDescription replaces the survey description.
func (s *Session) SetDescription(value string) error {
	return s.Handle(model.DescriptionField, value)
}

// SetQuestionText replaces the text of question n.
func (s *Session) SetQuestionText(n int, value string) error {
	return s.Handle(model.QuestionField(n, model.RoleQuestionText), value)
}

// SetQuestionType changes the type of question n.
func (s *Session) SetQuestionType(n int, qtype model.QuestionType) error {
	return s.Handle(model.QuestionField(n, model.RoleQuestionType), string(qtype))
}

// SetRequired toggles the required flag of question n.
func (s *Session) SetRequired(n int, required bool) error {
	value := "false"
	if required {
		value = "true"
	}
	return s.Handle(model.QuestionField(n, model.RoleRequired), value)
}

// AddQuestion appends a blank question through the add trigger.
func (s *Session) AddQuestion() error {
	return s.Handle(model.AddField, "")
}

// RemoveQuestion removes question n after confirmation through its remove
// trigger.
func (s *Session) RemoveQuestion(n int) error {
	return s.Handle(model.QuestionField(n, model.RoleRemove), "")
}

// Clear resets the draft to its initial state after confirmation, cancels any
// pending autosave and deletes the saved entry.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.confirmer.Confirm(clearPrompt)
	if err != nil {
		return fmt.Errorf("session: confirm clear: %w", err)
	}
	if !ok {
		return ErrCancelled
	}

	s.autosave.Stop()
	s.draft.Clear()
	if err := s.binder.Refresh(); err != nil {
		return err
	}
	s.binder.ApplyValidation(nil)
	if err := s.store.Clear(); err != nil {
		s.logger.Printf("session: clear saved draft: %v", err)
	}
	return nil
}

// Submit validates the draft and hands it to the Submitter. Invalid fields
// are highlighted and listed in one alert. On success the saved draft is
// removed.
func (s *Session) Submit(ctx context.Context) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.draft.Snapshot()
	if err := s.validator.Validate(snapshot); err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			s.binder.ApplyValidation(verr.Fields())
			s.notifier.Alert(verr.Alert())
		}
		return Receipt{}, err
	}
	s.binder.ApplyValidation(nil)

	s.autosave.Stop()
	if err := s.store.Clear(); err != nil {
		s.logger.Printf("session: clear saved draft: %v", err)
	}

	receipt, err := s.submitter.Submit(ctx, snapshot)
	if err != nil {
		return Receipt{}, fmt.Errorf("session: submit: %w", err)
	}
	if receipt.Message != "" {
		s.notifier.Alert(receipt.Message)
	}
	return receipt, nil
}

// Snapshot returns a copy of the current draft.
func (s *Session) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Snapshot()
}

// Host returns the widget host the session renders into.
func (s *Session) Host() binder.Host {
	return s.host
}

// AutoSave exposes the autosave controller for status reporting.
func (s *Session) AutoSave() *autosave.Controller {
	return s.autosave
}

// Close writes any pending change immediately.
func (s *Session) Close() error {
	s.autosave.Flush()
	return nil
}

func (s *Session) restoreLocked() error {
	saved, ok := s.store.Load()
	if !ok {
		return nil
	}

	s.draft.Title = saved.SurveyTitle
	s.draft.Description = saved.SurveyDescription

	if len(saved.Questions) > 0 {
		if err := s.draft.Questions.SetQuestion(1, saved.Questions[0]); err != nil {
			return fmt.Errorf("session: restore question 1: %w", err)
		}
		for i := 1; i < len(saved.Questions); i++ {
			if !s.draft.Questions.CanAdd() {
				s.logger.Printf("session: dropped %d saved questions over the limit of %d",
					len(saved.Questions)-i, model.MaxQuestions)
				break
			}
			if err := s.binder.Dispatch(model.AddField, ""); err != nil {
				return fmt.Errorf("session: restore question %d: %w", i+1, err)
			}
			if err := s.draft.Questions.SetQuestion(i+1, saved.Questions[i]); err != nil {
				return fmt.Errorf("session: restore question %d: %w", i+1, err)
			}
		}
	}
	return s.binder.Refresh()
}

// addLocked and removeLocked run from binder triggers, which are only
// dispatched while mu is held.
func (s *Session) addLocked() error {
	if _, err := s.draft.Questions.Add(); err != nil {
		return err
	}
	return s.binder.Refresh()
}

func (s *Session) removeLocked(n int) error {
	if !s.draft.Questions.CanRemove() {
		return &model.BoundsError{Kind: model.MinReached, Limit: model.MinQuestions}
	}
	if n < 1 || n > s.draft.Questions.Len() {
		return fmt.Errorf("%w: %d", model.ErrQuestionNotFound, n)
	}

	ok, err := s.confirmer.Confirm(fmt.Sprintf(removePrompt, n))
	if err != nil {
		return fmt.Errorf("session: confirm remove: %w", err)
	}
	if !ok {
		return ErrCancelled
	}

	if err := s.draft.Questions.Remove(n); err != nil {
		return err
	}
	return s.binder.Refresh()
}

func (s *Session) surfaceLocked(err error) {
	if err == nil {
		return
	}
	var bounds *model.BoundsError
	if errors.As(err, &bounds) {
		s.notifier.Alert(bounds.UserMessage())
	}
}
