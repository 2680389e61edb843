// Package tui drives a survey editing session from the terminal. The Editor
// is the session's widget host, confirmer and notifier.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-surveybuilder/pkg/binder"
	"github.com/goliatone/go-surveybuilder/pkg/model"
	"github.com/goliatone/go-surveybuilder/pkg/session"
	"github.com/goliatone/go-surveybuilder/pkg/validation"
)

// Session is the part of session.Session the editor drives.
type Session interface {
	Start() error
	Handle(id model.FieldID, value string) error
	Snapshot() model.Snapshot
	Clear() error
	Submit(ctx context.Context) (session.Receipt, error)
	Close() error
}

type action func(ctx context.Context, sess Session) (done bool, err error)

type menuEntry struct {
	label string
	run   action
}

// Editor runs the interactive menu loop.
type Editor struct {
	driver      PromptDriver
	host        *binder.MemoryHost
	theme       Theme
	previewer   Previewer
	previewPath string
	logger      Logger

	// ctx is the context of the running loop; Confirm and Alert are called by
	// the session from inside it.
	ctx context.Context
}

var (
	_ session.Confirmer = (*Editor)(nil)
	_ session.Notifier  = (*Editor)(nil)
)

// New constructs an editor with defaults (survey driver, in-memory host).
func New(options ...Option) *Editor {
	e := &Editor{
		driver: newSurveyDriver(),
		host:   binder.NewMemoryHost(),
		logger: noopLogger{},
		ctx:    context.Background(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Host returns the widget host the session should render into.
func (e *Editor) Host() *binder.MemoryHost {
	return e.host
}

// Confirm implements session.Confirmer. Aborting the prompt declines.
func (e *Editor) Confirm(message string) (bool, error) {
	ok, err := e.driver.Confirm(e.ctx, ConfirmConfig{Message: message})
	if errors.Is(err, ErrAborted) {
		return false, nil
	}
	return ok, err
}

// Alert implements session.Notifier.
func (e *Editor) Alert(message string) {
	if err := e.driver.Info(e.ctx, e.theme.InfoPrefix+message); err != nil {
		e.logger.Printf("tui: alert: %v", err)
	}
}

// Run starts sess and loops over the main menu until the user submits a valid
// survey, quits or aborts. Pending changes are flushed on the way out.
func (e *Editor) Run(ctx context.Context, sess Session) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if sess == nil {
		return ErrNoSession
	}
	e.ctx = ctx
	defer func() { e.ctx = context.Background() }()

	if err := sess.Start(); err != nil {
		return fmt.Errorf("tui: start session: %w", err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			e.logger.Printf("tui: close session: %v", err)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		entries := e.menu(sess.Snapshot())
		labels := make([]string, len(entries))
		for i, entry := range entries {
			labels[i] = entry.label
		}

		idx, err := e.driver.Select(ctx, SelectConfig{Message: "Create Survey", Options: labels, PageSize: len(labels)})
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(entries) {
			continue
		}

		done, err := entries[idx].run(ctx, sess)
		if err != nil {
			e.report(err)
		}
		if done {
			return nil
		}
	}
}

func (e *Editor) menu(snapshot model.Snapshot) []menuEntry {
	entries := []menuEntry{
		{label: "Edit title: " + display(snapshot.SurveyTitle), run: e.editTitle},
		{label: "Edit description: " + display(snapshot.SurveyDescription), run: e.editDescription},
	}
	for i, q := range snapshot.Questions {
		n := i + 1
		entries = append(entries, menuEntry{
			label: fmt.Sprintf("Edit question %d: %s", n, display(q.Text)),
			run: func(ctx context.Context, sess Session) (bool, error) {
				return false, e.editQuestion(ctx, sess, n)
			},
		})
	}

	addLabel := "Add Question"
	if !e.host.AddEnabled() {
		addLabel = "Maximum Questions Reached"
	}
	entries = append(entries,
		menuEntry{label: addLabel, run: e.addQuestion},
		menuEntry{label: "Remove a question", run: e.removeQuestion},
	)
	if e.previewer != nil {
		entries = append(entries, menuEntry{label: "Preview", run: e.preview})
	}
	entries = append(entries,
		menuEntry{label: "Create Survey", run: e.submit},
		menuEntry{label: "Clear form", run: e.clear},
		menuEntry{label: "Save and quit", run: func(context.Context, Session) (bool, error) { return true, nil }},
	)
	return entries
}

func (e *Editor) editTitle(ctx context.Context, sess Session) (bool, error) {
	current, _ := e.host.Value(model.TitleField)
	value, err := e.driver.Input(ctx, InputConfig{
		Message:   "Survey Title",
		Default:   current,
		Help:      "Required before the survey can be created.",
		Validator: notBlank("Survey Title"),
	})
	if err != nil {
		return false, err
	}
	return false, sess.Handle(model.TitleField, value)
}

func (e *Editor) editDescription(ctx context.Context, sess Session) (bool, error) {
	current, _ := e.host.Value(model.DescriptionField)
	value, err := e.driver.TextArea(ctx, TextAreaConfig{
		Message: "Description",
		Default: current,
		Help:    "Optional. Shown under the title.",
	})
	if err != nil {
		return false, err
	}
	return false, sess.Handle(model.DescriptionField, value)
}

func (e *Editor) editQuestion(ctx context.Context, sess Session, n int) error {
	textID := model.QuestionField(n, model.RoleQuestionText)
	typeID := model.QuestionField(n, model.RoleQuestionType)
	requiredID := model.QuestionField(n, model.RoleRequired)

	current, _ := e.host.Value(textID)
	text, err := e.driver.Input(ctx, InputConfig{
		Message:   fmt.Sprintf("Question %d text", n),
		Default:   current,
		Help:      "Required before the survey can be created.",
		Validator: notBlank(fmt.Sprintf("Question %d text", n)),
	})
	if err != nil {
		return err
	}
	if err := sess.Handle(textID, text); err != nil {
		return err
	}

	types := model.QuestionTypes()
	labels := make([]string, len(types))
	currentType, _ := e.host.Value(typeID)
	selected := 0
	for i, t := range types {
		labels[i] = t.Label()
		if string(t) == currentType {
			selected = i
		}
	}
	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      "Question Type",
		Options:      labels,
		DefaultIndex: selected,
		Help:         "How respondents answer this question.",
	})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(types) {
		if err := sess.Handle(typeID, string(types[idx])); err != nil {
			return err
		}
	}

	currentRequired, _ := e.host.Value(requiredID)
	required, err := e.driver.Confirm(ctx, ConfirmConfig{
		Message: "Required?",
		Default: currentRequired == "true",
		Help:    "Respondents must answer required questions.",
	})
	if err != nil {
		return err
	}
	return sess.Handle(requiredID, strconv.FormatBool(required))
}

func (e *Editor) addQuestion(_ context.Context, sess Session) (bool, error) {
	return false, sess.Handle(model.AddField, "")
}

func (e *Editor) removeQuestion(ctx context.Context, sess Session) (bool, error) {
	snapshot := sess.Snapshot()
	labels := make([]string, 0, len(snapshot.Questions)+1)
	for i, q := range snapshot.Questions {
		labels = append(labels, fmt.Sprintf("Question %d: %s", i+1, display(q.Text)))
	}
	labels = append(labels, "Back")

	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Remove which question?", Options: labels})
	if err != nil {
		return false, err
	}
	if idx < 0 || idx >= len(snapshot.Questions) {
		return false, nil
	}
	return false, sess.Handle(model.QuestionField(idx+1, model.RoleRemove), "")
}

func (e *Editor) preview(ctx context.Context, sess Session) (bool, error) {
	page, err := e.previewer.Render(sess.Snapshot(), e.highlighted()...)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(e.previewPath, page, 0o644); err != nil {
		return false, fmt.Errorf("tui: write preview: %w", err)
	}
	return false, e.driver.Info(ctx, e.theme.InfoPrefix+"Preview written to "+e.previewPath)
}

func (e *Editor) submit(ctx context.Context, sess Session) (bool, error) {
	if _, err := sess.Submit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Editor) clear(_ context.Context, sess Session) (bool, error) {
	return false, sess.Clear()
}

// highlighted lists the fields the last validation marked invalid.
func (e *Editor) highlighted() []model.FieldID {
	var out []model.FieldID
	for _, id := range e.host.Fields() {
		if e.host.Highlighted(id) {
			out = append(out, id)
		}
	}
	return out
}

// report shows errors the session has not already surfaced. Bounds and
// validation failures were alerted by the session; cancellations are silent.
func (e *Editor) report(err error) {
	var (
		bounds *model.BoundsError
		verr   *validation.ValidationError
	)
	switch {
	case errors.Is(err, session.ErrCancelled), errors.Is(err, ErrAborted):
		return
	case errors.As(err, &bounds):
		return
	case errors.As(err, &verr):
		return
	}
	if infoErr := e.driver.Info(e.ctx, e.theme.ErrorPrefix+"Error: "+err.Error()); infoErr != nil {
		e.logger.Printf("tui: report %v: %v", err, infoErr)
	}
}

// notBlank rejects answers that are empty after trimming, matching the check
// made on submit.
func notBlank(label string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func display(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "(empty)"
	}
	if len([]rune(trimmed)) > 40 {
		return string([]rune(trimmed)[:37]) + "..."
	}
	return trimmed
}
