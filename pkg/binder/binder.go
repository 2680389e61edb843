package binder

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-surveybuilder/pkg/model"
)

// ErrUnboundField is returned by Dispatch for ids without an active listener,
// such as a widget of a question that has since been removed.
var ErrUnboundField = errors.New("binder: no listener bound to field")

// ChangeKind tells a change callback what happened.
type ChangeKind int

const (
	FieldEdited ChangeKind = iota + 1
	ListMutated
)

func (k ChangeKind) String() string {
	switch k {
	case FieldEdited:
		return "field_edited"
	case ListMutated:
		return "list_mutated"
	default:
		return "unknown"
	}
}

// Change describes one user edit that went through the binder.
type Change struct {
	Field model.FieldID
	Kind  ChangeKind
}

// Handlers carries the structural operations triggered from widgets. The
// session supplies them so bounds checks and confirmations stay outside the
// binder. A nil handler leaves the trigger unbound.
type Handlers struct {
	Add    func() error
	Remove func(n int) error
}

type listener func(value string) error

// Binder keeps host widgets and a model.Draft in sync. It owns exactly one
// listener per widget; every render replaces the whole listener set so
// listeners tied to old question numbers cannot linger.
type Binder struct {
	draft     *model.Draft
	host      Host
	handlers  Handlers
	onChange  func(Change)
	listeners map[model.FieldID]listener
	rendered  int
	framed    bool
}

// New binds draft to host. Call RenderAll before dispatching events.
func New(draft *model.Draft, host Host, handlers Handlers) (*Binder, error) {
	if draft == nil || draft.Questions == nil {
		return nil, errors.New("binder: draft is required")
	}
	if host == nil {
		return nil, errors.New("binder: host is required")
	}
	return &Binder{
		draft:     draft,
		host:      host,
		handlers:  handlers,
		listeners: make(map[model.FieldID]listener),
	}, nil
}

// BindChangeNotifications installs the callback fired after every applied
// edit. It replaces any previous callback.
func (b *Binder) BindChangeNotifications(fn func(Change)) {
	b.onChange = fn
}

// Refresh renders the draft's current state.
func (b *Binder) Refresh() error {
	return b.RenderAll(b.draft.Snapshot())
}

// RenderAll creates widgets for every question in snapshot, drops widgets of
// questions that no longer exist, pushes all values and rebinds listeners.
func (b *Binder) RenderAll(snapshot model.Snapshot) error {
	count := len(snapshot.Questions)

	if !b.framed {
		for _, id := range []model.FieldID{model.TitleField, model.DescriptionField, model.AddField} {
			if err := b.host.Ensure(id); err != nil {
				return fmt.Errorf("binder: ensure %s: %w", id, err)
			}
		}
		b.framed = true
	}

	for n := count + 1; n <= b.rendered; n++ {
		for _, role := range model.QuestionRoles() {
			id := model.QuestionField(n, role)
			if err := b.host.Drop(id); err != nil {
				return fmt.Errorf("binder: drop %s: %w", id, err)
			}
		}
	}

	if err := b.setValue(model.TitleField, snapshot.SurveyTitle); err != nil {
		return err
	}
	if err := b.setValue(model.DescriptionField, snapshot.SurveyDescription); err != nil {
		return err
	}

	for i, q := range snapshot.Questions {
		n := i + 1
		for _, role := range model.QuestionRoles() {
			id := model.QuestionField(n, role)
			if err := b.host.Ensure(id); err != nil {
				return fmt.Errorf("binder: ensure %s: %w", id, err)
			}
		}
		if err := b.setValue(model.QuestionField(n, model.RoleQuestionText), q.Text); err != nil {
			return err
		}
		qtype := q.Type
		if qtype == "" {
			qtype = model.QuestionTypeText
		}
		if err := b.setValue(model.QuestionField(n, model.RoleQuestionType), string(qtype)); err != nil {
			return err
		}
		if err := b.setValue(model.QuestionField(n, model.RoleRequired), strconv.FormatBool(q.Required)); err != nil {
			return err
		}
	}

	b.host.SetAddEnabled(count < model.MaxQuestions)
	b.rendered = count
	b.rebind(count)
	return nil
}

// Dispatch routes a widget event to its listener. value is the widget's new
// value; triggers ignore it.
func (b *Binder) Dispatch(id model.FieldID, value string) error {
	fn, ok := b.listeners[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnboundField, id)
	}
	return fn(value)
}

// Bound reports whether id has an active listener.
func (b *Binder) Bound(id model.FieldID) bool {
	_, ok := b.listeners[id]
	return ok
}

// ListenerCount reports the number of active listeners.
func (b *Binder) ListenerCount() int {
	return len(b.listeners)
}

// ApplyValidation highlights the invalid fields and clears the highlight on
// every other validated field (title and question texts).
func (b *Binder) ApplyValidation(invalid []model.FieldID) {
	marked := make(map[model.FieldID]bool, len(invalid))
	for _, id := range invalid {
		marked[id] = true
	}
	b.host.Highlight(model.TitleField, marked[model.TitleField])
	for n := 1; n <= b.rendered; n++ {
		id := model.QuestionField(n, model.RoleQuestionText)
		b.host.Highlight(id, marked[id])
	}
}

func (b *Binder) setValue(id model.FieldID, value string) error {
	if err := b.host.SetValue(id, value); err != nil {
		return fmt.Errorf("binder: set %s: %w", id, err)
	}
	return nil
}

func (b *Binder) rebind(count int) {
	listeners := make(map[model.FieldID]listener, 3+len(model.QuestionRoles())*count)

	listeners[model.TitleField] = b.fieldListener(model.TitleField, func(value string) error {
		b.draft.Title = value
		return nil
	})
	listeners[model.DescriptionField] = b.fieldListener(model.DescriptionField, func(value string) error {
		b.draft.Description = value
		return nil
	})
	listeners[model.AddField] = b.triggerListener(model.AddField, func() error {
		if b.handlers.Add == nil {
			return fmt.Errorf("%w: %s", ErrUnboundField, model.AddField)
		}
		return b.handlers.Add()
	})

	for n := 1; n <= count; n++ {
		n := n
		listeners[model.QuestionField(n, model.RoleQuestionText)] = b.fieldListener(
			model.QuestionField(n, model.RoleQuestionText),
			func(value string) error {
				return b.draft.Questions.SetText(n, value)
			},
		)
		listeners[model.QuestionField(n, model.RoleQuestionType)] = b.fieldListener(
			model.QuestionField(n, model.RoleQuestionType),
			func(value string) error {
				qtype, err := model.ParseQuestionType(value)
				if err != nil {
					return err
				}
				return b.draft.Questions.SetType(n, qtype)
			},
		)
		listeners[model.QuestionField(n, model.RoleRequired)] = b.fieldListener(
			model.QuestionField(n, model.RoleRequired),
			func(value string) error {
				required, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("binder: required flag %q: %w", value, err)
				}
				return b.draft.Questions.SetRequired(n, required)
			},
		)
		listeners[model.QuestionField(n, model.RoleRemove)] = b.triggerListener(
			model.QuestionField(n, model.RoleRemove),
			func() error {
				if b.handlers.Remove == nil {
					return fmt.Errorf("%w: %s", ErrUnboundField, model.QuestionField(n, model.RoleRemove))
				}
				return b.handlers.Remove(n)
			},
		)
	}

	b.listeners = listeners
}

// fieldListener applies an edit to the draft and reports it once.
func (b *Binder) fieldListener(id model.FieldID, apply func(string) error) listener {
	return func(value string) error {
		if err := apply(value); err != nil {
			return err
		}
		b.notify(Change{Field: id, Kind: FieldEdited})
		return nil
	}
}

// triggerListener runs a structural handler and reports the mutation once.
// Handlers re-render through RenderAll, which swaps the listener set while
// this closure is still on the stack; it only touches the binder afterwards.
func (b *Binder) triggerListener(id model.FieldID, run func() error) listener {
	return func(string) error {
		if err := run(); err != nil {
			return err
		}
		b.notify(Change{Field: id, Kind: ListMutated})
		return nil
	}
}

func (b *Binder) notify(change Change) {
	if b.onChange != nil {
		b.onChange(change)
	}
}
