package binder

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-surveybuilder/pkg/model"
)

// ErrWidgetNotFound is returned by MemoryHost when a widget was never created
// or has been dropped.
var ErrWidgetNotFound = errors.New("binder: widget not found")

// Host is the widget surface the binder drives: a DOM, a terminal screen or
// an in-memory tree. Widgets are created and removed on demand and addressed
// by model.FieldID.
type Host interface {
	Ensure(id model.FieldID) error
	Drop(id model.FieldID) error
	SetValue(id model.FieldID, value string) error
	SetAddEnabled(enabled bool)
	Highlight(id model.FieldID, invalid bool)
}

// MemoryHost keeps widget state in memory. The terminal editor reads it to
// show current values and tests use it to inspect what the binder rendered.
type MemoryHost struct {
	mu          sync.RWMutex
	values      map[model.FieldID]string
	highlighted map[model.FieldID]bool
	addEnabled  bool
}

var _ Host = (*MemoryHost)(nil)

// NewMemoryHost returns an empty host.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		values:      make(map[model.FieldID]string),
		highlighted: make(map[model.FieldID]bool),
	}
}

func (h *MemoryHost) Ensure(id model.FieldID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.values[id]; !ok {
		h.values[id] = ""
	}
	return nil
}

func (h *MemoryHost) Drop(id model.FieldID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.values, id)
	delete(h.highlighted, id)
	return nil
}

func (h *MemoryHost) SetValue(id model.FieldID, value string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.values[id]; !ok {
		return fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
	}
	h.values[id] = value
	return nil
}

func (h *MemoryHost) SetAddEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addEnabled = enabled
}

func (h *MemoryHost) Highlight(id model.FieldID, invalid bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if invalid {
		h.highlighted[id] = true
		return
	}
	delete(h.highlighted, id)
}

// Value returns the current value of a widget.
func (h *MemoryHost) Value(id model.FieldID) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	value, ok := h.values[id]
	return value, ok
}

// Has reports whether the widget exists.
func (h *MemoryHost) Has(id model.FieldID) bool {
	_, ok := h.Value(id)
	return ok
}

// AddEnabled reports the state of the add-question trigger.
func (h *MemoryHost) AddEnabled() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.addEnabled
}

// Highlighted reports whether a widget is marked invalid.
func (h *MemoryHost) Highlighted(id model.FieldID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.highlighted[id]
}

// Fields lists every widget id, sorted by hook id.
func (h *MemoryHost) Fields() []model.FieldID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]model.FieldID, 0, len(h.values))
	for id := range h.values {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
