// Package surveybuilder wires the draft store, autosave and session packages
// into a ready-to-run survey editing session.
package surveybuilder

import (
	"fmt"

	"github.com/goliatone/go-surveybuilder/pkg/autosave"
	"github.com/goliatone/go-surveybuilder/pkg/config"
	"github.com/goliatone/go-surveybuilder/pkg/model"
	"github.com/goliatone/go-surveybuilder/pkg/session"
	"github.com/goliatone/go-surveybuilder/pkg/store"
)

// Snapshot aliases model.Snapshot for callers that only use the root package.
type Snapshot = model.Snapshot

// Question aliases model.Question.
type Question = model.Question

// Receipt aliases session.Receipt.
type Receipt = session.Receipt

// Logger is satisfied by *log.Logger and shared by the store and session.
type Logger interface {
	Printf(format string, args ...any)
}

// OpenStore opens the file-backed draft store described by cfg.
func OpenStore(cfg config.Config, logger Logger) (*store.Store, error) {
	backend, err := store.NewFileBackend(cfg.StoreDir)
	if err != nil {
		return nil, fmt.Errorf("surveybuilder: open store: %w", err)
	}
	options := []store.Option{store.WithKey(cfg.StorageKey)}
	if logger != nil {
		options = append(options, store.WithLogger(logger))
	}
	return store.New(backend, options...), nil
}

// NewSession opens the configured store and wires a session around it.
// Options are applied after the configured autosave delay and logger, so
// callers can still override them.
func NewSession(cfg config.Config, logger Logger, options ...session.Option) (*session.Session, error) {
	st, err := OpenStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	base := []session.Option{
		session.WithAutoSaveOptions(autosave.WithDelay(cfg.AutoSaveDelay)),
	}
	if logger != nil {
		base = append(base, session.WithLogger(logger))
	}
	return session.New(st, append(base, options...)...)
}
