package session

import (
	"github.com/goliatone/go-surveybuilder/pkg/autosave"
	"github.com/goliatone/go-surveybuilder/pkg/binder"
)

// Option configures a Session.
type Option func(*config)

type config struct {
	host      binder.Host
	confirmer Confirmer
	notifier  Notifier
	submitter Submitter
	logger    Logger
	autosave  []autosave.Option
}

// WithHost renders into the provided widget host instead of a MemoryHost.
func WithHost(host binder.Host) Option {
	return func(cfg *config) {
		if host != nil {
			cfg.host = host
		}
	}
}

// WithConfirmer sets the collaborator asked before removing or clearing.
func WithConfirmer(confirmer Confirmer) Option {
	return func(cfg *config) {
		if confirmer != nil {
			cfg.confirmer = confirmer
		}
	}
}

// WithNotifier sets the collaborator that shows user-facing alerts.
func WithNotifier(notifier Notifier) Option {
	return func(cfg *config) {
		if notifier != nil {
			cfg.notifier = notifier
		}
	}
}

// WithSubmitter replaces the default acknowledging submitter.
func WithSubmitter(submitter Submitter) Option {
	return func(cfg *config) {
		if submitter != nil {
			cfg.submitter = submitter
		}
	}
}

// WithLogger attaches a logger; it is shared with the autosave controller.
func WithLogger(logger Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithAutoSaveOptions forwards options to the autosave controller.
func WithAutoSaveOptions(options ...autosave.Option) Option {
	return func(cfg *config) {
		cfg.autosave = append(cfg.autosave, options...)
	}
}
