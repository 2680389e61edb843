package store

import (
	"errors"

	"github.com/goliatone/go-surveybuilder/pkg/model"
)

// DefaultKey is the key the draft snapshot lives under.
const DefaultKey = "survey_form_data"

// Logger receives operational messages. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the key the snapshot is stored under.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger attaches a logger for read/write failures.
func WithLogger(logger Logger) Option {
	return func(s *Store) {
		if logger == nil {
			s.logger = noopLogger{}
			return
		}
		s.logger = logger
	}
}

// Store persists a single draft snapshot in a Backend.
type Store struct {
	backend Backend
	key     string
	logger  Logger
}

// New wraps backend. A nil backend falls back to an in-memory one.
func New(backend Backend, options ...Option) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		logger:  noopLogger{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Key reports the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// Save serialises snapshot and overwrites the stored value in one write.
func (s *Store) Save(snapshot model.Snapshot) error {
	data, err := Encode(snapshot)
	if err != nil {
		return &PersistenceError{Kind: SerializationFailure, Key: s.key, Err: err}
	}
	if err := s.backend.Put(s.key, data); err != nil {
		return &PersistenceError{Kind: StoreWriteFailure, Key: s.key, Err: err}
	}
	return nil
}

// Load returns the stored snapshot, or false when there is none. Read
// failures are logged and treated as absent. Undecodable data is logged,
// erased and treated as absent so it cannot fail the next load too. A
// question with an unrecognised type is kept as a text question.
func (s *Store) Load() (model.Snapshot, bool) {
	data, err := s.backend.Get(s.key)
	if errors.Is(err, ErrNotFound) {
		return model.Snapshot{}, false
	}
	if err != nil {
		s.logger.Printf("%v", &PersistenceError{Kind: StoreReadFailure, Key: s.key, Err: err})
		return model.Snapshot{}, false
	}

	snapshot, replaced, err := decode(data)
	if err != nil {
		s.logger.Printf("%v; discarding stored draft", &PersistenceError{Kind: StoreReadFailure, Key: s.key, Err: err})
		if clearErr := s.Clear(); clearErr != nil {
			s.logger.Printf("%v", clearErr)
		}
		return model.Snapshot{}, false
	}
	for _, n := range replaced {
		s.logger.Printf("store: question %d has an unknown type; using %s", n, model.QuestionTypeText)
	}
	return snapshot, true
}

// Clear removes the stored snapshot. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if err := s.backend.Delete(s.key); err != nil {
		return &PersistenceError{Kind: StoreWriteFailure, Key: s.key, Err: err}
	}
	return nil
}
