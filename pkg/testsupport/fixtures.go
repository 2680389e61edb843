package testsupport

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-surveybuilder/pkg/model"
)

// SampleSnapshot returns a filled-in snapshot with n questions cycling through
// every question type. Contract tests use it for round-trip fixtures.
func SampleSnapshot(n int) model.Snapshot {
	types := model.QuestionTypes()
	snapshot := model.Snapshot{
		SurveyTitle:       "Customer Feedback",
		SurveyDescription: "Tell us how we did.",
		Questions:         make([]model.Question, 0, n),
	}
	for i := 0; i < n; i++ {
		snapshot.Questions = append(snapshot.Questions, model.Question{
			Text:     fmt.Sprintf("Question %d text", i+1),
			Type:     types[i%len(types)],
			Required: i%2 == 0,
		})
	}
	return snapshot
}

// RecordingLogger captures Printf calls so tests can assert that operational
// failures were logged.
type RecordingLogger struct {
	mu    sync.Mutex
	lines []string
}

// Printf implements the Logger interfaces used across the module.
func (l *RecordingLogger) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// Lines returns a copy of the captured messages.
func (l *RecordingLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}
