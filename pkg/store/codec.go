package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-surveybuilder/pkg/model"
)

// document is the persisted layout. QuestionCount is informational; the
// questions array is authoritative when decoding.
type document struct {
	SurveyTitle       string           `json:"surveyTitle"`
	SurveyDescription string           `json:"surveyDescription"`
	QuestionCount     int              `json:"questionCount"`
	Questions         []model.Question `json:"questions"`
}

// Encode serialises a snapshot into the persisted JSON layout.
func Encode(snapshot model.Snapshot) ([]byte, error) {
	questions := snapshot.Questions
	if questions == nil {
		questions = []model.Question{}
	}
	doc := document{
		SurveyTitle:       snapshot.SurveyTitle,
		SurveyDescription: snapshot.SurveyDescription,
		QuestionCount:     len(questions),
		Questions:         questions,
	}
	return json.Marshal(doc)
}

// storedQuestion reads the type as a plain string so one unrecognised value
// does not fail the whole document.
type storedQuestion struct {
	Text     string `json:"text"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type storedDocument struct {
	SurveyTitle       string           `json:"surveyTitle"`
	SurveyDescription string           `json:"surveyDescription"`
	Questions         []storedQuestion `json:"questions"`
}

// Decode parses the persisted layout. Syntax errors and type mismatches are
// reported as ErrCorrupted. A missing or unrecognised question type becomes
// text.
func Decode(data []byte) (model.Snapshot, error) {
	snapshot, _, err := decode(data)
	return snapshot, err
}

// decode also reports the 1-based numbers of questions whose stored type was
// not recognised.
func decode(data []byte) (model.Snapshot, []int, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Snapshot{}, nil, fmt.Errorf("%w: empty payload", ErrCorrupted)
	}
	var doc storedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Snapshot{}, nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	var replaced []int
	questions := make([]model.Question, len(doc.Questions))
	for i, q := range doc.Questions {
		qtype, err := model.ParseQuestionType(q.Type)
		if err != nil {
			qtype = model.QuestionTypeText
			replaced = append(replaced, i+1)
		}
		questions[i] = model.Question{Text: q.Text, Type: qtype, Required: q.Required}
	}
	return model.Snapshot{
		SurveyTitle:       doc.SurveyTitle,
		SurveyDescription: doc.SurveyDescription,
		Questions:         questions,
	}, replaced, nil
}
