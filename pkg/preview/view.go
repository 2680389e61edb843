package preview

import "github.com/goliatone/go-surveybuilder/pkg/model"

// surveyView is the template context. Text values are already sanitized and
// escaped.
type surveyView struct {
	TitleID       string
	DescriptionID string
	AddID         string
	Title         string
	Description   string
	TitleInvalid  bool
	CanAdd        bool
	Questions     []questionView
}

type questionView struct {
	Number     int
	TextID     string
	TypeID     string
	RequiredID string
	RemoveID   string
	Text       string
	Required   bool
	Invalid    bool
	Options    []typeOption
}

type typeOption struct {
	Value    string
	Label    string
	Selected bool
}

func newSurveyView(snapshot model.Snapshot, invalid []model.FieldID) surveyView {
	marked := make(map[model.FieldID]bool, len(invalid))
	for _, id := range invalid {
		marked[id] = true
	}

	view := surveyView{
		TitleID:       model.TitleField.String(),
		DescriptionID: model.DescriptionField.String(),
		AddID:         model.AddField.String(),
		Title:         sanitizeText(snapshot.SurveyTitle),
		Description:   sanitizeText(snapshot.SurveyDescription),
		TitleInvalid:  marked[model.TitleField],
		CanAdd:        len(snapshot.Questions) < model.MaxQuestions,
		Questions:     make([]questionView, 0, len(snapshot.Questions)),
	}

	for i, q := range snapshot.Questions {
		n := i + 1
		textID := model.QuestionField(n, model.RoleQuestionText)
		view.Questions = append(view.Questions, questionView{
			Number:     n,
			TextID:     textID.String(),
			TypeID:     model.QuestionField(n, model.RoleQuestionType).String(),
			RequiredID: model.QuestionField(n, model.RoleRequired).String(),
			RemoveID:   model.QuestionField(n, model.RoleRemove).String(),
			Text:       sanitizeText(q.Text),
			Required:   q.Required,
			Invalid:    marked[textID],
			Options:    typeOptions(q.Type),
		})
	}
	return view
}

func typeOptions(selected model.QuestionType) []typeOption {
	if selected == "" {
		selected = model.QuestionTypeText
	}
	types := model.QuestionTypes()
	out := make([]typeOption, 0, len(types))
	for _, t := range types {
		out = append(out, typeOption{
			Value:    string(t),
			Label:    t.Label(),
			Selected: t == selected,
		})
	}
	return out
}
