package model

import "fmt"

// Role identifies what a widget does relative to the form or to a question.
type Role string

const (
	RoleTitle        Role = "survey-title"
	RoleDescription  Role = "survey-description"
	RoleAdd          Role = "add-question-btn"
	RoleQuestionText Role = "question-text"
	RoleQuestionType Role = "question-type"
	RoleRequired     Role = "required"
	RoleRemove       Role = "remove-question"
)

// QuestionRoles lists the per-question roles in the order a question block
// lays them out.
func QuestionRoles() []Role {
	return []Role{RoleQuestionText, RoleQuestionType, RoleRequired, RoleRemove}
}

// IsQuestionScoped reports whether the role belongs to a question block.
func (r Role) IsQuestionScoped() bool {
	switch r {
	case RoleQuestionText, RoleQuestionType, RoleRequired, RoleRemove:
		return true
	default:
		return false
	}
}

// FieldID addresses one widget. Question is the 1-based question number for
// question-scoped roles and zero otherwise.
type FieldID struct {
	Question int
	Role     Role
}

// TitleField, DescriptionField and AddField address the form-level widgets.
var (
	TitleField       = FieldID{Role: RoleTitle}
	DescriptionField = FieldID{Role: RoleDescription}
	AddField         = FieldID{Role: RoleAdd}
)

// QuestionField addresses a widget inside question block n.
func QuestionField(n int, role Role) FieldID {
	return FieldID{Question: n, Role: role}
}

// String renders the hook id used by widget hosts, e.g. "question-text-2".
func (f FieldID) String() string {
	if f.Role.IsQuestionScoped() {
		return fmt.Sprintf("%s-%d", f.Role, f.Question)
	}
	return string(f.Role)
}
