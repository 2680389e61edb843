package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveybuilder/pkg/model"
	"github.com/goliatone/go-surveybuilder/pkg/testsupport"
	"github.com/goliatone/go-surveybuilder/pkg/validation"
)

func TestNew_RegistersNotBlank(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("new validator panicked: %v", r)
		}
	}()
	v := validation.New()

	// An unregistered tag would panic inside Validate instead of failing.
	err := v.Validate(model.Snapshot{SurveyTitle: "Cats", Questions: []model.Question{{Text: " "}}})
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidate_AcceptsCompleteSnapshot(t *testing.T) {
	v := validation.New()
	if err := v.Validate(testsupport.SampleSnapshot(5)); err != nil {
		t.Fatalf("expected valid snapshot, got %v", err)
	}
}

func TestValidate_BlankTitleAndQuestion(t *testing.T) {
	v := validation.New()
	err := v.Validate(model.Snapshot{
		Questions: []model.Question{{Text: ""}},
	})

	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []validation.FieldError{
		{Field: model.TitleField, Message: "Survey Title is required"},
		{Field: model.QuestionField(1, model.RoleQuestionText), Message: "Question 1 text is required"},
	}
	if diff := cmp.Diff(want, verr.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_CollectsEveryBlankQuestionInOrder(t *testing.T) {
	v := validation.New()
	err := v.Validate(model.Snapshot{
		SurveyTitle: "  Cats  ",
		Questions: []model.Question{
			{Text: "ok"},
			{Text: "   "},
			{Text: "fine"},
			{Text: "\t\n"},
			{Text: ""},
		},
	})

	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []model.FieldID{
		model.QuestionField(2, model.RoleQuestionText),
		model.QuestionField(4, model.RoleQuestionText),
		model.QuestionField(5, model.RoleQuestionText),
	}
	if diff := cmp.Diff(want, verr.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_WhitespaceTitleIsBlank(t *testing.T) {
	v := validation.New()
	err := v.Validate(model.Snapshot{
		SurveyTitle: " \t ",
		Questions:   []model.Question{{Text: "Q1"}},
	})
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if diff := cmp.Diff([]string{"Survey Title is required"}, verr.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidationError_Alert(t *testing.T) {
	verr := &validation.ValidationError{Errors: []validation.FieldError{
		{Field: model.TitleField, Message: "Survey Title is required"},
		{Field: model.QuestionField(1, model.RoleQuestionText), Message: "Question 1 text is required"},
	}}
	want := "Please fix the following errors:\n\nSurvey Title is required\nQuestion 1 text is required"
	if got := verr.Alert(); got != want {
		t.Fatalf("alert mismatch\nwant: %q\n got: %q", want, got)
	}
}
