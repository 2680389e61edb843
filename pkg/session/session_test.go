package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveybuilder/pkg/autosave"
	"github.com/goliatone/go-surveybuilder/pkg/binder"
	"github.com/goliatone/go-surveybuilder/pkg/model"
	"github.com/goliatone/go-surveybuilder/pkg/session"
	"github.com/goliatone/go-surveybuilder/pkg/store"
	"github.com/goliatone/go-surveybuilder/pkg/testsupport"
	"github.com/goliatone/go-surveybuilder/pkg/validation"
)

type scriptedConfirmer struct {
	answers []bool
	prompts []string
	// whilePrompting runs before the answer is returned.
	whilePrompting func()
}

func (c *scriptedConfirmer) Confirm(message string) (bool, error) {
	c.prompts = append(c.prompts, message)
	if c.whilePrompting != nil {
		c.whilePrompting()
	}
	if len(c.answers) == 0 {
		return true, nil
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}

type recordingNotifier struct {
	alerts []string
}

func (n *recordingNotifier) Alert(message string) {
	n.alerts = append(n.alerts, message)
}

type harness struct {
	session   *session.Session
	store     *store.Store
	host      *binder.MemoryHost
	clock     *testsupport.ManualScheduler
	confirmer *scriptedConfirmer
	notifier  *recordingNotifier
}

func newHarness(t *testing.T, seed *model.Snapshot) *harness {
	t.Helper()

	st := store.New(store.NewMemoryBackend())
	if seed != nil {
		if err := st.Save(*seed); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}

	h := &harness{
		store:     st,
		host:      binder.NewMemoryHost(),
		clock:     testsupport.NewManualScheduler(),
		confirmer: &scriptedConfirmer{},
		notifier:  &recordingNotifier{},
	}
	sess, err := session.New(st,
		session.WithHost(h.host),
		session.WithConfirmer(h.confirmer),
		session.WithNotifier(h.notifier),
		session.WithAutoSaveOptions(autosave.WithScheduler(h.clock)),
	)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := sess.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.session = sess
	return h
}

func (h *harness) texts() []string {
	var out []string
	for _, q := range h.session.Snapshot().Questions {
		out = append(out, q.Text)
	}
	return out
}

func TestSession_StartsWithOneBlankQuestion(t *testing.T) {
	h := newHarness(t, nil)

	want := model.Snapshot{Questions: []model.Question{model.BlankQuestion()}}
	if diff := cmp.Diff(want, h.session.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if !h.host.AddEnabled() {
		t.Fatalf("expected add trigger enabled")
	}
}

func TestSession_RestoresSavedDraft(t *testing.T) {
	saved := model.Snapshot{
		SurveyTitle: "Pets",
		Questions: []model.Question{
			{Text: "Cats?", Type: model.QuestionTypeRating, Required: true},
		},
	}
	h := newHarness(t, &saved)

	if diff := cmp.Diff(saved, h.session.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if got, _ := h.host.Value(model.QuestionField(1, model.RoleQuestionType)); got != "rating" {
		t.Fatalf("type widget = %q, want rating", got)
	}
	if got, _ := h.host.Value(model.QuestionField(1, model.RoleRequired)); got != "true" {
		t.Fatalf("required widget = %q, want true", got)
	}
	if h.host.Has(model.QuestionField(2, model.RoleQuestionText)) {
		t.Fatalf("unexpected widgets for question 2")
	}
}

func TestSession_RestoreDropsQuestionsOverTheLimit(t *testing.T) {
	saved := testsupport.SampleSnapshot(7)
	h := newHarness(t, &saved)

	got := h.session.Snapshot()
	if len(got.Questions) != model.MaxQuestions {
		t.Fatalf("restored %d questions, want %d", len(got.Questions), model.MaxQuestions)
	}
	if diff := cmp.Diff(saved.Questions[:model.MaxQuestions], got.Questions); diff != "" {
		t.Fatalf("questions mismatch (-want +got):\n%s", diff)
	}
	if h.host.AddEnabled() {
		t.Fatalf("expected add trigger disabled at the limit")
	}
	if len(h.notifier.alerts) != 0 {
		t.Fatalf("restore must not alert, got %v", h.notifier.alerts)
	}
}

func TestSession_RestoreEmptyQuestionsKeepsBlankSlot(t *testing.T) {
	saved := model.Snapshot{SurveyTitle: "Only a title", Questions: []model.Question{}}
	h := newHarness(t, &saved)

	want := model.Snapshot{
		SurveyTitle: "Only a title",
		Questions:   []model.Question{model.BlankQuestion()},
	}
	if diff := cmp.Diff(want, h.session.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_AddStopsAtMaximum(t *testing.T) {
	h := newHarness(t, nil)

	for i := 0; i < model.MaxQuestions-1; i++ {
		if err := h.session.AddQuestion(); err != nil {
			t.Fatalf("add %d: %v", i+2, err)
		}
	}
	if h.host.AddEnabled() {
		t.Fatalf("expected add trigger disabled at the limit")
	}

	err := h.session.AddQuestion()
	if !errors.Is(err, model.ErrMaxReached) {
		t.Fatalf("expected ErrMaxReached, got %v", err)
	}
	if diff := cmp.Diff([]string{"Maximum 5 questions allowed!"}, h.notifier.alerts); diff != "" {
		t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
	}
	if got := len(h.session.Snapshot().Questions); got != model.MaxQuestions {
		t.Fatalf("question count = %d, want %d", got, model.MaxQuestions)
	}
}

func TestSession_RemoveRenumbersAfterConfirmation(t *testing.T) {
	h := newHarness(t, nil)
	for i := 0; i < 2; i++ {
		if err := h.session.AddQuestion(); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	for n, text := range []string{"A", "B", "C"} {
		if err := h.session.SetQuestionText(n+1, text); err != nil {
			t.Fatalf("set text %d: %v", n+1, err)
		}
	}

	if err := h.session.RemoveQuestion(2); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if diff := cmp.Diff([]string{"A", "C"}, h.texts()); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Are you sure you want to remove Question 2?"}, h.confirmer.prompts); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	if got, _ := h.host.Value(model.QuestionField(2, model.RoleQuestionText)); got != "C" {
		t.Fatalf("question 2 widget = %q, want C", got)
	}
	if h.host.Has(model.QuestionField(3, model.RoleQuestionText)) {
		t.Fatalf("question 3 widgets should be dropped")
	}

	// Listeners follow the new numbering.
	if err := h.session.SetQuestionText(2, "C2"); err != nil {
		t.Fatalf("edit renumbered question: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "C2"}, h.texts()); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
	if err := h.session.SetQuestionText(3, "stale"); !errors.Is(err, binder.ErrUnboundField) {
		t.Fatalf("expected ErrUnboundField for removed question, got %v", err)
	}
}

func TestSession_RemoveDeclined(t *testing.T) {
	h := newHarness(t, nil)
	if err := h.session.AddQuestion(); err != nil {
		t.Fatalf("add: %v", err)
	}
	h.confirmer.answers = []bool{false}

	err := h.session.RemoveQuestion(1)
	if !errors.Is(err, session.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if got := len(h.session.Snapshot().Questions); got != 2 {
		t.Fatalf("question count = %d, want 2", got)
	}
	if len(h.notifier.alerts) != 0 {
		t.Fatalf("cancel must not alert, got %v", h.notifier.alerts)
	}
}

func TestSession_RemoveLastQuestionAlertsWithoutPrompt(t *testing.T) {
	h := newHarness(t, nil)

	err := h.session.RemoveQuestion(1)
	if !errors.Is(err, model.ErrMinReached) {
		t.Fatalf("expected ErrMinReached, got %v", err)
	}
	if len(h.confirmer.prompts) != 0 {
		t.Fatalf("minimum check must run before prompting, got %v", h.confirmer.prompts)
	}
	if diff := cmp.Diff([]string{"You must have at least 1 question!"}, h.notifier.alerts); diff != "" {
		t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_ClearResetsDraftAndStore(t *testing.T) {
	saved := testsupport.SampleSnapshot(3)
	h := newHarness(t, &saved)
	if err := h.session.SetTitle("changed"); err != nil {
		t.Fatalf("set title: %v", err)
	}

	if err := h.session.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	want := model.Snapshot{Questions: []model.Question{model.BlankQuestion()}}
	if diff := cmp.Diff(want, h.session.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if _, ok := h.store.Load(); ok {
		t.Fatalf("expected saved draft removed")
	}

	// The pending autosave from the title edit was cancelled.
	h.clock.Advance(autosave.DefaultDelay)
	if _, ok := h.store.Load(); ok {
		t.Fatalf("cancelled autosave wrote a draft")
	}
}

func TestSession_ClearWinsOverAutosaveFiredDuringPrompt(t *testing.T) {
	h := newHarness(t, nil)
	if err := h.session.SetTitle("Draft"); err != nil {
		t.Fatalf("set title: %v", err)
	}

	// The debounce timer fires while the clear prompt is open. Its save needs
	// the session lock, so it waits until Clear has finished.
	fired := make(chan struct{})
	h.confirmer.whilePrompting = func() {
		go func() {
			defer close(fired)
			h.clock.Advance(autosave.DefaultDelay)
		}()
		deadline := time.Now().Add(5 * time.Second)
		for h.session.AutoSave().State() != autosave.StateSaving {
			if time.Now().After(deadline) {
				t.Errorf("autosave never started while prompting")
				return
			}
			time.Sleep(time.Millisecond)
		}
	}

	if err := h.session.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	<-fired

	if saved, ok := h.store.Load(); ok {
		t.Fatalf("store entry present after clear: %+v", saved)
	}
	if got := h.session.AutoSave().State(); got != autosave.StateIdle {
		t.Fatalf("expected idle autosave, got %s", got)
	}
	if got := h.session.AutoSave().Saves(); got != 0 {
		t.Fatalf("expected no completed saves, got %d", got)
	}
}

func TestSession_ClearDeclinedKeepsDraft(t *testing.T) {
	saved := testsupport.SampleSnapshot(2)
	h := newHarness(t, &saved)
	h.confirmer.answers = []bool{false}

	if err := h.session.Clear(); !errors.Is(err, session.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if diff := cmp.Diff(saved, h.session.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_SubmitRejectsBlankFields(t *testing.T) {
	h := newHarness(t, nil)
	if err := h.session.AddQuestion(); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := h.session.SetQuestionText(1, "Filled"); err != nil {
		t.Fatalf("set text: %v", err)
	}

	_, err := h.session.Submit(context.Background())
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	want := "Please fix the following errors:\n\nSurvey Title is required\nQuestion 2 text is required"
	if diff := cmp.Diff([]string{want}, h.notifier.alerts); diff != "" {
		t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
	}
	if !h.host.Highlighted(model.TitleField) {
		t.Fatalf("expected title highlighted")
	}
	if h.host.Highlighted(model.QuestionField(1, model.RoleQuestionText)) {
		t.Fatalf("question 1 is valid and must not be highlighted")
	}
	if !h.host.Highlighted(model.QuestionField(2, model.RoleQuestionText)) {
		t.Fatalf("expected question 2 highlighted")
	}
}

func TestSession_SubmitAcceptsValidSurvey(t *testing.T) {
	h := newHarness(t, nil)
	if err := h.session.SetTitle("Pets"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if err := h.session.SetQuestionText(1, "Cats?"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	h.session.Close()
	if _, ok := h.store.Load(); !ok {
		t.Fatalf("expected draft saved before submit")
	}

	receipt, err := h.session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.ID == "" {
		t.Fatalf("expected receipt id")
	}
	if receipt.Title != "Pets" || receipt.Questions != 1 {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if diff := cmp.Diff([]string{session.SubmittedMessage}, h.notifier.alerts); diff != "" {
		t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
	}
	if _, ok := h.store.Load(); ok {
		t.Fatalf("expected saved draft removed after submit")
	}
}

func TestSession_SubmitterFailure(t *testing.T) {
	st := store.New(store.NewMemoryBackend())
	boom := errors.New("boom")
	sess, err := session.New(st, session.WithSubmitter(submitterFunc(func(context.Context, model.Snapshot) (session.Receipt, error) {
		return session.Receipt{}, boom
	})))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := sess.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	_ = sess.SetTitle("t")
	_ = sess.SetQuestionText(1, "q")

	if _, err := sess.Submit(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected submitter error, got %v", err)
	}
}

func TestSession_AutoSaveDebouncesEdits(t *testing.T) {
	h := newHarness(t, nil)

	for _, title := range []string{"S", "Su", "Sur"} {
		if err := h.session.SetTitle(title); err != nil {
			t.Fatalf("set title: %v", err)
		}
		h.clock.Advance(200 * time.Millisecond)
	}
	if _, ok := h.store.Load(); ok {
		t.Fatalf("saved before the quiet period elapsed")
	}

	h.clock.Advance(autosave.DefaultDelay)
	got, ok := h.store.Load()
	if !ok {
		t.Fatalf("expected draft saved")
	}
	if got.SurveyTitle != "Sur" {
		t.Fatalf("saved title = %q, want Sur", got.SurveyTitle)
	}
	if saves := h.session.AutoSave().Saves(); saves != 1 {
		t.Fatalf("saves = %d, want 1", saves)
	}
}

func TestSession_AutoSaveAfterStructuralChange(t *testing.T) {
	h := newHarness(t, nil)
	if err := h.session.AddQuestion(); err != nil {
		t.Fatalf("add: %v", err)
	}

	h.clock.Advance(autosave.DefaultDelay)
	got, ok := h.store.Load()
	if !ok {
		t.Fatalf("expected draft saved")
	}
	if len(got.Questions) != 2 {
		t.Fatalf("saved %d questions, want 2", len(got.Questions))
	}
}

func TestSession_InvalidTypeIsRejected(t *testing.T) {
	h := newHarness(t, nil)

	err := h.session.Handle(model.QuestionField(1, model.RoleQuestionType), "essay")
	if !errors.Is(err, model.ErrUnknownQuestionType) {
		t.Fatalf("expected ErrUnknownQuestionType, got %v", err)
	}
	if got := h.session.Snapshot().Questions[0].Type; got != model.QuestionTypeText {
		t.Fatalf("type = %q, want text", got)
	}
}

type submitterFunc func(context.Context, model.Snapshot) (session.Receipt, error)

func (f submitterFunc) Submit(ctx context.Context, snapshot model.Snapshot) (session.Receipt, error) {
	return f(ctx, snapshot)
}
