package model

// slot pairs a question with the display number last assigned to it.
type slot struct {
	number   int
	question Question
}

// QuestionList owns the ordered questions of a draft. Every operation either
// applies completely or leaves the list untouched. The zero value is not
// usable; call NewQuestionList.
type QuestionList struct {
	slots []slot
}

// NewQuestionList returns a list holding a single blank question.
func NewQuestionList() *QuestionList {
	l := &QuestionList{}
	l.Reset()
	return l
}

// Len reports the number of questions.
func (l *QuestionList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.slots)
}

// CanAdd reports whether Add would succeed.
func (l *QuestionList) CanAdd() bool {
	return l.Len() < MaxQuestions
}

// CanRemove reports whether Remove would pass the bounds check.
func (l *QuestionList) CanRemove() bool {
	return l.Len() > MinQuestions
}

// Add appends a blank question and returns it.
func (l *QuestionList) Add() (Question, error) {
	if !l.CanAdd() {
		return Question{}, &BoundsError{Kind: MaxReached, Limit: MaxQuestions}
	}
	q := BlankQuestion()
	l.slots = append(l.slots, slot{question: q})
	l.Renumber()
	return q, nil
}

// Remove deletes question n (1-based) and shifts later questions down by one
// position. Callers gate this behind a user confirmation; the list itself
// never prompts.
func (l *QuestionList) Remove(n int) error {
	if !l.CanRemove() {
		return &BoundsError{Kind: MinReached, Limit: MinQuestions}
	}
	if n < 1 || n > l.Len() {
		return ErrQuestionNotFound
	}
	idx := n - 1
	l.slots = append(l.slots[:idx], l.slots[idx+1:]...)
	l.Renumber()
	return nil
}

// Renumber assigns each slot its 1-based position. Content and relative
// order are never touched.
func (l *QuestionList) Renumber() {
	for i := range l.slots {
		l.slots[i].number = i + 1
	}
}

// Reset truncates the list to a single blank question.
func (l *QuestionList) Reset() {
	l.slots = []slot{{number: 1, question: BlankQuestion()}}
}

// Numbers returns the display numbers in order.
func (l *QuestionList) Numbers() []int {
	out := make([]int, l.Len())
	for i, s := range l.slots {
		out[i] = s.number
	}
	return out
}

// Question returns question n (1-based).
func (l *QuestionList) Question(n int) (Question, error) {
	if n < 1 || n > l.Len() {
		return Question{}, ErrQuestionNotFound
	}
	return l.slots[n-1].question, nil
}

// Questions returns a copy of every question in order.
func (l *QuestionList) Questions() []Question {
	out := make([]Question, l.Len())
	for i, s := range l.slots {
		out[i] = s.question
	}
	return out
}

// SetQuestion overwrites every field of question n.
func (l *QuestionList) SetQuestion(n int, q Question) error {
	if n < 1 || n > l.Len() {
		return ErrQuestionNotFound
	}
	if q.Type == "" {
		q.Type = QuestionTypeText
	}
	l.slots[n-1].question = q
	return nil
}

// SetText updates the text of question n.
func (l *QuestionList) SetText(n int, text string) error {
	return l.update(n, func(q *Question) { q.Text = text })
}

// SetType updates the response type of question n.
func (l *QuestionList) SetType(n int, t QuestionType) error {
	if _, err := ParseQuestionType(string(t)); err != nil {
		return err
	}
	if t == "" {
		t = QuestionTypeText
	}
	return l.update(n, func(q *Question) { q.Type = t })
}

// SetRequired updates the required flag of question n.
func (l *QuestionList) SetRequired(n int, required bool) error {
	return l.update(n, func(q *Question) { q.Required = required })
}

func (l *QuestionList) update(n int, fn func(*Question)) error {
	if n < 1 || n > l.Len() {
		return ErrQuestionNotFound
	}
	fn(&l.slots[n-1].question)
	return nil
}

// Draft is the live, editable survey: form-level fields plus the question
// list. It is the single source of truth that snapshots are taken from.
type Draft struct {
	Title       string
	Description string
	Questions   *QuestionList
}

// NewDraft returns an empty draft with one blank question.
func NewDraft() *Draft {
	return &Draft{Questions: NewQuestionList()}
}

// Snapshot copies the draft into its serialisable form.
func (d *Draft) Snapshot() Snapshot {
	return Snapshot{
		SurveyTitle:       d.Title,
		SurveyDescription: d.Description,
		Questions:         d.Questions.Questions(),
	}
}

// Clear blanks the form-level fields and resets the list.
func (d *Draft) Clear() {
	d.Title = ""
	d.Description = ""
	d.Questions.Reset()
}
