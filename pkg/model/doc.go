// Package model defines the survey draft edited by the builder: the question
// value objects, the serialisable Snapshot, and the QuestionList that owns the
// live ordered questions. Position is the only identity a question has; the
// 1-based display number of a question is always its index plus one, and the
// list re-establishes that after every add or remove.
//
// Widgets are addressed through FieldID, which pairs a question number with a
// Role (text, type, required flag, remove trigger) instead of relying on the
// order widgets appear in a document.
package model
