package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formforge/internal/model"
)

func entry(questionID string, answer interface{}) model.ResponseEntry {
	return model.ResponseEntry{QuestionID: questionID, Answer: answer}
}

func TestScoreSubmission_HappyPath(t *testing.T) {
	o := NewScoringOrchestrator(nil)
	q1 := validQuizQuestion("q1") // MC, max 5, key [0]
	q2 := model.Question{
		ID:        "q2",
		Type:      model.QuestionTypeNumber,
		MaxScore:  ptrFloat(3),
		AnswerKey: &model.AnswerKey{Value: 2009, IsCorrect: true},
	}

	scored, err := o.ScoreSubmission(
		[]model.Question{q1, q2},
		[]model.ResponseEntry{
			entry("q1", []interface{}{float64(0)}),
			entry("q2", float64(2009)),
		},
	)

	require.NoError(t, err)
	require.Len(t, scored.Entries, 2)
	assert.Equal(t, 5.0, *scored.Entries[0].AwardedScore)
	assert.Equal(t, 3.0, *scored.Entries[1].AwardedScore)
	assert.Equal(t, 8.0, scored.TotalScore)
}

func TestScoreSubmission_RequiredAnswerMissing(t *testing.T) {
	o := NewScoringOrchestrator(nil)
	q := validQuizQuestion("q1")
	q.Required = true

	// Entry present but empty counts as missing.
	_, err := o.ScoreSubmission(
		[]model.Question{q},
		[]model.ResponseEntry{entry("q1", []interface{}{})},
	)
	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeRequiredAnswerMissing, se.Code)
	assert.Equal(t, "q1", se.QuestionID)

	// No entry at all.
	_, err = o.ScoreSubmission([]model.Question{q}, nil)
	se, ok = AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeRequiredAnswerMissing, se.Code)
}

func TestScoreSubmission_StrictModeRejectsUnansweredOptional(t *testing.T) {
	o := NewScoringOrchestrator(nil)
	q := validQuizQuestion("q1") // not required

	_, err := o.ScoreSubmission([]model.Question{q}, nil)

	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeQuestionNotAnswered, se.Code)
}

func TestScoreSubmission_InvalidAnswerFormat(t *testing.T) {
	o := NewScoringOrchestrator(nil)
	q := validQuizQuestion("q1")

	_, err := o.ScoreSubmission(
		[]model.Question{q},
		[]model.ResponseEntry{entry("q1", "not a list")},
	)

	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidAnswerFormat, se.Code)
	assert.NotEmpty(t, se.Detail)
}

func TestScoreSubmission_UnsupportedType(t *testing.T) {
	o := NewScoringOrchestrator(nil)
	q := model.Question{ID: "q1", Type: model.QuestionType("RANKING")}

	_, err := o.ScoreSubmission(
		[]model.Question{q},
		[]model.ResponseEntry{entry("q1", "x")},
	)

	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnsupportedQuestionType, se.Code)
}

func TestScoreSubmission_FirstFailureAborts(t *testing.T) {
	o := NewScoringOrchestrator(nil)
	q1 := validQuizQuestion("q1")
	q1.Required = true
	q2 := validQuizQuestion("q2")

	_, err := o.ScoreSubmission(
		[]model.Question{q1, q2},
		[]model.ResponseEntry{entry("q2", []interface{}{float64(0)})},
	)

	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, "q1", se.QuestionID, "fails on the first bad question")
}

func TestScoreSubmission_NoKeyMarksManualScoring(t *testing.T) {
	o := NewScoringOrchestrator(nil)
	q := model.Question{
		ID:       "essay",
		Type:     model.QuestionTypeParagraph,
		MaxScore: ptrFloat(10),
	}

	scored, err := o.ScoreSubmission(
		[]model.Question{q},
		[]model.ResponseEntry{entry("essay", "my long answer")},
	)

	require.NoError(t, err)
	require.Len(t, scored.Entries, 1)
	assert.True(t, scored.Entries[0].ManuallyScored)
	assert.Nil(t, scored.Entries[0].AwardedScore)
	assert.Zero(t, scored.TotalScore)
}

func TestScoreSubmission_TextNotMarkedManual(t *testing.T) {
	o := NewScoringOrchestrator(nil)
	q := model.Question{ID: "t", Type: model.QuestionTypeText}

	scored, err := o.ScoreSubmission(
		[]model.Question{q},
		[]model.ResponseEntry{entry("t", "")},
	)

	require.NoError(t, err)
	assert.False(t, scored.Entries[0].ManuallyScored)
	assert.Nil(t, scored.Entries[0].AwardedScore)
}

func TestScoreSubmission_ConditionalChildExcludedFromTotal(t *testing.T) {
	o := NewScoringOrchestrator(nil)

	parent := validQuizQuestion("p") // max 5
	parent.ConditionalChildren = []model.ChildRule{{OptionIndex: 0, ChildID: "c"}}

	child := validQuizQuestion("c")
	child.MaxScore = ptrFloat(8)
	child.ParentRef = &model.ParentRef{QuestionID: "p", OptionIndex: 0}

	scored, err := o.ScoreSubmission(
		[]model.Question{parent, child},
		[]model.ResponseEntry{
			entry("p", []interface{}{float64(0)}),
			entry("c", []interface{}{float64(0)}),
		},
	)

	require.NoError(t, err)
	require.Len(t, scored.Entries, 2)

	// Parent's effective max is child sum minus own: 8 - 5 = 3.
	assert.Equal(t, 3.0, *scored.Entries[0].AwardedScore)
	assert.Equal(t, 8.0, *scored.Entries[1].AwardedScore)
	assert.Equal(t, 3.0, scored.TotalScore, "child stays out of the total")
}

func TestRecomputeTotal_RootOnly(t *testing.T) {
	root := validQuizQuestion("root")
	child := validQuizQuestion("child")
	child.ParentRef = &model.ParentRef{QuestionID: "root", OptionIndex: 0}

	entries := []model.ResponseEntry{
		{QuestionID: "root", AwardedScore: ptrFloat(4)},
		{QuestionID: "child", AwardedScore: ptrFloat(9)},
		{QuestionID: "unscored"},
	}

	total := RecomputeTotal([]model.Question{root, child}, entries)

	assert.Equal(t, 4.0, total)
}
