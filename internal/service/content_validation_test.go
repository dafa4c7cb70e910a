package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formforge/internal/model"
)

func validQuizQuestion(id string) model.Question {
	return model.Question{
		ID:   id,
		Type: model.QuestionTypeMultipleChoice,
		Options: []model.Option{
			{Index: 0, Label: "A"},
			{Index: 1, Label: "B"},
		},
		MaxScore:  ptrFloat(5),
		AnswerKey: &model.AnswerKey{Value: []interface{}{0}, IsCorrect: true},
	}
}

func quizForm() *model.Form {
	return &model.Form{
		ID:   "f1",
		Type: model.FormTypeQuiz,
		Settings: model.FormSettings{
			ScoringMode:     model.ScoringModePartial,
			AcceptResponses: true,
		},
	}
}

func TestValidateQuestion_TextAlwaysValid(t *testing.T) {
	svc := NewContentValidationService(nil)
	q := model.Question{ID: "t", Type: model.QuestionTypeText}

	report := svc.ValidateQuestion(&q, nil)

	assert.True(t, report.IsValid)
	assert.Empty(t, report.MissingAnswers)
	assert.Empty(t, report.MissingScores)
}

func TestValidateQuestion_MissingAnswerKey(t *testing.T) {
	svc := NewContentValidationService(nil)
	q := validQuizQuestion("q")
	q.AnswerKey = nil

	report := svc.ValidateQuestion(&q, nil)

	assert.False(t, report.IsValid)
	assert.Len(t, report.MissingAnswers, 1)
}

func TestValidateQuestion_MissingOrZeroScore(t *testing.T) {
	svc := NewContentValidationService(nil)

	q := validQuizQuestion("q")
	q.MaxScore = nil
	report := svc.ValidateQuestion(&q, nil)
	assert.False(t, report.IsValid)
	assert.Len(t, report.MissingScores, 1)

	q = validQuizQuestion("q")
	q.MaxScore = ptrFloat(0)
	report = svc.ValidateQuestion(&q, nil)
	assert.False(t, report.IsValid)
	assert.Len(t, report.MissingScores, 1)
}

func TestValidateQuestion_ChildScoreMustExceedParent(t *testing.T) {
	svc := NewContentValidationService(nil)
	q := validQuizQuestion("child")
	q.MaxScore = ptrFloat(5)

	report := svc.ValidateQuestion(&q, ptrFloat(5))
	assert.False(t, report.IsValid, "equal to parent is not enough")
	assert.Contains(t, report.MissingScores, issueWrongScore)

	q.MaxScore = ptrFloat(6)
	report = svc.ValidateQuestion(&q, ptrFloat(5))
	assert.True(t, report.IsValid)
}

func TestValidateQuestion_BadKeyFormat(t *testing.T) {
	svc := NewContentValidationService(nil)
	q := validQuizQuestion("q")
	q.AnswerKey = &model.AnswerKey{Value: "not a list", IsCorrect: true}

	report := svc.ValidateQuestion(&q, nil)

	assert.False(t, report.IsValid)
	assert.NotEmpty(t, report.Errors)
}

func TestValidateQuestion_RequiredNeedsKeyAndScore(t *testing.T) {
	svc := NewContentValidationService(nil)
	q := model.Question{
		ID:       "q",
		Type:     model.QuestionTypeShortAnswer,
		Required: true,
	}

	report := svc.ValidateQuestion(&q, nil)

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "required question must have both an answer key and a score")
}

func TestValidateForm_AggregatesAndTotals(t *testing.T) {
	svc := NewContentValidationService(nil)
	form := quizForm()

	q1 := validQuizQuestion("q1")
	q2 := validQuizQuestion("q2")
	q2.MaxScore = ptrFloat(10)
	text := model.Question{ID: "t", Type: model.QuestionTypeText}

	report := svc.ValidateForm(form, []model.Question{q1, q2, text})

	assert.Equal(t, 3, report.TotalValid)
	assert.Zero(t, report.TotalInvalid)
	assert.Equal(t, 15.0, report.TotalScore, "text blocks carry no score")
	assert.True(t, report.CanAutoScore)
}

func TestValidateForm_ChildExcludedFromTotal(t *testing.T) {
	svc := NewContentValidationService(nil)
	form := quizForm()

	parent := validQuizQuestion("p")
	parent.ConditionalChildren = []model.ChildRule{{OptionIndex: 0, ChildID: "c"}}

	child := validQuizQuestion("c")
	child.MaxScore = ptrFloat(8)
	child.ParentRef = &model.ParentRef{QuestionID: "p", OptionIndex: 0}

	report := svc.ValidateForm(form, []model.Question{parent, child})

	require.Zero(t, report.TotalInvalid)
	assert.Equal(t, 5.0, report.TotalScore, "only root scores count")
}

func TestValidateForm_ChildValidatedAgainstParentScore(t *testing.T) {
	svc := NewContentValidationService(nil)
	form := quizForm()

	parent := validQuizQuestion("p")
	child := validQuizQuestion("c")
	child.MaxScore = ptrFloat(3) // below parent's 5
	child.ParentRef = &model.ParentRef{QuestionID: "p", OptionIndex: 0}

	report := svc.ValidateForm(form, []model.Question{parent, child})

	assert.Equal(t, 1, report.TotalInvalid)
	assert.False(t, report.CanAutoScore)
}

func TestValidateForm_CanAutoScoreGates(t *testing.T) {
	svc := NewContentValidationService(nil)
	questions := []model.Question{validQuizQuestion("q1")}

	// Not a quiz.
	form := quizForm()
	form.Type = model.FormTypeNormal
	assert.False(t, svc.ValidateForm(form, questions).CanAutoScore)

	// Manual scoring mode.
	form = quizForm()
	form.Settings.ScoringMode = model.ScoringModeManual
	assert.False(t, svc.ValidateForm(form, questions).CanAutoScore)

	// Nothing scorable.
	form = quizForm()
	onlyText := []model.Question{{ID: "t", Type: model.QuestionTypeText}}
	assert.False(t, svc.ValidateForm(form, onlyText).CanAutoScore)

	// All conditions met.
	form = quizForm()
	assert.True(t, svc.ValidateForm(form, questions).CanAutoScore)
}

func TestValidateConditionalConfig(t *testing.T) {
	// No children, nothing to check.
	q := validQuizQuestion("q")
	assert.NoError(t, ValidateConditionalConfig(&q))

	// Non-choice parent cannot reveal children.
	numQ := model.Question{
		ID:                  "n",
		Type:                model.QuestionTypeNumber,
		ConditionalChildren: []model.ChildRule{{OptionIndex: 0, ChildID: "c"}},
	}
	err := ValidateConditionalConfig(&numQ)
	require.Error(t, err)
	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeConditionalConfig, se.Code)

	// Rule pointing at a nonexistent option.
	q = validQuizQuestion("q")
	q.ConditionalChildren = []model.ChildRule{{OptionIndex: 9, ChildID: "c"}}
	err = ValidateConditionalConfig(&q)
	require.Error(t, err)
	se, ok = AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, CodeConditionalConfig, se.Code)

	// Valid wiring.
	q = validQuizQuestion("q")
	q.ConditionalChildren = []model.ChildRule{{OptionIndex: 1, ChildID: "c"}}
	assert.NoError(t, ValidateConditionalConfig(&q))
}
