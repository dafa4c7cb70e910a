package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"formforge/internal/model"
)

func choiceQuestion(t model.QuestionType, optionCount int) *model.Question {
	q := &model.Question{ID: "q", Type: t}
	for i := 0; i < optionCount; i++ {
		q.Options = append(q.Options, model.Option{Index: i, Label: "opt"})
	}
	return q
}

func TestValidateAnswerFormat_MultipleChoice(t *testing.T) {
	q := choiceQuestion(model.QuestionTypeMultipleChoice, 3)

	assert.True(t, ValidateAnswerFormat(q.Type, []interface{}{1}, q).IsValid)
	assert.False(t, ValidateAnswerFormat(q.Type, []interface{}{}, q).IsValid, "must select at least one option")
	assert.False(t, ValidateAnswerFormat(q.Type, "1", q).IsValid, "scalar is not a selection list")
	assert.False(t, ValidateAnswerFormat(q.Type, []interface{}{3}, q).IsValid, "index out of range")
	assert.False(t, ValidateAnswerFormat(q.Type, []interface{}{-1}, q).IsValid)
	assert.False(t, ValidateAnswerFormat(q.Type, []interface{}{1.5}, q).IsValid, "fractional index")
}

func TestValidateAnswerFormat_CheckBoxAllowsEmpty(t *testing.T) {
	q := choiceQuestion(model.QuestionTypeCheckBox, 2)

	assert.True(t, ValidateAnswerFormat(q.Type, []interface{}{}, q).IsValid)
	assert.True(t, ValidateAnswerFormat(q.Type, []interface{}{0, 1}, q).IsValid)
	assert.False(t, ValidateAnswerFormat(q.Type, []interface{}{2}, q).IsValid)
}

func TestValidateAnswerFormat_Selection(t *testing.T) {
	q := choiceQuestion(model.QuestionTypeSelection, 2)

	assert.True(t, ValidateAnswerFormat(q.Type, []interface{}{0}, q).IsValid)
	assert.False(t, ValidateAnswerFormat(q.Type, []interface{}{}, q).IsValid)
	assert.False(t, ValidateAnswerFormat(q.Type, "a", q).IsValid)
}

func TestValidateAnswerFormat_StringTypes(t *testing.T) {
	for _, qt := range []model.QuestionType{
		model.QuestionTypeText, model.QuestionTypeShortAnswer,
		model.QuestionTypeParagraph, model.QuestionTypeDate,
	} {
		assert.True(t, ValidateAnswerFormat(qt, "hello", nil).IsValid, string(qt))
		assert.False(t, ValidateAnswerFormat(qt, 42, nil).IsValid, string(qt))
		assert.False(t, ValidateAnswerFormat(qt, nil, nil).IsValid, string(qt))
	}
}

func TestValidateAnswerFormat_Number(t *testing.T) {
	assert.True(t, ValidateAnswerFormat(model.QuestionTypeNumber, float64(3), nil).IsValid)
	assert.True(t, ValidateAnswerFormat(model.QuestionTypeNumber, int64(3), nil).IsValid)
	assert.False(t, ValidateAnswerFormat(model.QuestionTypeNumber, "3", nil).IsValid)
}

func TestValidateAnswerFormat_RangeNumber(t *testing.T) {
	valid := map[string]interface{}{"start": float64(1), "end": float64(5)}
	assert.True(t, ValidateAnswerFormat(model.QuestionTypeRangeNumber, valid, nil).IsValid)

	assert.False(t, ValidateAnswerFormat(model.QuestionTypeRangeNumber, "1-5", nil).IsValid)
	assert.False(t, ValidateAnswerFormat(model.QuestionTypeRangeNumber, map[string]interface{}{}, nil).IsValid)

	badEnd := map[string]interface{}{"start": float64(1), "end": "five"}
	result := ValidateAnswerFormat(model.QuestionTypeRangeNumber, badEnd, nil)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "range end must be numeric")
}

func TestValidateAnswerFormat_RangeDate(t *testing.T) {
	valid := map[string]interface{}{"start": "2024-01-01", "end": "2024-02-01"}
	assert.True(t, ValidateAnswerFormat(model.QuestionTypeRangeDate, valid, nil).IsValid)

	bad := map[string]interface{}{"start": "soon", "end": "2024-02-01"}
	assert.False(t, ValidateAnswerFormat(model.QuestionTypeRangeDate, bad, nil).IsValid)
}

func TestValidateAnswerFormat_UnsupportedType(t *testing.T) {
	result := ValidateAnswerFormat(model.QuestionType("RANKING"), "x", nil)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "unsupported question type")
}

func TestIsAnswerEmpty(t *testing.T) {
	assert.True(t, IsAnswerEmpty(nil))
	assert.True(t, IsAnswerEmpty(""))
	assert.True(t, IsAnswerEmpty("   "))
	assert.True(t, IsAnswerEmpty([]interface{}{}))
	assert.True(t, IsAnswerEmpty(map[string]interface{}{"start": "", "end": nil}))

	assert.False(t, IsAnswerEmpty("a"))
	assert.False(t, IsAnswerEmpty([]interface{}{0}))
	assert.False(t, IsAnswerEmpty(float64(0)), "zero is an answer")
	assert.False(t, IsAnswerEmpty(false), "false is an answer")
	assert.False(t, IsAnswerEmpty(map[string]interface{}{"start": "2024-01-01", "end": ""}))
}

func TestParseDate_Layouts(t *testing.T) {
	for _, s := range []string{
		"2024-06-01",
		"2024/06/01",
		"2024-06-01T10:30:00",
		"2024-06-01T10:30:00Z",
	} {
		_, ok := parseDate(s)
		assert.True(t, ok, s)
	}

	_, ok := parseDate("01.06.2024")
	assert.False(t, ok)
	_, ok = parseDate("")
	assert.False(t, ok)
	_, ok = parseDate(42)
	assert.False(t, ok)
}

func TestAsList_TypedSlices(t *testing.T) {
	// bson decoding can hand back typed slices instead of []interface{}.
	list, ok := asList([]int{1, 2})
	assert.True(t, ok)
	assert.Len(t, list, 2)

	_, ok = asList("not a slice")
	assert.False(t, ok)
	_, ok = asList(nil)
	assert.False(t, ok)
}
