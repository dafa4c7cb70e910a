package model

import "time"

// QuestionType defines the kind of a form question
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE" // Single pick from options
	QuestionTypeCheckBox       QuestionType = "CHECKBOX"        // Multi pick from options
	QuestionTypeText           QuestionType = "TEXT"            // Display-only text block, never scored
	QuestionTypeNumber         QuestionType = "NUMBER"
	QuestionTypeDate           QuestionType = "DATE"
	QuestionTypeRangeDate      QuestionType = "RANGE_DATE"
	QuestionTypeSelection      QuestionType = "SELECTION" // Dropdown-style pick
	QuestionTypeRangeNumber    QuestionType = "RANGE_NUMBER"
	QuestionTypeShortAnswer    QuestionType = "SHORT_ANSWER"
	QuestionTypeParagraph      QuestionType = "PARAGRAPH"
)

// IsSupported reports whether t is one of the closed set of question types
func (t QuestionType) IsSupported() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeCheckBox, QuestionTypeText,
		QuestionTypeNumber, QuestionTypeDate, QuestionTypeRangeDate,
		QuestionTypeSelection, QuestionTypeRangeNumber,
		QuestionTypeShortAnswer, QuestionTypeParagraph:
		return true
	}
	return false
}

// IsChoice reports whether t carries a bounded option set
func (t QuestionType) IsChoice() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeCheckBox, QuestionTypeSelection:
		return true
	}
	return false
}

// CanHaveConditionalChildren reports whether questions of this type may
// declare conditionally revealed sub-questions
func (t QuestionType) CanHaveConditionalChildren() bool {
	return t == QuestionTypeCheckBox || t == QuestionTypeMultipleChoice
}

// Option is a single answer option of a choice-like question
type Option struct {
	Index int    `json:"optionIndex" bson:"optionIndex"`
	Label string `json:"label" bson:"label"`
}

// ParentRef marks a question as conditionally revealed: it is only shown when
// the parent's submitted answer selects OptionIndex
type ParentRef struct {
	QuestionID  string `json:"parentQuestionId" bson:"parentQuestionId"`
	OptionIndex int    `json:"optionIndex" bson:"optionIndex"`
}

// ChildRule is one entry of a question's conditionalChildren list. The list is
// the authoritative reveal order for the question's sub-questions.
type ChildRule struct {
	OptionIndex int    `json:"optionIndex" bson:"optionIndex"`
	ChildID     string `json:"childQuestionId" bson:"childQuestionId"`
}

// AnswerKey holds the correct answer for auto-scoring. Value's shape depends
// on the question type (same shapes as submitted answers).
type AnswerKey struct {
	Value     interface{} `json:"value" bson:"value"`
	IsCorrect bool        `json:"isCorrect" bson:"isCorrect"` // Always true in practice, kept for extensibility
}

// Question is a single content item of a form
type Question struct {
	ID                  string       `json:"id" bson:"_id,omitempty"`
	FormID              string       `json:"formId" bson:"formId"`
	DisplayIndex        int          `json:"displayIndex" bson:"displayIndex"` // Author ordering hint, not unique
	Type                QuestionType `json:"type" bson:"type"`
	Title               string       `json:"title" bson:"title"`
	Options             []Option     `json:"options,omitempty" bson:"options,omitempty"`
	Required            bool         `json:"required" bson:"required"`
	MaxScore            *float64     `json:"maxScore,omitempty" bson:"maxScore,omitempty"`
	AnswerKey           *AnswerKey   `json:"answerKey,omitempty" bson:"answerKey,omitempty"`
	ParentRef           *ParentRef   `json:"parentRef,omitempty" bson:"parentRef,omitempty"`
	ConditionalChildren []ChildRule  `json:"conditionalChildren,omitempty" bson:"conditionalChildren,omitempty"`
	CreatedAt           time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// DeclaredScore returns the author-declared max score, 0 when unset
func (q *Question) DeclaredScore() float64 {
	if q.MaxScore == nil {
		return 0
	}
	return *q.MaxScore
}

// OptionCount returns the number of declared answer options
func (q *Question) OptionCount() int {
	return len(q.Options)
}

// HasOption reports whether index refers to an existing option
func (q *Question) HasOption(index int) bool {
	for _, o := range q.Options {
		if o.Index == index {
			return true
		}
	}
	return false
}

// IsRoot reports whether the question is not conditionally revealed
func (q *Question) IsRoot() bool {
	return q.ParentRef == nil
}
