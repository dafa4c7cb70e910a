package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formforge/internal/model"
)

func rootQ(id string, displayIndex int) model.Question {
	return model.Question{
		ID:           id,
		Type:         model.QuestionTypeShortAnswer,
		DisplayIndex: displayIndex,
	}
}

func childQ(id string, displayIndex int, parentID string, optionIndex int) model.Question {
	q := rootQ(id, displayIndex)
	q.ParentRef = &model.ParentRef{QuestionID: parentID, OptionIndex: optionIndex}
	return q
}

func orderedIDs(questions []model.Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func TestOrderQuestions_RootsByDisplayIndex(t *testing.T) {
	questions := []model.Question{
		rootQ("b", 2),
		rootQ("c", 3),
		rootQ("a", 1),
	}

	out := OrderQuestions(questions)

	assert.Equal(t, []string{"a", "b", "c"}, orderedIDs(out))
}

func TestOrderQuestions_ChildFollowsParent(t *testing.T) {
	parent := rootQ("q2", 1)
	parent.Type = model.QuestionTypeMultipleChoice
	parent.Options = []model.Option{{Index: 0, Label: "Yes"}, {Index: 1, Label: "No"}}
	parent.ConditionalChildren = []model.ChildRule{{OptionIndex: 0, ChildID: "s1"}}

	questions := []model.Question{
		rootQ("q1", 0),
		parent,
		rootQ("q3", 2),
		childQ("s1", 5, "q2", 0),
	}

	out := OrderQuestions(questions)

	// Subtree is emitted right after the parent, before later roots.
	assert.Equal(t, []string{"q1", "q2", "s1", "q3"}, orderedIDs(out))
}

func TestOrderQuestions_DeterministicUnderPermutation(t *testing.T) {
	parent := rootQ("p", 1)
	parent.ConditionalChildren = []model.ChildRule{
		{OptionIndex: 0, ChildID: "c1"},
		{OptionIndex: 1, ChildID: "c2"},
	}

	base := []model.Question{
		rootQ("a", 0),
		parent,
		childQ("c1", 7, "p", 0),
		childQ("c2", 3, "p", 1),
		rootQ("z", 2),
	}

	expected := orderedIDs(OrderQuestions(base))
	require.Equal(t, []string{"a", "p", "c1", "c2", "z"}, expected)

	permuted := []model.Question{base[3], base[4], base[0], base[2], base[1]}
	assert.Equal(t, expected, orderedIDs(OrderQuestions(permuted)))
}

func TestOrderQuestions_ListedChildrenKeepRuleOrder(t *testing.T) {
	parent := rootQ("p", 0)
	// Rule order disagrees with displayIndex on purpose.
	parent.ConditionalChildren = []model.ChildRule{
		{OptionIndex: 0, ChildID: "second"},
		{OptionIndex: 1, ChildID: "first"},
	}

	questions := []model.Question{
		parent,
		childQ("first", 1, "p", 1),
		childQ("second", 2, "p", 0),
	}

	out := OrderQuestions(questions)

	assert.Equal(t, []string{"p", "second", "first"}, orderedIDs(out))
}

func TestOrderQuestions_UnlistedChildrenAfterListed(t *testing.T) {
	parent := rootQ("p", 0)
	parent.ConditionalChildren = []model.ChildRule{{OptionIndex: 0, ChildID: "listed"}}

	questions := []model.Question{
		parent,
		childQ("unlistedLow", 1, "p", 0),
		childQ("unlistedHigh", 9, "p", 0),
		childQ("listed", 5, "p", 0),
	}

	out := OrderQuestions(questions)

	// Unlisted children come after listed ones, by descending displayIndex.
	assert.Equal(t, []string{"p", "listed", "unlistedHigh", "unlistedLow"}, orderedIDs(out))
}

func TestOrderQuestions_OrphanAppendedAfterRoots(t *testing.T) {
	questions := []model.Question{
		rootQ("a", 0),
		childQ("orphan", 1, "ghost", 0),
		rootQ("b", 2),
	}

	out := OrderQuestions(questions)

	assert.Equal(t, []string{"a", "b", "orphan"}, orderedIDs(out))
}

func TestOrderQuestions_CycleDoesNotLoop(t *testing.T) {
	a := childQ("a", 0, "b", 0)
	b := childQ("b", 1, "a", 0)

	out := OrderQuestions([]model.Question{a, b})

	// Both cycle members appear exactly once.
	require.Len(t, out, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, orderedIDs(out))
}

func TestOrderQuestions_SelfReference(t *testing.T) {
	q := childQ("self", 0, "self", 0)

	out := OrderQuestions([]model.Question{q})

	require.Len(t, out, 1)
	assert.Equal(t, "self", out[0].ID)
}

func TestOrderQuestions_DropsQuestionsWithoutID(t *testing.T) {
	questions := []model.Question{
		rootQ("a", 0),
		{Type: model.QuestionTypeShortAnswer, DisplayIndex: 1},
		rootQ("b", 2),
	}

	out := OrderQuestions(questions)

	assert.Equal(t, []string{"a", "b"}, orderedIDs(out))
}

func TestOrderQuestions_DuplicateIDsEmittedOnce(t *testing.T) {
	questions := []model.Question{
		rootQ("a", 0),
		rootQ("a", 5),
		rootQ("b", 1),
	}

	out := OrderQuestions(questions)

	require.Len(t, out, 2)
	assert.Equal(t, []string{"a", "b"}, orderedIDs(out))
	assert.Equal(t, 0, out[0].DisplayIndex, "first occurrence wins")
}

func TestOrderQuestions_EqualDisplayIndexKeepsInputOrder(t *testing.T) {
	questions := []model.Question{
		rootQ("x", 1),
		rootQ("y", 1),
		rootQ("z", 1),
	}

	out := OrderQuestions(questions)

	assert.Equal(t, []string{"x", "y", "z"}, orderedIDs(out))
}

func TestOrderQuestions_NestedSubtrees(t *testing.T) {
	root := rootQ("root", 0)
	root.ConditionalChildren = []model.ChildRule{{OptionIndex: 0, ChildID: "mid"}}
	mid := childQ("mid", 1, "root", 0)
	mid.ConditionalChildren = []model.ChildRule{{OptionIndex: 0, ChildID: "leaf"}}

	questions := []model.Question{
		rootQ("after", 9),
		mid,
		childQ("leaf", 2, "mid", 0),
		root,
	}

	out := OrderQuestions(questions)

	assert.Equal(t, []string{"root", "mid", "leaf", "after"}, orderedIDs(out))
}

func TestOrderQuestions_Empty(t *testing.T) {
	assert.Empty(t, OrderQuestions(nil))
	assert.Empty(t, OrderQuestions([]model.Question{}))
}
