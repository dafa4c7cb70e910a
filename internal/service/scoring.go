package service

import (
	"fmt"
	"math"
	"strings"

	"formforge/internal/model"
)

// ScoreAnswer computes the awarded score for a submitted answer against the
// answer key. The result is always within [0, maxScore]. A falsy key (nil,
// zero, blank string, false) or a zero max score short-circuits to 0
// regardless of type.
func ScoreAnswer(userAnswer, correctAnswer interface{}, t model.QuestionType, maxScore float64) float64 {
	if isFalsyKey(correctAnswer) || maxScore <= 0 {
		return 0
	}

	var score float64
	switch t {
	case model.QuestionTypeText:
		score = 0 // display-only, never scored

	case model.QuestionTypeMultipleChoice, model.QuestionTypeCheckBox, model.QuestionTypeSelection:
		score = scoreChoice(userAnswer, correctAnswer, maxScore)

	case model.QuestionTypeShortAnswer, model.QuestionTypeParagraph:
		score = scoreFreeText(userAnswer, correctAnswer, maxScore)

	case model.QuestionTypeNumber:
		u, okU := asNumber(userAnswer)
		c, okC := asNumber(correctAnswer)
		if okU && okC && u == c {
			score = maxScore
		}

	case model.QuestionTypeDate:
		u, okU := parseDate(userAnswer)
		c, okC := parseDate(correctAnswer)
		if okU && okC && u.Equal(c) {
			score = maxScore
		}

	case model.QuestionTypeRangeDate:
		score = scoreDateRange(userAnswer, correctAnswer, maxScore)

	case model.QuestionTypeRangeNumber:
		score = scoreNumberRange(userAnswer, correctAnswer, maxScore)

	default:
		score = 0
	}

	return math.Min(math.Max(score, 0), maxScore)
}

// isFalsyKey reports whether an answer key value disables scoring. Zero
// numbers, blank strings and false count the same as a missing key.
func isFalsyKey(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := asString(v); ok {
		return strings.TrimSpace(s) == ""
	}
	if n, ok := asNumber(v); ok {
		return n == 0
	}
	if b, ok := v.(bool); ok {
		return !b
	}
	return false
}

// scoreChoice treats both answers as sets of selections. An exact match earns
// the full score, anything else earns Jaccard-proportional partial credit.
func scoreChoice(userAnswer, correctAnswer interface{}, maxScore float64) float64 {
	user, okU := asSelectionSet(userAnswer)
	correct, okC := asSelectionSet(correctAnswer)
	if !okU || !okC {
		return 0
	}

	intersection := 0
	for k := range user {
		if _, ok := correct[k]; ok {
			intersection++
		}
	}
	if len(user) == len(correct) && intersection == len(correct) {
		return maxScore
	}

	union := len(user) + len(correct) - intersection
	if union == 0 {
		return maxScore
	}
	return math.Round(maxScore * float64(intersection) / float64(union))
}

// scoreFreeText awards the full score on a case-insensitive trimmed match, or
// when the word-set similarity exceeds 0.8. No intermediate partial credit.
func scoreFreeText(userAnswer, correctAnswer interface{}, maxScore float64) float64 {
	user, okU := asString(userAnswer)
	correct, okC := asString(correctAnswer)
	if !okU || !okC {
		return 0
	}

	u := strings.ToLower(strings.TrimSpace(user))
	c := strings.ToLower(strings.TrimSpace(correct))
	if u == c {
		return maxScore
	}
	if wordSetSimilarity(u, c) > 0.8 {
		return maxScore
	}
	return 0
}

// wordSetSimilarity is the Jaccard similarity of the whitespace-split word
// sets of two strings
func wordSetSimilarity(a, b string) float64 {
	wordsA := toWordSet(a)
	wordsB := toWordSet(b)
	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 1
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func toWordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

func scoreDateRange(userAnswer, correctAnswer interface{}, maxScore float64) float64 {
	uStart, uEnd, okU := rangeBounds(userAnswer)
	cStart, cEnd, okC := rangeBounds(correctAnswer)
	if !okU || !okC {
		return 0
	}
	us, okUS := parseDate(uStart)
	ue, okUE := parseDate(uEnd)
	cs, okCS := parseDate(cStart)
	ce, okCE := parseDate(cEnd)
	if !okUS || !okUE || !okCS || !okCE {
		return 0
	}
	if us.Equal(cs) && ue.Equal(ce) {
		return maxScore
	}
	return 0
}

func scoreNumberRange(userAnswer, correctAnswer interface{}, maxScore float64) float64 {
	uStart, uEnd, okU := rangeBounds(userAnswer)
	cStart, cEnd, okC := rangeBounds(correctAnswer)
	if !okU || !okC {
		return 0
	}
	us, okUS := asNumber(uStart)
	ue, okUE := asNumber(uEnd)
	cs, okCS := asNumber(cStart)
	ce, okCE := asNumber(cEnd)
	if !okUS || !okUE || !okCS || !okCE {
		return 0
	}
	if us == cs && ue == ce {
		return maxScore
	}
	return 0
}

// asSelectionSet normalizes an array answer into a set of canonical selection
// keys. Numeric selections compare by value (3 == 3.0), everything else by
// string form.
func asSelectionSet(v interface{}) (map[string]struct{}, bool) {
	list, ok := asList(v)
	if !ok {
		return nil, false
	}
	set := make(map[string]struct{}, len(list))
	for _, item := range list {
		if n, ok := asNumber(item); ok {
			set[fmt.Sprintf("n:%v", n)] = struct{}{}
			continue
		}
		set[fmt.Sprintf("v:%v", item)] = struct{}{}
	}
	return set, true
}

// EffectiveMaxScore returns the max score the scoring formula should use for
// a question. For questions with conditional children the parent's own point
// budget is treated as spent on the baseline choice; the credit available is
// the children's combined worth minus the parent's declared score, clamped at
// zero. Children without a declared score are excluded from the sum. Inherited
// behavior, preserved exactly.
func EffectiveMaxScore(q *model.Question, byID map[string]*model.Question) float64 {
	if len(q.ConditionalChildren) == 0 {
		return q.DeclaredScore()
	}

	sum := 0.0
	for _, rule := range q.ConditionalChildren {
		child, ok := byID[rule.ChildID]
		if !ok || child == nil || child.MaxScore == nil {
			continue
		}
		sum += *child.MaxScore
	}

	diff := sum - q.DeclaredScore()
	if diff < 0 {
		return 0
	}
	return diff
}
