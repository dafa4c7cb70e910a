package service

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"formforge/internal/model"
)

// FormatResult reports structural validity of an answer value
type FormatResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors,omitempty"`
}

// ValidateAnswerFormat checks that answer has the right shape for the
// question's type (array vs scalar vs range object). It never inspects the
// answer key, only structure.
func ValidateAnswerFormat(t model.QuestionType, answer interface{}, q *model.Question) FormatResult {
	var errs []string

	switch t {
	case model.QuestionTypeMultipleChoice:
		errs = validateOptionIndexList(answer, q, true)

	case model.QuestionTypeCheckBox:
		errs = validateOptionIndexList(answer, q, false)

	case model.QuestionTypeSelection:
		list, ok := asList(answer)
		if !ok {
			errs = append(errs, "selection answer must be an array")
		} else if len(list) == 0 {
			errs = append(errs, "selection answer must not be empty")
		}

	case model.QuestionTypeText, model.QuestionTypeShortAnswer,
		model.QuestionTypeParagraph, model.QuestionTypeDate:
		if _, ok := asString(answer); !ok {
			errs = append(errs, fmt.Sprintf("%s answer must be a string", strings.ToLower(string(t))))
		}

	case model.QuestionTypeNumber:
		if _, ok := asNumber(answer); !ok {
			errs = append(errs, "number answer must be numeric")
		}

	case model.QuestionTypeRangeDate:
		start, end, ok := rangeBounds(answer)
		if !ok {
			errs = append(errs, "range answer must be an object with start and end")
		} else {
			if _, ok := parseDate(start); !ok {
				errs = append(errs, "range start is not a valid date")
			}
			if _, ok := parseDate(end); !ok {
				errs = append(errs, "range end is not a valid date")
			}
		}

	case model.QuestionTypeRangeNumber:
		start, end, ok := rangeBounds(answer)
		if !ok {
			errs = append(errs, "range answer must be an object with start and end")
		} else {
			if _, ok := asNumber(start); !ok {
				errs = append(errs, "range start must be numeric")
			}
			if _, ok := asNumber(end); !ok {
				errs = append(errs, "range end must be numeric")
			}
		}

	default:
		errs = append(errs, fmt.Sprintf("unsupported question type %q", t))
	}

	return FormatResult{IsValid: len(errs) == 0, Errors: errs}
}

func validateOptionIndexList(answer interface{}, q *model.Question, requireNonEmpty bool) []string {
	var errs []string
	list, ok := asList(answer)
	if !ok {
		return []string{"choice answer must be an array of option indices"}
	}
	if requireNonEmpty && len(list) == 0 {
		errs = append(errs, "choice answer must select at least one option")
	}
	count := 0
	if q != nil {
		count = q.OptionCount()
	}
	for _, v := range list {
		n, ok := asNumber(v)
		if !ok || n != math.Trunc(n) {
			errs = append(errs, fmt.Sprintf("option index %v is not an integer", v))
			continue
		}
		idx := int(n)
		if idx < 0 || idx >= count {
			errs = append(errs, fmt.Sprintf("option index %d is out of range", idx))
		}
	}
	return errs
}

// IsAnswerEmpty classifies an answer as empty: nil, blank string, empty array,
// or a range object with both bounds empty. Numbers and booleans (including 0
// and false) are never empty. Gates the required-question rule.
func IsAnswerEmpty(answer interface{}) bool {
	if answer == nil {
		return true
	}
	if s, ok := asString(answer); ok {
		return strings.TrimSpace(s) == ""
	}
	if list, ok := asList(answer); ok {
		return len(list) == 0
	}
	if start, end, ok := rangeBounds(answer); ok {
		return IsAnswerEmpty(start) && IsAnswerEmpty(end)
	}
	return false
}

// asString extracts a string answer value
func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asNumber extracts a numeric answer value from the loosely typed forms JSON
// and bson decoding produce
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// asList extracts slice-shaped answers regardless of element type
func asList(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if list, ok := v.([]interface{}); ok {
		return list, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// rangeBounds extracts the start/end pair of a range answer object
func rangeBounds(v interface{}) (start, end interface{}, ok bool) {
	m, isMap := v.(map[string]interface{})
	if !isMap {
		return nil, nil, false
	}
	start, hasStart := m["start"]
	end, hasEnd := m["end"]
	if !hasStart && !hasEnd {
		return nil, nil, false
	}
	return start, end, true
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// parseDate parses the date representations clients submit
func parseDate(v interface{}) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
