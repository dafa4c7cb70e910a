package service

import (
	"errors"
	"fmt"
)

var (
	ErrFormNotFound     = errors.New("form not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrResponseNotFound = errors.New("response not found")
	ErrNotFormOwner     = errors.New("form does not belong to this owner")
	ErrFormClosed       = errors.New("form is not accepting responses")
	ErrDuplicateSubmit  = errors.New("form already submitted by this respondent")
)

// SubmissionErrorCode discriminates scoring/submission failures
type SubmissionErrorCode string

const (
	CodeRequiredAnswerMissing   SubmissionErrorCode = "REQUIRED_ANSWER_MISSING"
	CodeQuestionNotAnswered     SubmissionErrorCode = "QUESTION_NOT_ANSWERED"
	CodeInvalidAnswerFormat     SubmissionErrorCode = "INVALID_ANSWER_FORMAT"
	CodeUnsupportedQuestionType SubmissionErrorCode = "UNSUPPORTED_QUESTION_TYPE"
	CodeConditionalConfig       SubmissionErrorCode = "CONDITIONAL_CONFIGURATION_ERROR"
)

// SubmissionError is the typed failure returned by the scoring path. The
// orchestrator fails fast: the first failing question aborts the submission.
type SubmissionError struct {
	Code       SubmissionErrorCode
	QuestionID string
	Detail     string
}

func (e *SubmissionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s (question %s)", e.Code, e.QuestionID)
	}
	return fmt.Sprintf("%s (question %s): %s", e.Code, e.QuestionID, e.Detail)
}

// AsSubmissionError unwraps err into a *SubmissionError if it is one
func AsSubmissionError(err error) (*SubmissionError, bool) {
	var se *SubmissionError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
