package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"formforge/internal/model"
)

const (
	issueMissingAnswer = "answer key is missing"
	issueMissingScore  = "score is missing"
	issueWrongScore    = "wrong score: must be greater than the parent question's score"
)

// ContentValidationService produces authoring-time validation reports for
// questions and whole forms. Unlike the scoring path it accumulates findings
// so authors see everything wrong at once.
type ContentValidationService struct {
	log logrus.FieldLogger
}

// NewContentValidationService creates a new content validation service
func NewContentValidationService(log logrus.FieldLogger) *ContentValidationService {
	return &ContentValidationService{log: log}
}

// ValidateQuestion checks a single question. parentDeclaredScore is non-nil
// when the question is a conditional child; its own score must then be
// strictly greater than the parent's.
func (s *ContentValidationService) ValidateQuestion(q *model.Question, parentDeclaredScore *float64) model.QuestionReport {
	report := model.QuestionReport{QuestionID: q.ID, IsValid: true}

	// Display-only blocks never need an answer or score.
	if q.Type == model.QuestionTypeText {
		return report
	}

	if q.AnswerKey == nil || q.AnswerKey.Value == nil {
		report.MissingAnswers = append(report.MissingAnswers, issueMissingAnswer)
	}

	if q.MaxScore == nil || *q.MaxScore == 0 {
		report.MissingScores = append(report.MissingScores, issueMissingScore)
	}

	if parentDeclaredScore != nil && q.DeclaredScore() <= *parentDeclaredScore {
		report.MissingScores = append(report.MissingScores, issueWrongScore)
	}

	if q.AnswerKey != nil && q.AnswerKey.Value != nil {
		if format := ValidateAnswerFormat(q.Type, q.AnswerKey.Value, q); !format.IsValid {
			report.Errors = append(report.Errors, format.Errors...)
		}
	}

	if q.Required && (q.AnswerKey == nil || q.MaxScore == nil) {
		report.Errors = append(report.Errors, "required question must have both an answer key and a score")
	}

	report.IsValid = len(report.Errors) == 0 &&
		len(report.MissingAnswers) == 0 &&
		len(report.MissingScores) == 0
	return report
}

// ValidateForm validates every question of a form and aggregates the result.
// Conditional children are validated against their parent's declared score;
// the form total sums only root question scores (TEXT is never counted).
func (s *ContentValidationService) ValidateForm(form *model.Form, questions []model.Question) model.FormReport {
	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		if questions[i].ID != "" {
			byID[questions[i].ID] = &questions[i]
		}
	}

	report := model.FormReport{Questions: make([]model.QuestionReport, 0, len(questions))}
	scorable := false

	for i := range questions {
		q := &questions[i]

		var parentScore *float64
		if q.ParentRef != nil {
			if parent, ok := byID[q.ParentRef.QuestionID]; ok {
				score := parent.DeclaredScore()
				parentScore = &score
			}
		}

		qr := s.ValidateQuestion(q, parentScore)
		report.Questions = append(report.Questions, qr)
		if qr.IsValid {
			report.TotalValid++
		} else {
			report.TotalInvalid++
		}

		if q.Type != model.QuestionTypeText {
			scorable = true
			if q.IsRoot() {
				report.TotalScore += q.DeclaredScore()
			}
		}
	}

	report.CanAutoScore = form != nil &&
		form.IsQuiz() &&
		report.TotalInvalid == 0 &&
		scorable &&
		form.Settings.ScoringMode == model.ScoringModePartial

	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"valid":        report.TotalValid,
			"invalid":      report.TotalInvalid,
			"canAutoScore": report.CanAutoScore,
		}).Debug("form content validated")
	}
	return report
}

// ValidateConditionalConfig checks a question's conditionalChildren wiring at
// authoring time. Violations block saving the question: only CheckBox and
// MultipleChoice questions may reveal children, and every rule must reference
// an existing option.
func ValidateConditionalConfig(q *model.Question) error {
	if len(q.ConditionalChildren) == 0 {
		return nil
	}
	if !q.Type.CanHaveConditionalChildren() {
		return &SubmissionError{
			Code:       CodeConditionalConfig,
			QuestionID: q.ID,
			Detail:     fmt.Sprintf("type %s cannot have conditional children", q.Type),
		}
	}
	for _, rule := range q.ConditionalChildren {
		if !q.HasOption(rule.OptionIndex) {
			return &SubmissionError{
				Code:       CodeConditionalConfig,
				QuestionID: q.ID,
				Detail:     fmt.Sprintf("conditional child references unknown option %d", rule.OptionIndex),
			}
		}
	}
	return nil
}
