package service

import (
	"github.com/sirupsen/logrus"

	"formforge/internal/model"
)

// ScoredSubmission is the orchestrator's output: the scored entries and the
// visible total
type ScoredSubmission struct {
	Entries    []model.ResponseEntry
	TotalScore float64
}

// ScoringOrchestrator is the submission entry point: it validates required
// and format rules for every question of the form, scores answered questions
// against their answer keys, and aggregates the total. Strict mode: a missing
// entry is fatal even for optional questions, and the first failing question
// aborts the whole submission.
type ScoringOrchestrator struct {
	log logrus.FieldLogger
}

// NewScoringOrchestrator creates a new scoring orchestrator
func NewScoringOrchestrator(log logrus.FieldLogger) *ScoringOrchestrator {
	return &ScoringOrchestrator{log: log}
}

// ScoreSubmission scores a submission against the form's question set.
// Questions without an answer key are marked for manual scoring instead of
// receiving a numeric score. Conditional children are scored but excluded
// from the total, mirroring the authoring-time total-score rule.
func (o *ScoringOrchestrator) ScoreSubmission(questions []model.Question, entries []model.ResponseEntry) (*ScoredSubmission, error) {
	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		if questions[i].ID != "" {
			byID[questions[i].ID] = &questions[i]
		}
	}

	entryByQuestion := make(map[string]*model.ResponseEntry, len(entries))
	for i := range entries {
		entryByQuestion[entries[i].QuestionID] = &entries[i]
	}

	result := &ScoredSubmission{Entries: make([]model.ResponseEntry, 0, len(questions))}

	for i := range questions {
		q := &questions[i]

		if !q.Type.IsSupported() {
			return nil, &SubmissionError{Code: CodeUnsupportedQuestionType, QuestionID: q.ID}
		}

		entry, answered := entryByQuestion[q.ID]

		if q.Required && (!answered || IsAnswerEmpty(entry.Answer)) {
			return nil, &SubmissionError{Code: CodeRequiredAnswerMissing, QuestionID: q.ID}
		}
		if !answered {
			return nil, &SubmissionError{Code: CodeQuestionNotAnswered, QuestionID: q.ID}
		}

		if format := ValidateAnswerFormat(q.Type, entry.Answer, q); !format.IsValid {
			detail := ""
			if len(format.Errors) > 0 {
				detail = format.Errors[0]
			}
			return nil, &SubmissionError{Code: CodeInvalidAnswerFormat, QuestionID: q.ID, Detail: detail}
		}

		scored := model.ResponseEntry{QuestionID: q.ID, Answer: entry.Answer}
		if q.AnswerKey != nil && q.AnswerKey.Value != nil {
			awarded := ScoreAnswer(entry.Answer, q.AnswerKey.Value, q.Type, EffectiveMaxScore(q, byID))
			scored.AwardedScore = &awarded
		} else if q.Type != model.QuestionTypeText {
			scored.ManuallyScored = true // no key, owner scores by hand
		}
		result.Entries = append(result.Entries, scored)

		// Conditional children stay out of the visible total so branch
		// credit is not counted twice.
		if q.IsRoot() && scored.AwardedScore != nil {
			result.TotalScore += *scored.AwardedScore
		}
	}

	if o.log != nil {
		o.log.WithFields(logrus.Fields{
			"questions": len(questions),
			"total":     result.TotalScore,
		}).Debug("submission scored")
	}
	return result, nil
}

// RecomputeTotal recalculates a response's visible total after manual
// re-scoring, with the same root-only exclusion rule as ScoreSubmission
func RecomputeTotal(questions []model.Question, entries []model.ResponseEntry) float64 {
	rootByID := make(map[string]bool, len(questions))
	for i := range questions {
		if questions[i].ID != "" {
			rootByID[questions[i].ID] = questions[i].IsRoot()
		}
	}

	total := 0.0
	for i := range entries {
		if entries[i].AwardedScore == nil {
			continue
		}
		if rootByID[entries[i].QuestionID] {
			total += *entries[i].AwardedScore
		}
	}
	return total
}
