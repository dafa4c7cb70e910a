package model

// QuestionReport is the accumulated validation outcome for a single question.
// Authoring-facing: everything wrong with the question at once, not fail-fast.
type QuestionReport struct {
	QuestionID     string   `json:"questionId"`
	IsValid        bool     `json:"isValid"`
	Errors         []string `json:"errors,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	MissingAnswers []string `json:"missingAnswers,omitempty"`
	MissingScores  []string `json:"missingScores,omitempty"`
}

// FormReport aggregates question reports for a whole form
type FormReport struct {
	CanAutoScore bool             `json:"canAutoScore"`
	TotalValid   int              `json:"totalValid"`
	TotalInvalid int              `json:"totalInvalid"`
	TotalScore   float64          `json:"totalScore"` // Root questions only, TEXT excluded
	Questions    []QuestionReport `json:"questions"`
}
