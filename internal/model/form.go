package model

import "time"

// FormType distinguishes plain forms from scored quizzes
type FormType string

const (
	FormTypeNormal FormType = "NORMAL"
	FormTypeQuiz   FormType = "QUIZ"
)

// ScoringMode controls how quiz responses get scored
type ScoringMode string

const (
	ScoringModePartial ScoringMode = "PARTIAL" // Automatic, formula-based scoring
	ScoringModeManual  ScoringMode = "MANUAL"  // Owner scores by hand
)

// FormSettings configures form behavior
type FormSettings struct {
	ScoringMode     ScoringMode `json:"scoringMode,omitempty" bson:"scoringMode,omitempty"`
	AcceptResponses bool        `json:"acceptResponses" bson:"acceptResponses"`
	NotifyOnSubmit  bool        `json:"notifyOnSubmit" bson:"notifyOnSubmit"` // Email the owner on each submission
}

// Form is a persistent form/quiz template created by an owner
type Form struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	OwnerID     string       `json:"ownerId" bson:"ownerId"`
	OwnerEmail  string       `json:"ownerEmail,omitempty" bson:"ownerEmail,omitempty"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Type        FormType     `json:"type" bson:"type"`
	Settings    FormSettings `json:"settings" bson:"settings"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// IsQuiz reports whether the form is scored
func (f *Form) IsQuiz() bool {
	return f.Type == FormTypeQuiz
}
