package model

import "time"

// ResponseEntry is the submitted answer for one question
type ResponseEntry struct {
	QuestionID     string      `json:"questionId" bson:"questionId"`
	Answer         interface{} `json:"answer" bson:"answer"`
	AwardedScore   *float64    `json:"awardedScore,omitempty" bson:"awardedScore,omitempty"`
	ManuallyScored bool        `json:"manuallyScored" bson:"manuallyScored"` // Awaiting or set by owner re-scoring
}

// Response is one completed submission of a form
type Response struct {
	ID           string          `json:"id" bson:"_id,omitempty"`
	FormID       string          `json:"formId" bson:"formId"`
	RespondentID string          `json:"respondentId" bson:"respondentId"`
	Entries      []ResponseEntry `json:"entries" bson:"entries"`
	TotalScore   float64         `json:"totalScore" bson:"totalScore"` // Sum over root questions only
	SubmittedAt  time.Time       `json:"submittedAt" bson:"submittedAt"`
}

// EntryFor returns the entry answering questionID, or nil
func (r *Response) EntryFor(questionID string) *ResponseEntry {
	for i := range r.Entries {
		if r.Entries[i].QuestionID == questionID {
			return &r.Entries[i]
		}
	}
	return nil
}
