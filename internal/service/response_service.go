package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"formforge/internal/cache"
	"formforge/internal/model"
	"formforge/internal/repository"
)

// SubmitRequest is a parsed submission payload
type SubmitRequest struct {
	RespondentID string                `json:"respondentId,omitempty"`
	Entries      []model.ResponseEntry `json:"entries"`
}

// ResponseService handles submission, listing and manual re-scoring of
// responses
type ResponseService struct {
	formRepo        repository.FormRepo
	questionRepo    repository.QuestionRepo
	responseRepo    repository.ResponseRepo
	submissionCache cache.SubmissionCache
	orchestrator    *ScoringOrchestrator
	email           EmailService
	broadcaster     Broadcaster
	log             logrus.FieldLogger
}

// NewResponseService creates a new response service
func NewResponseService(
	formRepo repository.FormRepo,
	questionRepo repository.QuestionRepo,
	responseRepo repository.ResponseRepo,
	submissionCache cache.SubmissionCache,
	orchestrator *ScoringOrchestrator,
	email EmailService,
	log logrus.FieldLogger,
) *ResponseService {
	return &ResponseService{
		formRepo:        formRepo,
		questionRepo:    questionRepo,
		responseRepo:    responseRepo,
		submissionCache: submissionCache,
		orchestrator:    orchestrator,
		email:           email,
		log:             log,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates, scores and persists one submission. Duplicate submissions
// by the same respondent are rejected before the scoring core runs.
func (s *ResponseService) Submit(ctx context.Context, formID string, req *SubmitRequest) (*model.Response, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	if !form.Settings.AcceptResponses {
		return nil, ErrFormClosed
	}

	respondentID := req.RespondentID
	if respondentID == "" {
		respondentID = "anon_" + uuid.New().String()[:8]
	} else {
		claimed, err := s.submissionCache.ClaimSubmission(ctx, formID, respondentID)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, ErrDuplicateSubmit
		}
		// The redis claim is fast-path only; the repo check covers entries
		// that outlived the cache TTL.
		exists, err := s.responseRepo.ExistsForRespondent(ctx, formID, respondentID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateSubmit
		}
	}

	questions, err := s.questionRepo.GetByFormID(ctx, formID)
	if err != nil {
		return nil, err
	}

	scored, err := s.orchestrator.ScoreSubmission(questions, req.Entries)
	if err != nil {
		if req.RespondentID != "" {
			// Rejected submissions do not consume the one-shot claim.
			_ = s.submissionCache.ReleaseSubmission(ctx, formID, respondentID)
		}
		return nil, err
	}

	response := &model.Response{
		ID:           uuid.New().String(),
		FormID:       formID,
		RespondentID: respondentID,
		Entries:      scored.Entries,
		TotalScore:   scored.TotalScore,
		SubmittedAt:  time.Now(),
	}
	if err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToOwner(formID, "response_received", map[string]interface{}{
			"responseId":   response.ID,
			"respondentId": response.RespondentID,
			"totalScore":   response.TotalScore,
		})
	}

	if form.Settings.NotifyOnSubmit && form.OwnerEmail != "" && s.email != nil {
		go func(toEmail, title, responseID string) {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.email.SendResponseNotification(notifyCtx, toEmail, title, responseID); err != nil && s.log != nil {
				s.log.WithError(err).Warn("response notification email failed")
			}
		}(form.OwnerEmail, form.Title, response.ID)
	}

	return response, nil
}

// GetByFormID lists a form's responses for its owner
func (s *ResponseService) GetByFormID(ctx context.Context, ownerID, formID string) ([]*model.Response, error) {
	if err := s.checkOwnership(ctx, ownerID, formID); err != nil {
		return nil, err
	}
	return s.responseRepo.GetByFormID(ctx, formID)
}

// Rescore sets a manual score on one entry of a response, bypassing the
// scoring engine, and recomputes the visible total
func (s *ResponseService) Rescore(ctx context.Context, ownerID, responseID, questionID string, score float64) (*model.Response, error) {
	response, err := s.responseRepo.GetByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, ErrResponseNotFound
	}
	if err := s.checkOwnership(ctx, ownerID, response.FormID); err != nil {
		return nil, err
	}

	entry := response.EntryFor(questionID)
	if entry == nil {
		return nil, ErrQuestionNotFound
	}
	entry.AwardedScore = &score
	entry.ManuallyScored = true

	questions, err := s.questionRepo.GetByFormID(ctx, response.FormID)
	if err != nil {
		return nil, err
	}
	response.TotalScore = RecomputeTotal(questions, response.Entries)

	if err := s.responseRepo.Update(ctx, response); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToOwner(response.FormID, "response_scored", map[string]interface{}{
			"responseId": response.ID,
			"questionId": questionID,
			"totalScore": response.TotalScore,
		})
	}
	return response, nil
}

func (s *ResponseService) checkOwnership(ctx context.Context, ownerID, formID string) error {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return err
	}
	if form == nil {
		return ErrFormNotFound
	}
	if form.OwnerID != ownerID {
		return ErrNotFormOwner
	}
	return nil
}
