package service

import (
	"context"

	"github.com/google/uuid"

	"formforge/internal/model"
	"formforge/internal/repository"
)

// QuestionService handles question authoring. Conditional configuration is
// checked at save time so a broken reveal tree never reaches the orderer.
type QuestionService struct {
	formRepo     repository.FormRepo
	questionRepo repository.QuestionRepo
}

// NewQuestionService creates a new question service
func NewQuestionService(formRepo repository.FormRepo, questionRepo repository.QuestionRepo) *QuestionService {
	return &QuestionService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
	}
}

// Create adds a question to a form
func (s *QuestionService) Create(ctx context.Context, ownerID string, question *model.Question) (string, error) {
	if err := s.checkOwnership(ctx, ownerID, question.FormID); err != nil {
		return "", err
	}
	if err := s.checkAuthoring(ctx, question); err != nil {
		return "", err
	}

	if question.ID == "" {
		question.ID = uuid.New().String()
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return "", err
	}
	return question.ID, nil
}

// Update replaces an existing question
func (s *QuestionService) Update(ctx context.Context, ownerID string, question *model.Question) error {
	existing, err := s.questionRepo.GetByID(ctx, question.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrQuestionNotFound
	}
	question.FormID = existing.FormID
	question.CreatedAt = existing.CreatedAt

	if err := s.checkOwnership(ctx, ownerID, question.FormID); err != nil {
		return err
	}
	if err := s.checkAuthoring(ctx, question); err != nil {
		return err
	}
	return s.questionRepo.Update(ctx, question)
}

// Delete removes a question and any reveal rules pointing at it
func (s *QuestionService) Delete(ctx context.Context, ownerID, id string) error {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrQuestionNotFound
	}
	if err := s.checkOwnership(ctx, ownerID, question.FormID); err != nil {
		return err
	}

	if question.ParentRef != nil {
		if parent, err := s.questionRepo.GetByID(ctx, question.ParentRef.QuestionID); err == nil && parent != nil {
			kept := parent.ConditionalChildren[:0]
			for _, rule := range parent.ConditionalChildren {
				if rule.ChildID != id {
					kept = append(kept, rule)
				}
			}
			if len(kept) != len(parent.ConditionalChildren) {
				parent.ConditionalChildren = kept
				if err := s.questionRepo.Update(ctx, parent); err != nil {
					return err
				}
			}
		}
	}

	return s.questionRepo.Delete(ctx, id)
}

// checkAuthoring rejects questions with broken conditional configuration
func (s *QuestionService) checkAuthoring(ctx context.Context, question *model.Question) error {
	if !question.Type.IsSupported() {
		return &SubmissionError{Code: CodeUnsupportedQuestionType, QuestionID: question.ID}
	}
	if err := ValidateConditionalConfig(question); err != nil {
		return err
	}
	if question.ParentRef != nil {
		parent, err := s.questionRepo.GetByID(ctx, question.ParentRef.QuestionID)
		if err != nil {
			return err
		}
		// Unknown parent is tolerated (the orderer appends orphans), but a
		// parent in another form is not.
		if parent != nil && parent.FormID != question.FormID {
			return &SubmissionError{
				Code:       CodeConditionalConfig,
				QuestionID: question.ID,
				Detail:     "parent question belongs to a different form",
			}
		}
	}
	return nil
}

func (s *QuestionService) checkOwnership(ctx context.Context, ownerID, formID string) error {
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
