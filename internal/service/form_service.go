package service

import (
	"context"

	"formforge/internal/model"
	"formforge/internal/repository"
)

// FormService handles form CRUD and form-level validation
type FormService struct {
	formRepo     repository.FormRepo
	questionRepo repository.QuestionRepo
	validation   *ContentValidationService
}

// NewFormService creates a new form service
func NewFormService(formRepo repository.FormRepo, questionRepo repository.QuestionRepo, validation *ContentValidationService) *FormService {
	return &FormService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		validation:   validation,
	}
}

// Create creates a new form
func (s *FormService) Create(ctx context.Context, form *model.Form) (string, error) {
	if form.Type == "" {
		form.Type = model.FormTypeNormal
	}
	return s.formRepo.Create(ctx, form)
}

// GetByID retrieves a form by ID
func (s *FormService) GetByID(ctx context.Context, id string) (*model.Form, error) {
	return s.formRepo.GetByID(ctx, id)
}

// GetByOwnerID retrieves all forms of an owner
func (s *FormService) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.Form, error) {
	return s.formRepo.GetByOwnerID(ctx, ownerID)
}

// Update updates an existing form after an ownership check
func (s *FormService) Update(ctx context.Context, form *model.Form) error {
	existing, err := s.formRepo.GetByID(ctx, form.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrFormNotFound
	}
	if existing.OwnerID != form.OwnerID {
		return ErrNotFormOwner
	}
	return s.formRepo.Update(ctx, form)
}

// Delete deletes a form together with its questions
func (s *FormService) Delete(ctx context.Context, ownerID, id string) error {
	existing, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrFormNotFound
	}
	if existing.OwnerID != ownerID {
		return ErrNotFormOwner
	}
	if err := s.questionRepo.DeleteByFormID(ctx, id); err != nil {
		return err
	}
	return s.formRepo.Delete(ctx, id)
}

// OrderedContent returns the form's questions in display order. When
// includeKeys is false the answer keys are stripped for respondent-facing
// reads.
func (s *FormService) OrderedContent(ctx context.Context, formID string, includeKeys bool) ([]model.Question, error) {
	questions, err := s.questionRepo.GetByFormID(ctx, formID)
	if err != nil {
		return nil, err
	}
	ordered := OrderQuestions(questions)
	if !includeKeys {
		for i := range ordered {
			ordered[i].AnswerKey = nil
		}
	}
	return ordered, nil
}

// Validate produces the authoring-time validation report for a form
func (s *FormService) Validate(ctx context.Context, ownerID, formID string) (*model.FormReport, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	if form.OwnerID != ownerID {
		return nil, ErrNotFormOwner
	}

	questions, err := s.questionRepo.GetByFormID(ctx, formID)
	if err != nil {
		return nil, err
	}

	report := s.validation.ValidateForm(form, questions)
	return &report, nil
}
