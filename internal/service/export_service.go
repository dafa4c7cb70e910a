package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"formforge/internal/model"
	"formforge/internal/repository"
)

// ExportService renders a form's responses as an XLSX workbook. Columns
// follow the conditional display order so exported sheets read like the form.
type ExportService struct {
	formRepo     repository.FormRepo
	questionRepo repository.QuestionRepo
	responseRepo repository.ResponseRepo
}

// NewExportService creates a new export service
func NewExportService(formRepo repository.FormRepo, questionRepo repository.QuestionRepo, responseRepo repository.ResponseRepo) *ExportService {
	return &ExportService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		responseRepo: responseRepo,
	}
}

// BuildResponsesXLSX builds the export workbook for a form
func (s *ExportService) BuildResponsesXLSX(ctx context.Context, ownerID, formID string) (*excelize.File, error) {
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
	ordered := OrderQuestions(questions)

	responses, err := s.responseRepo.GetByFormID(ctx, formID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Responses"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		f.Close()
		return nil, err
	}

	headers := []interface{}{"Respondent", "Submitted at", "Total score"}
	for _, q := range ordered {
		headers = append(headers, sanitizeForExcel(q.Title))
	}
	if err := sw.SetRow("A1", headers); err != nil {
		f.Close()
		return nil, err
	}

	for i, r := range responses {
		row := []interface{}{r.RespondentID, r.SubmittedAt.Format("2006-01-02 15:04:05"), r.TotalScore}
		for _, q := range ordered {
			row = append(row, sanitizeForExcel(formatAnswerCell(&q, r)))
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := sw.SetRow(cell, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := sw.Flush(); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// formatAnswerCell renders one answer for the sheet, resolving option indices
// to their labels
func formatAnswerCell(q *model.Question, r *model.Response) string {
	entry := r.EntryFor(q.ID)
	if entry == nil || IsAnswerEmpty(entry.Answer) {
		return ""
	}

	if q.Type.IsChoice() {
		if list, ok := asList(entry.Answer); ok {
			parts := make([]string, 0, len(list))
			for _, item := range list {
				if n, ok := asNumber(item); ok && q.HasOption(int(n)) {
					for _, o := range q.Options {
						if o.Index == int(n) {
							parts = append(parts, o.Label)
							break
						}
					}
					continue
				}
				parts = append(parts, fmt.Sprintf("%v", item))
			}
			return strings.Join(parts, "; ")
		}
	}

	if start, end, ok := rangeBounds(entry.Answer); ok {
		return fmt.Sprintf("%v .. %v", start, end)
	}
	return fmt.Sprintf("%v", entry.Answer)
}

// sanitizeForExcel escapes values that would start a formula in Excel
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
