package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eduardoceto/waste-logs-service/internal/material"
	"github.com/eduardoceto/waste-logs-service/internal/model"
	"github.com/eduardoceto/waste-logs-service/internal/query"
)

type FileResult struct {
	FileName string
	Content  []byte
}

type ExportExcelInput struct {
	Principal model.Principal
	Material  string
	From      *time.Time
	To        *time.Time
}

// ExportExcel renders every log of one material within the date range into
// that material's regulatory template. The single-material filter happens
// here; the renderer's contract assumes it.
func (s *DisposalService) ExportExcel(ctx context.Context, input ExportExcelInput) (*FileResult, error) {
	mt := model.MaterialType(strings.ToLower(strings.TrimSpace(input.Material)))
	if !material.IsKnown(mt) {
		return nil, fmt.Errorf("%w: unknown material %q", ErrInvalidInput, input.Material)
	}

	logs, err := s.List(ctx, ListDisposalsInput{
		Principal: input.Principal,
		From:      input.From,
		To:        input.To,
		Material:  string(mt),
		SortField: query.SortByDate,
		SortAsc:   true,
	})
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoRecords
	}

	content, err := s.excel.Generate(mt, logs)
	if err != nil {
		return nil, err
	}

	return &FileResult{
		FileName: excelFileName(mt, input.From, input.To),
		Content:  content,
	}, nil
}

func (s *DisposalService) ExportPDF(ctx context.Context, principal model.Principal, id uuid.UUID) (*FileResult, error) {
	log, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(*log)
	if err != nil {
		return nil, err
	}

	return &FileResult{
		FileName: fmt.Sprintf("registro-%s.pdf", log.Folio),
		Content:  content,
	}, nil
}

func excelFileName(mt model.MaterialType, from, to *time.Time) string {
	name := fmt.Sprintf("residuos-%s", mt)
	if from != nil && to != nil {
		name += fmt.Sprintf("-%s-%s", from.Format("20060102"), to.Format("20060102"))
	}
	return name + ".xlsx"
}
