package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"munidocs/internal/domain"
	"munidocs/internal/export"
	"munidocs/internal/port"
)

const (
	exportPageSize = 500
	maxExportRows  = 10000
)

// UsageReport is the per-agent breakdown of a caller's usage plus totals.
type UsageReport struct {
	Agents []domain.UsageSummary `json:"agentes"`
	Totals domain.UsageSummary   `json:"totales"`
}

// UsageService exposes read-only views of the caller's usage transactions.
type UsageService interface {
	ListTransactions(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.UsageTransaction, int, error)
	Summary(ctx context.Context, ownerID uuid.UUID) (*UsageReport, error)
	Export(ctx context.Context, ownerID uuid.UUID, format domain.ReportFormat) (*ExportedFile, error)
}

type usageService struct {
	usageRepo port.UsageRepository
}

// NewUsageService creates a new UsageService.
func NewUsageService(usageRepo port.UsageRepository) UsageService {
	return &usageService{usageRepo: usageRepo}
}

func (s *usageService) ListTransactions(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.UsageTransaction, int, error) {
	return s.usageRepo.ListByOwner(ctx, ownerID, offset, limit)
}

func (s *usageService) Summary(ctx context.Context, ownerID uuid.UUID) (*UsageReport, error) {
	rows, err := s.usageRepo.SummaryByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	report := &UsageReport{Agents: rows}
	if report.Agents == nil {
		report.Agents = []domain.UsageSummary{}
	}
	for _, r := range rows {
		report.Totals.Calls += r.Calls
		report.Totals.TokensIn += r.TokensIn
		report.Totals.TokensOut += r.TokensOut
		report.Totals.TokensTotal += r.TokensTotal
		report.Totals.CostTotal += r.CostTotal
	}
	return report, nil
}

func (s *usageService) Export(ctx context.Context, ownerID uuid.UUID, format domain.ReportFormat) (*ExportedFile, error) {
	if format != domain.ReportFormatCSV && format != domain.ReportFormatXLSX {
		return nil, domain.ErrUnsupportedFormat
	}

	txs, err := s.allTransactions(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	out := &ExportedFile{Filename: export.BuildFilename("uso_api", string(format))}
	switch format {
	case domain.ReportFormatCSV:
		out.ContentType = "text/csv; charset=utf-8"
		err = export.WriteUsageCSV(&buf, txs)
	case domain.ReportFormatXLSX:
		var report *UsageReport
		if report, err = s.Summary(ctx, ownerID); err != nil {
			return nil, err
		}
		out.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = export.WriteUsageXLSX(&buf, txs, report.Agents)
	}
	if err != nil {
		return nil, fmt.Errorf("usageService.Export: %w", err)
	}
	out.Data = buf.Bytes()
	return out, nil
}

func (s *usageService) allTransactions(ctx context.Context, ownerID uuid.UUID) ([]domain.UsageTransaction, error) {
	var all []domain.UsageTransaction
	for offset := 0; offset < maxExportRows; offset += exportPageSize {
		page, total, err := s.usageRepo.ListByOwner(ctx, ownerID, offset, exportPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize || len(all) >= total {
			break
		}
	}
	return all, nil
}
