package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/nurpe/fleet-reports/internal/export"
	"github.com/nurpe/fleet-reports/internal/model"
)

type Renderer interface {
	Render(format export.Format, table model.Table) ([]byte, error)
}

// Archive keeps a copy of rendered exports and returns the key it stored
// them under.
type Archive interface {
	Store(ctx context.Context, key, contentType string, content []byte) (string, error)
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
	Location    string
}

func (s *ReportService) ExportLoads(ctx context.Context, q LoadReportQuery, format export.Format) (*ExportResult, error) {
	r, err := s.LoadReport(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, export.LoadsTable(r), format)
}

func (s *ReportService) ExportDrivers(ctx context.Context, q DriverReportQuery, format export.Format) (*ExportResult, error) {
	r, err := s.DriverReport(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, export.DriversTable(r), format)
}

func (s *ReportService) ExportFinancial(ctx context.Context, q FinancialReportQuery, format export.Format) (*ExportResult, error) {
	r, err := s.FinancialReport(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, export.FinancialTable(r), format)
}

func (s *ReportService) ExportInvoices(ctx context.Context, q InvoiceReportQuery, format export.Format) (*ExportResult, error) {
	r, err := s.InvoiceReport(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, export.InvoicesTable(r), format)
}

func (s *ReportService) ExportDashboard(ctx context.Context, q DashboardQuery, format export.Format) (*ExportResult, error) {
	r, err := s.Dashboard(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, export.DashboardTable(r), format)
}

func (s *ReportService) ExportCashFlow(ctx context.Context, q CashFlowQuery, format export.Format) (*ExportResult, error) {
	r, err := s.CashFlow(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, export.CashFlowTable(r), format)
}

func (s *ReportService) render(ctx context.Context, table model.Table, format export.Format) (*ExportResult, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("%w: export is not configured", ErrAggregation)
	}
	content, err := s.renderer.Render(format, table)
	if err != nil {
		return nil, aggregationError(table.Title+" export", err)
	}

	now := s.now()
	result := &ExportResult{
		FileName:    buildFileName(table.Name, format, now),
		ContentType: format.ContentType(),
		Content:     content,
	}

	if s.archive != nil {
		key := path.Join("exports", now.Format("2006"), now.Format("01"), result.FileName)
		location, err := s.archive.Store(ctx, key, result.ContentType, content)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to archive export")
		} else {
			result.Location = location
		}
	}
	return result, nil
}

func buildFileName(base string, format export.Format, at time.Time) string {
	name := sanitizeFileName(base)
	if name == "" {
		name = "report"
	}
	return fmt.Sprintf("%s-%s.%s", name, at.Format("20060102150405"), format.Extension())
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
