package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/fleet-reports/internal/export"
	"github.com/nurpe/fleet-reports/internal/repository"
)

type recordingArchive struct {
	keys []string
	err  error
}

func (a *recordingArchive) Store(_ context.Context, key, _ string, _ []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.keys = append(a.keys, key)
	return "s3://exports/" + key, nil
}

func TestExportLoadsCSV(t *testing.T) {
	svc := newService(repository.NewMemoryStore(newFleet().seed))

	result, err := svc.ExportLoads(context.Background(), LoadReportQuery{}, export.FormatCSV)

	require.NoError(t, err)
	assert.Equal(t, "load-report-20240315120000.csv", result.FileName)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Contains(t, string(result.Content), "LOAD DETAILS")
	assert.Empty(t, result.Location)
}

func TestExportArchivesWhenConfigured(t *testing.T) {
	archive := &recordingArchive{}
	svc := newService(repository.NewMemoryStore(newFleet().seed)).WithArchive(archive)

	result, err := svc.ExportCashFlow(context.Background(), CashFlowQuery{StartDate: at(3, 1, 0), EndDate: at(3, 31, 0)}, export.FormatCSV)

	require.NoError(t, err)
	assert.Equal(t, "cash-flow-report-20240315120000.csv", result.FileName)
	assert.Equal(t, []string{"exports/2024/03/cash-flow-report-20240315120000.csv"}, archive.keys)
	assert.Equal(t, "s3://exports/exports/2024/03/cash-flow-report-20240315120000.csv", result.Location)
}

func TestExportInvoicesCSV(t *testing.T) {
	svc := newService(repository.NewMemoryStore(newFleet().seed))

	result, err := svc.ExportInvoices(context.Background(), InvoiceReportQuery{Search: "acme"}, export.FormatCSV)

	require.NoError(t, err)
	assert.Equal(t, "invoice-report-20240315120000.csv", result.FileName)
	assert.Contains(t, string(result.Content), "Acme")
	assert.Contains(t, string(result.Content), "INVOICES")
}

func TestExportDOCXNeedsGenerator(t *testing.T) {
	svc := newService(repository.NewMemoryStore(newFleet().seed))

	_, err := svc.ExportCashFlow(context.Background(), CashFlowQuery{StartDate: at(3, 1, 0), EndDate: at(3, 31, 0)}, export.FormatDOCX)

	assert.ErrorIs(t, err, ErrAggregation)
}

func TestExportSurvivesArchiveFailure(t *testing.T) {
	svc := newService(repository.NewMemoryStore(newFleet().seed)).WithArchive(&recordingArchive{err: errors.New("bucket gone")})

	result, err := svc.ExportDashboard(context.Background(), DashboardQuery{}, export.FormatCSV)

	require.NoError(t, err)
	assert.NotEmpty(t, result.Content)
	assert.Empty(t, result.Location)
}

func TestExportPropagatesReportErrors(t *testing.T) {
	svc := newService(repository.NewMemoryStore(newFleet().seed))

	_, err := svc.ExportFinancial(context.Background(), FinancialReportQuery{}, export.FormatCSV)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ExportDrivers(context.Background(), DriverReportQuery{}, export.FormatXLSX)
	assert.ErrorIs(t, err, ErrAggregation)
}

func TestBuildFileName(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "load-report-20240102030405.pdf", buildFileName("load-report", export.FormatPDF, at))
	assert.Equal(t, "Q1-drivers-20240102030405.xlsx", buildFileName("Q1 drivers!", export.FormatXLSX, at))
	assert.Equal(t, "report-20240102030405.csv", buildFileName("***", export.FormatCSV, at))
}
