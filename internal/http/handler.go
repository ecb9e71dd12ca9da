package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/fleet-reports/internal/export"
	"github.com/nurpe/fleet-reports/internal/period"
	"github.com/nurpe/fleet-reports/internal/service"
)

type Handler struct {
	reports *service.ReportService
	log     zerolog.Logger
}

func NewHandler(reports *service.ReportService, log zerolog.Logger) *Handler {
	return &Handler{reports: reports, log: log}
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/healthz", h.health)

	reports := router.Group("/reports")
	reports.GET("/loads", h.loadReport)
	reports.GET("/loads/summary", h.loadSummary)
	reports.GET("/loads/export", h.exportLoads)

	reports.GET("/drivers", h.driverReport)
	reports.GET("/drivers/summary", h.driverSummary)
	reports.GET("/drivers/export", h.exportDrivers)
	reports.GET("/drivers/:id", h.driver)

	reports.GET("/financial", h.financialReport)
	reports.GET("/financial/summary", h.financialSummary)
	reports.GET("/financial/cash-flow", h.cashFlow)
	reports.GET("/financial/export", h.exportFinancial)

	reports.GET("/financials", h.invoiceReport)
	reports.GET("/financials/export", h.exportInvoices)

	reports.GET("/dashboard", h.dashboard)
	reports.GET("/dashboard/export", h.exportDashboard)

	reports.GET("/cash-flow/export", h.exportCashFlow)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) loadReport(c *gin.Context) {
	q, err := parseLoadReportQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.LoadReport(c.Request.Context(), q)
	h.respond(c, result, err)
}

func (h *Handler) loadSummary(c *gin.Context) {
	q, err := parseLoadReportQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.LoadSummary(c.Request.Context(), q.LoadFilter)
	h.respond(c, result, err)
}

func (h *Handler) exportLoads(c *gin.Context) {
	q, err := parseLoadReportQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.ExportLoads(c.Request.Context(), q, parseFormat(c))
	h.sendExport(c, result, err)
}

func (h *Handler) driverReport(c *gin.Context) {
	q, err := parseDriverReportQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.DriverReport(c.Request.Context(), q)
	h.respond(c, result, err)
}

func (h *Handler) driver(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid driver id"})
		return
	}
	q, err := parseDriverReportQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.Driver(c.Request.Context(), id, q)
	h.respond(c, result, err)
}

func (h *Handler) driverSummary(c *gin.Context) {
	q, err := parseDashboardQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.DriverSummary(c.Request.Context(), service.DriverSummaryQuery(q))
	h.respond(c, result, err)
}

func (h *Handler) exportDrivers(c *gin.Context) {
	q, err := parseDriverReportQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.ExportDrivers(c.Request.Context(), q, parseFormat(c))
	h.sendExport(c, result, err)
}

func (h *Handler) financialReport(c *gin.Context) {
	q, err := parseFinancialReportQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.FinancialReport(c.Request.Context(), q)
	h.respond(c, result, err)
}

func (h *Handler) financialSummary(c *gin.Context) {
	q, err := parseDashboardQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.FinancialSummary(c.Request.Context(), service.FinancialSummaryQuery(q))
	h.respond(c, result, err)
}

func (h *Handler) exportFinancial(c *gin.Context) {
	q, err := parseFinancialReportQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.ExportFinancial(c.Request.Context(), q, parseFormat(c))
	h.sendExport(c, result, err)
}

func (h *Handler) cashFlow(c *gin.Context) {
	q, err := parseCashFlowQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.CashFlow(c.Request.Context(), q)
	h.respond(c, result, err)
}

func (h *Handler) exportCashFlow(c *gin.Context) {
	q, err := parseCashFlowQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.ExportCashFlow(c.Request.Context(), q, parseFormat(c))
	h.sendExport(c, result, err)
}

func (h *Handler) invoiceReport(c *gin.Context) {
	q, err := parseInvoiceReportQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.InvoiceReport(c.Request.Context(), q)
	h.respond(c, result, err)
}

func (h *Handler) exportInvoices(c *gin.Context) {
	q, err := parseInvoiceReportQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.ExportInvoices(c.Request.Context(), q, parseFormat(c))
	h.sendExport(c, result, err)
}

func (h *Handler) dashboard(c *gin.Context) {
	q, err := parseDashboardQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.Dashboard(c.Request.Context(), q)
	h.respond(c, result, err)
}

func (h *Handler) exportDashboard(c *gin.Context) {
	q, err := parseDashboardQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.ExportDashboard(c.Request.Context(), q, parseFormat(c))
	h.sendExport(c, result, err)
}

func (h *Handler) respond(c *gin.Context, result any, err error) {
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) sendExport(c *gin.Context, result *service.ExportResult, err error) {
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	if result.Location != "" {
		c.Header("X-Export-Location", result.Location)
	}
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, period.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAggregation):
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("generate report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("generate report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseFormat(c *gin.Context) export.Format {
	return export.ParseFormat(c.Query("format"))
}

func parseLoadReportQuery(c *gin.Context) (service.LoadReportQuery, error) {
	return bindQuery(c, loadReportRequest.query)
}

func parseDriverReportQuery(c *gin.Context) (service.DriverReportQuery, error) {
	return bindQuery(c, driverReportRequest.query)
}

func parseFinancialReportQuery(c *gin.Context) (service.FinancialReportQuery, error) {
	return bindQuery(c, financialReportRequest.query)
}

func parseCashFlowQuery(c *gin.Context) (service.CashFlowQuery, error) {
	return bindQuery(c, cashFlowRequest.query)
}

func parseInvoiceReportQuery(c *gin.Context) (service.InvoiceReportQuery, error) {
	return bindQuery(c, invoiceReportRequest.query)
}

func parseDashboardQuery(c *gin.Context) (service.DashboardQuery, error) {
	return bindQuery(c, func(r DateRange) (service.DashboardQuery, error) {
		start, end, err := r.bounds()
		return service.DashboardQuery{StartDate: start, EndDate: end}, err
	})
}
