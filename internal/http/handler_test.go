package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/fleet-reports/internal/export"
	"github.com/nurpe/fleet-reports/internal/filter"
	"github.com/nurpe/fleet-reports/internal/metrics"
	"github.com/nurpe/fleet-reports/internal/model"
	"github.com/nurpe/fleet-reports/internal/report"
	"github.com/nurpe/fleet-reports/internal/repository"
	"github.com/nurpe/fleet-reports/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func testSeed() (repository.Seed, uuid.UUID) {
	driverID, truckID := uuid.New(), uuid.New()
	delivered := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	return repository.Seed{
		Employees: []model.Employee{{ID: driverID, FirstName: "Ann", LastName: "Lee", Roles: []string{"Driver"}}},
		Trucks:    []model.Truck{{ID: truckID, Number: "T-1", MainDriverID: &driverID}},
		Loads: []model.Load{
			{
				ID: uuid.New(), Number: 1, Name: "Steel", Type: model.LoadTypeGeneral, Status: model.LoadStatusDelivered,
				DeliveryCost:   model.Money{Amount: decimal.NewFromInt(1000), Currency: "USD"},
				DispatchedDate: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), DeliveryDate: &delivered,
				AssignedTruckID: &truckID,
			},
			{
				ID: uuid.New(), Number: 2, Name: "Lumber", Type: model.LoadTypeGeneral, Status: model.LoadStatusDispatched,
				DeliveryCost:   model.Money{Amount: decimal.NewFromInt(500), Currency: "USD"},
				DispatchedDate: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
			},
		},
	}, driverID
}

func newTestRouter(source service.DataSource) *gin.Engine {
	svc := service.NewReportService(
		source,
		report.NewEngine(metrics.DefaultPolicy()),
		export.NewRenderer(nil, nil, nil),
		service.Options{},
		zerolog.Nop(),
	).WithClock(func() time.Time { return testNow })
	return NewRouter(NewHandler(svc, zerolog.Nop()), zerolog.Nop(), "test", []string{"*"})
}

func perform(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

type brokenSource struct {
	*repository.MemoryStore
}

func (brokenSource) FetchLoads(context.Context, *filter.Spec[model.Load]) ([]model.Load, error) {
	return nil, errors.New("connection reset")
}

func TestHealth(t *testing.T) {
	seed, _ := testSeed()
	w := perform(newTestRouter(repository.NewMemoryStore(seed)), "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestLoadReportEndpoint(t *testing.T) {
	seed, _ := testSeed()
	router := newTestRouter(repository.NewMemoryStore(seed))

	w := perform(router, "/reports/loads?status=delivered&start_date=2024-03-01&end_date=2024-03-31T00:00:00")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Summary struct {
			TotalLoads int `json:"total_loads"`
		} `json:"summary"`
		Loads struct {
			Items []struct {
				Number             int64  `json:"number"`
				AssignedDriverName string `json:"assigned_driver_name"`
			} `json:"items"`
			TotalCount int `json:"total_count"`
		} `json:"loads"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Summary.TotalLoads)
	require.Len(t, body.Loads.Items, 1)
	assert.Equal(t, int64(1), body.Loads.Items[0].Number)
	assert.Equal(t, "Ann Lee", body.Loads.Items[0].AssignedDriverName)
}

func TestBadQueryParameters(t *testing.T) {
	seed, _ := testSeed()
	router := newTestRouter(repository.NewMemoryStore(seed))

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "uuid", target: "/reports/loads?customer_id=nope", want: "invalid customer_id"},
		{name: "date", target: "/reports/loads?start_date=03/01/2024", want: "invalid start_date"},
		{name: "number", target: "/reports/drivers?page=two", want: `invalid input: strconv.ParseInt: parsing "two"`},
		{name: "decimal", target: "/reports/loads?min_delivery_cost=cheap", want: "invalid min_delivery_cost"},
		{name: "bool", target: "/reports/drivers?include_recent_loads=maybe", want: `parsing "maybe"`},
		{name: "invoice window", target: "/reports/financials?end_date=yesterday", want: "invalid end_date"},
		{name: "inverted range", target: "/reports/dashboard?start_date=2024-03-10&end_date=2024-03-01", want: "end_date must be after"},
		{name: "missing range", target: "/reports/financial?start_date=2024-03-01", want: "start_date and end_date are required"},
		{name: "driver id", target: "/reports/drivers/42", want: "invalid driver id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, tt.target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeError(t, w), tt.want)
		})
	}
}

func TestLoadSearchEndpoint(t *testing.T) {
	seed, _ := testSeed()
	router := newTestRouter(repository.NewMemoryStore(seed))

	w := perform(router, "/reports/loads?search=LUMB&page=&page_size=5")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Loads struct {
			Items []struct {
				Name string `json:"name"`
			} `json:"items"`
			Size int `json:"size"`
		} `json:"loads"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Loads.Items, 1)
	assert.Equal(t, "Lumber", body.Loads.Items[0].Name)
	assert.Equal(t, 5, body.Loads.Size)
}

func TestInvoiceReportEndpoint(t *testing.T) {
	seed, _ := testSeed()
	customerID := uuid.New()
	seed.Customers = []model.Customer{{ID: customerID, Name: "Acme Freight"}}
	seed.Invoices = []model.Invoice{
		{ID: uuid.New(), Number: 10, CustomerID: &customerID, Status: model.InvoiceStatusIssued,
			Total:     model.Money{Amount: decimal.NewFromInt(800), Currency: "USD"},
			CreatedAt: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
			Payments: []model.Payment{{ID: uuid.New(), Amount: model.Money{Amount: decimal.NewFromInt(300), Currency: "USD"},
				Status: model.PaymentStatusCompleted, CreatedAt: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)}}},
		{ID: uuid.New(), Number: 11, Status: model.InvoiceStatusPaid,
			Total:     model.Money{Amount: decimal.NewFromInt(200), Currency: "USD"},
			CreatedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	router := newTestRouter(repository.NewMemoryStore(seed))

	w := perform(router, "/reports/financials?search=freight&status=issued&start_date=2024-03-01")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		TotalInvoiced decimal.Decimal `json:"total_invoiced"`
		TotalDue      decimal.Decimal `json:"total_due"`
		Invoices      struct {
			Items []struct {
				InvoiceNumber int64  `json:"invoice_number"`
				CustomerName  string `json:"customer_name"`
			} `json:"items"`
		} `json:"invoices"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, decimal.NewFromInt(800).Equal(body.TotalInvoiced))
	assert.True(t, decimal.NewFromInt(500).Equal(body.TotalDue))
	require.Len(t, body.Invoices.Items, 1)
	assert.Equal(t, int64(10), body.Invoices.Items[0].InvoiceNumber)
	assert.Equal(t, "Acme Freight", body.Invoices.Items[0].CustomerName)

	exported := perform(router, "/reports/financials/export?format=csv")
	require.Equal(t, http.StatusOK, exported.Code, exported.Body.String())
	assert.Contains(t, exported.Header().Get("Content-Disposition"), "invoice-report-")
}

func TestDriverEndpoint(t *testing.T) {
	seed, driverID := testSeed()
	router := newTestRouter(repository.NewMemoryStore(seed))

	w := perform(router, "/reports/drivers/"+driverID.String())
	require.Equal(t, http.StatusOK, w.Code)
	var row struct {
		FullName            string `json:"full_name"`
		TotalLoadsCompleted int    `json:"total_loads_completed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &row))
	assert.Equal(t, "Ann Lee", row.FullName)
	assert.Equal(t, 1, row.TotalLoadsCompleted)

	w = perform(router, "/reports/drivers/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAggregationFailureIsReported(t *testing.T) {
	seed, _ := testSeed()
	router := newTestRouter(brokenSource{repository.NewMemoryStore(seed)})

	w := perform(router, "/reports/loads")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeError(t, w), "error generating load report: connection reset")
}

func TestDashboardDegradesInsteadOfFailing(t *testing.T) {
	seed, _ := testSeed()
	router := newTestRouter(brokenSource{repository.NewMemoryStore(seed)})

	w := perform(router, "/reports/dashboard")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Degraded []string `json:"degraded"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"loads", "drivers", "financials"}, body.Degraded)
}

func TestExportEndpoint(t *testing.T) {
	seed, _ := testSeed()
	router := newTestRouter(repository.NewMemoryStore(seed))

	w := perform(router, "/reports/loads/export?format=csv")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="load-report-20240315120000.csv"`, w.Header().Get("Content-Disposition"))
	assert.Empty(t, w.Header().Get("X-Export-Location"))
	assert.Contains(t, w.Body.String(), "Load Report")
}

func TestExportWithoutGeneratorFails(t *testing.T) {
	seed, _ := testSeed()
	router := newTestRouter(repository.NewMemoryStore(seed))

	w := perform(router, "/reports/cash-flow/export?format=pdf&start_date=2024-03-01&end_date=2024-03-31")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeError(t, w), "no pdf generator configured")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{raw: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{raw: "2024-03-01T10:30:00", want: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{raw: " 2024-03-01T10:30:00Z ", want: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.True(t, tt.want.Equal(got), tt.raw)
	}

	_, err := parseDate("")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestCorsConfig(t *testing.T) {
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)
	assert.True(t, corsConfig(nil).AllowAllOrigins)

	cfg := corsConfig([]string{"https://ops.example.com"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://ops.example.com"}, cfg.AllowOrigins)
	assert.Contains(t, cfg.ExposeHeaders, "X-Export-Location")
}

func TestParseLoadReportQuery(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet,
		"/?include_invoice_details=false&min_delivery_cost=12.5&sort_order=asc&page=3&search=acme&customer_id=", nil)

	q, err := parseLoadReportQuery(c)

	require.NoError(t, err)
	require.NotNil(t, q.IncludeInvoiceDetails)
	assert.False(t, *q.IncludeInvoiceDetails)
	require.NotNil(t, q.MinDeliveryCost)
	assert.True(t, decimal.RequireFromString("12.5").Equal(*q.MinDeliveryCost))
	assert.Nil(t, q.MaxDeliveryCost)
	assert.Nil(t, q.CustomerID)
	assert.Nil(t, q.StartDate)
	assert.Equal(t, "acme", q.Search)
	assert.Equal(t, service.Paging{SortOrder: "asc", Page: 3}, q.Paging)
}
