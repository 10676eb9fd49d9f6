package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sam-zarila/essa-admin/configs"
	"github.com/sam-zarila/essa-admin/internal/pkg/consts"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

func performRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(configs.ADMIN_USER_HEADER, "alice")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loanTestRouter(service *MockLoanAdminService, dashboard *MockDashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewLoanHandler(service, dashboard)
	r.GET("/api/loans", h.List)
	r.GET("/api/loans/:id", h.ByID)
	r.GET("/api/loans/:id/audit", h.AuditTrail)
	r.GET("/api/processed", h.Processed)
	r.POST("/api/loans/:id/decision", h.Decision)
	r.POST("/api/loans/:id/payment", h.Payment)
	r.POST("/api/loans/:id/close", h.Close)
	r.POST("/api/processed/:id/consider", h.Consider)
	return r
}

func TestLoanDecisionEndpoint(t *testing.T) {
	service := new(MockLoanAdminService)
	dashboard := new(MockDashboardService)

	service.On("Decide", mock.Anything, "abc", "approve", "alice").
		Return(models.ProcessedLoan{LoanID: "abc", Decision: "approve", DecidedBy: "alice"}, nil)
	dashboard.On("Invalidate", mock.Anything).Return()

	w := performRequest(loanTestRouter(service, dashboard), http.MethodPost, "/api/loans/abc/decision", `{"action":"approve"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var processed models.ProcessedLoan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &processed))
	assert.Equal(t, "abc", processed.LoanID)
	dashboard.AssertCalled(t, "Invalidate", mock.Anything)
}

func TestLoanDecisionRejectsUnknownAction(t *testing.T) {
	service := new(MockLoanAdminService)
	dashboard := new(MockDashboardService)

	w := performRequest(loanTestRouter(service, dashboard), http.MethodPost, "/api/loans/abc/decision", `{"action":"shred"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoanByIDNotFound(t *testing.T) {
	service := new(MockLoanAdminService)
	dashboard := new(MockDashboardService)

	service.On("ByID", mock.Anything, "missing").Return(models.LoanView{}, consts.ErrorLoanNotFound)

	w := performRequest(loanTestRouter(service, dashboard), http.MethodGet, "/api/loans/missing", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ESSA_ADMIN_LOAN_NOT_FOUND", body["code"])
}

func TestLoanBlankIDRejected(t *testing.T) {
	service := new(MockLoanAdminService)
	dashboard := new(MockDashboardService)
	r := loanTestRouter(service, dashboard)

	// A whitespace-only id segment matches the route but names no document.
	w := performRequest(r, http.MethodGet, "/api/loans/%20", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ESSA_ADMIN_VALIDATION_LOAN_ID_INVALID", body["code"])
	service.AssertNotCalled(t, "ByID", mock.Anything, mock.Anything)

	w = performRequest(r, http.MethodPost, "/api/loans/%20/close", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Close", mock.Anything, mock.Anything, mock.Anything)
	dashboard.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestLoanPaymentConflictOnFinishedLoan(t *testing.T) {
	service := new(MockLoanAdminService)
	dashboard := new(MockDashboardService)

	service.On("Payment", mock.Anything, "abc", 500.0, "alice").
		Return(models.LoanView{}, consts.ErrorPaymentOnFinishedLoan)

	w := performRequest(loanTestRouter(service, dashboard), http.MethodPost, "/api/loans/abc/payment", `{"amount":500}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	// A rejected payment leaves the cached dashboard alone.
	dashboard.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestLoanPaymentRequiresPositiveAmount(t *testing.T) {
	service := new(MockLoanAdminService)
	dashboard := new(MockDashboardService)

	w := performRequest(loanTestRouter(service, dashboard), http.MethodPost, "/api/loans/abc/payment", `{"amount":-20}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Payment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoanConsiderEndpoint(t *testing.T) {
	service := new(MockLoanAdminService)
	dashboard := new(MockDashboardService)

	service.On("Consider", mock.Anything, "abc", "alice").
		Return(models.LoanView{Loan: models.Loan{ID: "abc", Status: "pending"}}, nil)
	dashboard.On("Invalidate", mock.Anything).Return()

	w := performRequest(loanTestRouter(service, dashboard), http.MethodPost, "/api/processed/abc/consider", "")

	require.Equal(t, http.StatusOK, w.Code)
	var view models.LoanView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "pending", view.Status)
}

func TestLoanListEndpoint(t *testing.T) {
	service := new(MockLoanAdminService)
	dashboard := new(MockDashboardService)

	service.On("List", mock.Anything).Return([]models.LoanView{
		{Loan: models.Loan{ID: "a"}},
		{Loan: models.Loan{ID: "b"}},
	}, nil)

	w := performRequest(loanTestRouter(service, dashboard), http.MethodGet, "/api/loans", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Loans []models.LoanView `json:"loans"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Loans, 2)
}

func TestLoanAuditTrailEndpoint(t *testing.T) {
	service := new(MockLoanAdminService)
	dashboard := new(MockDashboardService)

	service.On("AuditTrail", mock.Anything, "abc").Return([]models.DecisionAudit{
		{LoanID: "abc", Action: "approve", Actor: "alice"},
	}, nil)

	w := performRequest(loanTestRouter(service, dashboard), http.MethodGet, "/api/loans/abc/audit", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Audit []models.DecisionAudit `json:"audit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Audit, 1)
	assert.Equal(t, "approve", body.Audit[0].Action)
}
