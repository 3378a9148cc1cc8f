package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripforge/flightbooking/internal/catalog"
	"github.com/tripforge/flightbooking/internal/domain"
	"github.com/tripforge/flightbooking/internal/repository"
	"github.com/tripforge/flightbooking/internal/service/booking"
	"github.com/tripforge/flightbooking/internal/service/flights"
	"github.com/tripforge/flightbooking/internal/service/payments"
	"github.com/tripforge/flightbooking/internal/workflow"
)

func newWorkflowRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	flightRepo := repository.NewMemFlightRepository(catalog.Flights())
	flightSvc := flights.NewFlightService(flightRepo, catalog.Airports(), catalog.Airlines())
	bookingSvc := booking.NewBookingService(repository.NewMemBookingRepository(), payments.NewMockProcessor(), slog.Default())

	router := gin.New()
	NewWorkflowHandler(flightSvc, bookingSvc).Register(router.Group("/workflows"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, "POST", "/workflows/", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestWorkflowHandler_SessionLifecycle(t *testing.T) {
	router := newWorkflowRouter(t)
	id := createSession(t, router)

	w := doJSON(t, router, "GET", "/workflows/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var snap workflow.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, workflow.StateSearch, snap.State)

	w = doJSON(t, router, "DELETE", "/workflows/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, "GET", "/workflows/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkflowHandler_UnknownSession(t *testing.T) {
	router := newWorkflowRouter(t)

	w := doJSON(t, router, "POST", "/workflows/nope/search", domain.SearchCriteria{
		Origin: "JFK", Destination: "LAX", DepartureDate: "2024-12-15",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkflowHandler_SearchValidation(t *testing.T) {
	router := newWorkflowRouter(t)
	id := createSession(t, router)

	w := doJSON(t, router, "POST", "/workflows/"+id+"/search", domain.SearchCriteria{Origin: "JFK"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkflowHandler_FullBookingFlow(t *testing.T) {
	router := newWorkflowRouter(t)
	id := createSession(t, router)
	base := "/workflows/" + id

	w := doJSON(t, router, "POST", base+"/search", domain.SearchCriteria{
		Origin: "JFK", Destination: "LAX", DepartureDate: "2024-12-15",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var snap workflow.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, workflow.StateResults, snap.State)
	assert.Len(t, snap.Results, 5)

	w = doJSON(t, router, "POST", base+"/filter", domain.RefinementFilter{Stops: domain.StopsNonstop})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Len(t, snap.Results, 3)

	w = doJSON(t, router, "POST", base+"/sort", gin.H{"sortBy": "departure"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Results, 3)
	assert.Equal(t, "fl_001", snap.Results[0].ID)

	w = doJSON(t, router, "POST", base+"/select", gin.H{"offerId": "fl_001"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, workflow.StatePayment, snap.State)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "fl_001", snap.Selected.ID)

	w = doJSON(t, router, "POST", base+"/payment", domain.PaymentDetails{
		CardNumber:     "4242 4242 4242 4242",
		CardholderName: "John Doe",
		Expiry:         "12/26",
		CVV:            "123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Delta Airlines", created.Provider)
	assert.Equal(t, float64(489), created.Price)
	assert.NotEmpty(t, created.ConfirmationNumber)

	w = doJSON(t, router, "GET", base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, workflow.StateConfirmed, snap.State)
}

func TestWorkflowHandler_SelectOutsideResults(t *testing.T) {
	router := newWorkflowRouter(t)
	id := createSession(t, router)

	w := doJSON(t, router, "POST", "/workflows/"+id+"/select", gin.H{"offerId": "fl_001"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWorkflowHandler_BackFromPayment(t *testing.T) {
	router := newWorkflowRouter(t)
	id := createSession(t, router)
	base := "/workflows/" + id

	w := doJSON(t, router, "POST", base+"/search", domain.SearchCriteria{
		Origin: "JFK", Destination: "LAX", DepartureDate: "2024-12-15",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", base+"/select", gin.H{"offerId": "fl_001"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", base+"/back", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap workflow.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, workflow.StateResults, snap.State)
	assert.Nil(t, snap.Selected)
}

func TestWorkflowHandler_DeclinedPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	flightRepo := repository.NewMemFlightRepository(catalog.Flights())
	flightSvc := flights.NewFlightService(flightRepo, catalog.Airports(), catalog.Airlines())
	bookingSvc := booking.NewBookingService(
		repository.NewMemBookingRepository(),
		payments.NewMockProcessor(payments.WithDeclineSuffix("0000")),
		slog.Default(),
	)

	router := gin.New()
	NewWorkflowHandler(flightSvc, bookingSvc).Register(router.Group("/workflows"))

	id := createSession(t, router)
	base := "/workflows/" + id

	w := doJSON(t, router, "POST", base+"/search", domain.SearchCriteria{
		Origin: "JFK", Destination: "LAX", DepartureDate: "2024-12-15",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "POST", base+"/select", gin.H{"offerId": "fl_001"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", base+"/payment", domain.PaymentDetails{
		CardNumber:     "4242 4242 4242 0000",
		CardholderName: "John Doe",
		Expiry:         "12/26",
		CVV:            "123",
	})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	// Still in the payment state, free to retry.
	var snap workflow.Snapshot
	w = doJSON(t, router, "GET", base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, workflow.StatePayment, snap.State)
}
