package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"glowbook/middleware"
	"glowbook/models"
	"glowbook/services/booking"
)

// stubBookingService returns canned results so the handler's mapping of
// service outcomes onto HTTP statuses can be tested in isolation.
type stubBookingService struct {
	booking      *models.Booking
	availability *models.DayAvailability
	bookings     []models.Booking
	services     []models.Service
	err          error
}

func (s *stubBookingService) CreateBooking(context.Context, string, models.CreateBookingInput) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubBookingService) CancelBooking(context.Context, string, string) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubBookingService) GetBooking(context.Context, string, string) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubBookingService) ListBookings(context.Context, string) ([]models.Booking, error) {
	return s.bookings, s.err
}

func (s *stubBookingService) GetDayAvailability(context.Context, models.AvailabilityQuery) (*models.DayAvailability, error) {
	return s.availability, s.err
}

func (s *stubBookingService) ListVendorServices(context.Context, string) ([]models.Service, error) {
	return s.services, s.err
}

// authAs injects the authenticated customer the way the JWT middleware does.
func authAs(customerID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if customerID != "" {
			c.Set(middleware.CustomerIDKey, customerID)
		}
		c.Next()
	}
}

func newTestRouter(svc booking.BookingService, customerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(svc, zap.NewNop())

	r := gin.New()
	r.GET("/api/availability", h.GetAvailability)
	r.GET("/api/vendors/:id/services", h.ListVendorServices)
	grp := r.Group("/api/bookings", authAs(customerID))
	grp.POST("", h.CreateBooking)
	grp.GET("", h.ListBookings)
	grp.GET("/:id", h.GetBooking)
	grp.PATCH("/:id/cancel", h.CancelBooking)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func errorCode(t *testing.T, parsed map[string]interface{}) string {
	t.Helper()
	errObj, ok := parsed["error"].(map[string]interface{})
	require.True(t, ok, "expected an error envelope, got %v", parsed)
	code, _ := errObj["code"].(string)
	return code
}

const validCreateBody = `{"serviceId":"svc-cut","datetime":"2026-03-02T10:00:00Z"}`

func TestCreateBookingCreated(t *testing.T) {
	created := &models.Booking{
		ID:            "bk-1",
		Start:         time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		TotalPrice:    45,
		StaffID:       "staff-1",
	}
	r := newTestRouter(&stubBookingService{booking: created}, "cust-1")

	w, parsed := doJSON(t, r, http.MethodPost, "/api/bookings", validCreateBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "bk-1", parsed["id"])
	assert.Equal(t, true, parsed["success"])
	bookingObj, ok := parsed["booking"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "pending", bookingObj["status"])
	assert.Equal(t, "staff-1", bookingObj["staffId"])
}

func TestCreateBookingUnauthenticated(t *testing.T) {
	r := newTestRouter(&stubBookingService{}, "")

	w, parsed := doJSON(t, r, http.MethodPost, "/api/bookings", validCreateBody)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, parsed))
}

func TestCreateBookingMalformedBody(t *testing.T) {
	r := newTestRouter(&stubBookingService{}, "cust-1")

	w, parsed := doJSON(t, r, http.MethodPost, "/api/bookings", `{"datetime":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, booking.CodeValidation, errorCode(t, parsed))
}

func TestCreateBookingMissingRequiredFields(t *testing.T) {
	r := newTestRouter(&stubBookingService{}, "cust-1")

	w, parsed := doJSON(t, r, http.MethodPost, "/api/bookings", `{"serviceId":"svc-cut"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, booking.CodeValidation, errorCode(t, parsed))
}

func TestErrorCodeStatusMapping(t *testing.T) {
	tests := []struct {
		code       string
		wantStatus int
	}{
		{booking.CodeValidation, http.StatusBadRequest},
		{booking.CodeTimeConflict, http.StatusBadRequest},
		{booking.CodeNoStaffAvailable, http.StatusBadRequest},
		{booking.CodeVendorMismatch, http.StatusBadRequest},
		{booking.CodeStaffServiceMismatch, http.StatusBadRequest},
		{booking.CodeCancellationWindow, http.StatusBadRequest},
		{booking.CodeServiceNotFound, http.StatusNotFound},
		{booking.CodeStaffNotFound, http.StatusNotFound},
		{booking.CodeBookingNotFound, http.StatusNotFound},
		{booking.CodeNotBookingOwner, http.StatusForbidden},
		{booking.CodeAlreadyFinalized, http.StatusConflict},
		{booking.CodeStorageUnavailable, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			svc := &stubBookingService{err: booking.NewError(tt.code, "rejected")}
			r := newTestRouter(svc, "cust-1")

			w, parsed := doJSON(t, r, http.MethodPost, "/api/bookings", validCreateBody)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.code, errorCode(t, parsed))
		})
	}
}

func TestUnexpectedErrorIsOpaque500(t *testing.T) {
	svc := &stubBookingService{err: context.DeadlineExceeded}
	r := newTestRouter(svc, "cust-1")

	w, parsed := doJSON(t, r, http.MethodPost, "/api/bookings", validCreateBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, parsed))
	assert.NotContains(t, w.Body.String(), "deadline")
}

func TestCancelBookingOK(t *testing.T) {
	cancelled := &models.Booking{
		ID:            "bk-1",
		Status:        models.BookingStatusCancelled,
		PaymentStatus: models.PaymentStatusRefundPending,
	}
	r := newTestRouter(&stubBookingService{booking: cancelled}, "cust-1")

	w, parsed := doJSON(t, r, http.MethodPatch, "/api/bookings/bk-1/cancel", "")

	assert.Equal(t, http.StatusOK, w.Code)
	bookingObj, ok := parsed["booking"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "cancelled", bookingObj["status"])
	assert.Equal(t, "refund_pending", bookingObj["paymentStatus"])
}

func TestCancelBookingUnauthenticated(t *testing.T) {
	r := newTestRouter(&stubBookingService{}, "")

	w, _ := doJSON(t, r, http.MethodPatch, "/api/bookings/bk-1/cancel", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetBookingNotOwner(t *testing.T) {
	svc := &stubBookingService{err: booking.NewError(booking.CodeNotBookingOwner, "not yours")}
	r := newTestRouter(svc, "cust-1")

	w, parsed := doJSON(t, r, http.MethodGet, "/api/bookings/bk-1", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, booking.CodeNotBookingOwner, errorCode(t, parsed))
}

func TestListBookingsOK(t *testing.T) {
	svc := &stubBookingService{bookings: []models.Booking{{ID: "bk-1"}, {ID: "bk-2"}}}
	r := newTestRouter(svc, "cust-1")

	w, parsed := doJSON(t, r, http.MethodGet, "/api/bookings", "")

	assert.Equal(t, http.StatusOK, w.Code)
	list, ok := parsed["bookings"].([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestGetAvailabilityOK(t *testing.T) {
	svc := &stubBookingService{availability: &models.DayAvailability{
		IsAvailable:    true,
		AvailableSlots: []string{"09:00", "09:30"},
	}}
	r := newTestRouter(svc, "")

	w, parsed := doJSON(t, r, http.MethodGet, "/api/availability?staffId=staff-1&date=2026-03-02&duration=60", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, parsed["isAvailable"])
	slots, ok := parsed["availableSlots"].([]interface{})
	require.True(t, ok)
	assert.Len(t, slots, 2)
}

func TestListVendorServicesOK(t *testing.T) {
	svc := &stubBookingService{services: []models.Service{
		{ID: "svc-cut", Name: "Haircut", Price: 45, DurationMinutes: 60, Active: true},
	}}
	r := newTestRouter(svc, "")

	w, parsed := doJSON(t, r, http.MethodGet, "/api/vendors/vendor-1/services", "")

	assert.Equal(t, http.StatusOK, w.Code)
	list, ok := parsed["services"].([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 1)
}

func TestListVendorServicesUnknownVendor(t *testing.T) {
	svc := &stubBookingService{err: booking.NewError(booking.CodeVendorNotFound, "no such vendor")}
	r := newTestRouter(svc, "")

	w, parsed := doJSON(t, r, http.MethodGet, "/api/vendors/vendor-ghost/services", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, booking.CodeVendorNotFound, errorCode(t, parsed))
}

func TestGetAvailabilityMissingParams(t *testing.T) {
	r := newTestRouter(&stubBookingService{}, "")

	w, parsed := doJSON(t, r, http.MethodGet, "/api/availability?staffId=staff-1", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, booking.CodeValidation, errorCode(t, parsed))
}
