package create_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/handlers"
	"github.com/m04kA/TaxiClass-ReservationService/internal/api/middleware"
	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
	createReservation "github.com/m04kA/TaxiClass-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/logger"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createReservation.Response)
	return resp, args.Error(1)
}

const validBody = `{
	"bookingDate": "2026-11-02 10:30",
	"pickupAddress": {"type": "address", "address": "Calle Mayor 1, Madrid", "latitude": 40.4168, "longitude": -3.7038},
	"numberOfPassengers": 2,
	"childSeat": true
}`

func serve(uc CreateReservationUseCase, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0")
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createReservation.Request) bool {
		return r.UserID == 7 &&
			r.Pickup.Type == domain.PlaceAddress &&
			r.NumberOfPassengers == 2 &&
			r.ChildSeat &&
			r.Destination == nil &&
			ptr.Value(r.UserAgent) != ""
	})).Return(&createReservation.Response{
		ReservationID:     11,
		ProviderBookingID: "B-1",
		ServiceID:         ptr.Ptr("S-1"),
		BookingDate:       "2026-11-02T10:30:00",
		Persisted:         true,
		Trace:             &auriga.Trace{TraceID: "trace-1"},
	}, nil)

	rec := serve(uc, validBody, 7)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body CreateReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "B-1", body.BookingID)
	assert.Equal(t, int64(11), body.ReservationID)
	assert.Equal(t, "trace-1", body.TraceID)
	assert.True(t, body.Persisted)
	uc.AssertExpectations(t)
}

func TestHandle_Unauthorized(t *testing.T) {
	uc := new(mockUseCase)

	rec := serve(uc, validBody, 0)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_MalformedBody(t *testing.T) {
	uc := new(mockUseCase)

	rec := serve(uc, `{"bookingDate":"2026-11-02 10:30",`, 7)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_GooglePlaceWithExtraKeys(t *testing.T) {
	body := `{
		"bookingDate": "2026-11-02 10:30",
		"pickupAddress": {
			"type": "address",
			"address": "Passeig de Gràcia 43, Barcelona",
			"latitude": 41.3917,
			"longitude": 2.1649,
			"googlePlace": {
				"name": "Casa Batlló",
				"place_id": "ChIJ2eUgeAK6j4ARbn5u_wAGqWA",
				"formatted_address": "Passeig de Gràcia, 43, 08007 Barcelona, Spain",
				"types": ["tourist_attraction", "point_of_interest"],
				"geometry": {"location": {"lat": 41.3917, "lng": 2.1649}, "viewport": {}},
				"address_components": [
					{"long_name": "43", "short_name": "43", "types": ["street_number"]},
					{"long_name": "Passeig de Gràcia", "short_name": "Pg. de Gràcia", "types": ["route"]},
					{"long_name": "Barcelona", "short_name": "Barcelona", "types": ["locality", "political"]},
					{"long_name": "Spain", "short_name": "ES", "types": ["country", "political"]}
				]
			}
		},
		"numberOfPassengers": 1,
		"clientVersion": "2.4.1"
	}`

	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createReservation.Request) bool {
		gp := r.Pickup.GooglePlace
		return gp != nil &&
			gp.Name == "Casa Batlló" &&
			len(gp.AddressComponents) == 4 &&
			gp.AddressComponents[1].HasType("route")
	})).Return(&createReservation.Response{ProviderBookingID: "B-2", Persisted: true}, nil)

	rec := serve(uc, body, 7)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	rejected := &auriga.RejectedError{
		StatusCode: http.StatusUnprocessableEntity,
		Body:       `{"message":"pickup out of area"}`,
		Parsed:     map[string]interface{}{"message": "pickup out of area"},
	}

	tests := []struct {
		name       string
		resp       *createReservation.Response
		err        error
		wantStatus int
	}{
		{"Validation", nil, fmt.Errorf("%w: pickup is required", createReservation.ErrInvalidInput), http.StatusBadRequest},
		{"UserNotFound", nil, createReservation.ErrUserNotFound, http.StatusNotFound},
		{"ProviderRejected", &createReservation.Response{Trace: &auriga.Trace{TraceID: "trace-9"}},
			fmt.Errorf("%w: %w", createReservation.ErrProviderRejected, rejected), http.StatusBadGateway},
		{"ProviderUnavailable", nil,
			fmt.Errorf("%w: %w", createReservation.ErrProviderUnavailable, &auriga.TransportError{Operation: "create", Err: context.DeadlineExceeded}),
			http.StatusServiceUnavailable},
		{"Internal", nil, fmt.Errorf("%w: boom", createReservation.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(tt.resp, tt.err)

			rec := serve(uc, validBody, 7)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_ProviderRejectedBody(t *testing.T) {
	rejected := &auriga.RejectedError{
		StatusCode: http.StatusUnprocessableEntity,
		Body:       `{"message":"pickup out of area"}`,
		Parsed:     map[string]interface{}{"message": "pickup out of area"},
	}
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(
		&createReservation.Response{Trace: &auriga.Trace{TraceID: "trace-9"}},
		fmt.Errorf("%w: %w", createReservation.ErrProviderRejected, rejected),
	)

	rec := serve(uc, validBody, 7)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body handlers.ProviderErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusUnprocessableEntity, body.ProviderStatus)
	assert.Equal(t, "pickup out of area", body.ProviderMessage)
	assert.Equal(t, "trace-9", body.TraceID)
}
