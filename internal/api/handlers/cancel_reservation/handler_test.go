package cancel_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TaxiClass-ReservationService/internal/api/middleware"
	cancelReservation "github.com/m04kA/TaxiClass-ReservationService/internal/usecase/cancel_reservation"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *cancelReservation.Request) (*cancelReservation.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*cancelReservation.Response)
	return resp, args.Error(1)
}

func serve(uc CancelReservationUseCase, body io.Reader) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/reservations/{bookingId}", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/12345", body)
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_CancelledWithoutBody(t *testing.T) {
	cancelledAt := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *cancelReservation.Request) bool {
		return r.UserID == 7 && r.ProviderBookingID == "12345" && r.Reason == ""
	})).Return(&cancelReservation.Response{
		ReservationID:     3,
		ProviderBookingID: "12345",
		Reason:            "Cancelado por el usuario",
		CancelledAt:       cancelledAt,
		Persisted:         true,
	}, nil)

	rec := serve(uc, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body CancelReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "12345", body.BookingID)
	assert.True(t, cancelledAt.Equal(body.CancelledAt))
	uc.AssertExpectations(t)
}

func TestHandle_ReasonPassedThrough(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *cancelReservation.Request) bool {
		return r.Reason == "Cambio de planes"
	})).Return(&cancelReservation.Response{ProviderBookingID: "12345"}, nil)

	rec := serve(uc, strings.NewReader(`{"reason":"Cambio de planes"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"NotFound", cancelReservation.ErrReservationNotFound, http.StatusNotFound},
		{"AlreadyCancelled", cancelReservation.ErrAlreadyCancelled, http.StatusConflict},
		{"PastBooking", cancelReservation.ErrPastBooking, http.StatusBadRequest},
		{"ProviderRejected", fmt.Errorf("%w: status 409", cancelReservation.ErrProviderRejected), http.StatusBadGateway},
		{"ProviderUnavailable", cancelReservation.ErrProviderUnavailable, http.StatusServiceUnavailable},
		{"Internal", cancelReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(uc, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_MalformedBody(t *testing.T) {
	uc := new(mockUseCase)

	rec := serve(uc, strings.NewReader(`{"reason":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
