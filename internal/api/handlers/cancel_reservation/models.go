package cancel_reservation

import (
	"time"

	cancelReservation "github.com/m04kA/TaxiClass-ReservationService/internal/usecase/cancel_reservation"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/ptr"
)

// CancelReservationRequest HTTP request model; тело необязательно
type CancelReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (r *CancelReservationRequest) ToUseCaseRequest(userID int64, bookingID, ip, userAgent string) *cancelReservation.Request {
	return &cancelReservation.Request{
		UserID:            userID,
		ProviderBookingID: bookingID,
		Reason:            r.Reason,
		IPAddress:         ptr.NonEmpty(ip),
		UserAgent:         ptr.NonEmpty(userAgent),
	}
}

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	BookingID   string    `json:"bookingId"`
	Reason      string    `json:"reason"`
	CancelledAt time.Time `json:"cancelledAt"`
	Persisted   bool      `json:"persisted"`
	TraceID     string    `json:"traceId,omitempty"`
}

func FromUseCaseResponse(resp *cancelReservation.Response) *CancelReservationResponse {
	out := &CancelReservationResponse{
		Success:     true,
		Message:     msgCancelled,
		BookingID:   resp.ProviderBookingID,
		Reason:      resp.Reason,
		CancelledAt: resp.CancelledAt,
		Persisted:   resp.Persisted,
	}
	if resp.Trace != nil {
		out.TraceID = resp.Trace.TraceID
	}
	return out
}
