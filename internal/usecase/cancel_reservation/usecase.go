package cancel_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/TaxiClass-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
)

// UseCase use case для отмены бронирования у провайдера
type UseCase struct {
	reservationRepo ReservationRepository
	provider        ProviderClient
	signer          Signer
	activities      ActivityLogger
	deferred        DeferredWriter
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	provider ProviderClient,
	signer Signer,
	activities ActivityLogger,
	deferred DeferredWriter,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		provider:        provider,
		signer:          signer,
		activities:      activities,
		deferred:        deferred,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет отмену. Одновременные отмены одного бронирования не блокируются:
// обновление в БД выполняется только из статуса confirmed, второе становится пустым.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: user=%d, booking_id=%s", req.UserID, req.ProviderBookingID)

	// 1. Валидация входных данных
	bookingID := strings.TrimSpace(req.ProviderBookingID)
	if bookingID == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	// 2. Загружаем бронирование пользователя
	reservation, err := uc.reservationRepo.GetByProviderIDAndUser(ctx, bookingID, req.UserID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: booking_id=%s not found for user=%d", bookingID, req.UserID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to get booking_id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Проверяем, что отмена допустима
	if reservation.IsCancelled() {
		uc.logger.Warn("CancelReservation: booking_id=%s already cancelled", bookingID)
		return nil, ErrAlreadyCancelled
	}

	now := uc.timeProvider.Now()
	if !reservation.IsUpcoming(now) {
		uc.logger.Warn("CancelReservation: booking_id=%s date=%s is not in the future",
			bookingID, reservation.BookingDate.Format(domain.ProviderDateLayout))
		return nil, ErrPastBooking
	}

	// 4. Отмена у провайдера; отключение клиента не прерывает отмену и запись результата
	ctx = context.WithoutCancel(ctx)
	authHeader := uc.signer.AuthHeader(uc.signer.CancelSignature(bookingID))
	trace, err := uc.provider.Cancel(ctx, bookingID, authHeader)
	if err != nil {
		return &Response{Trace: trace}, uc.providerError(bookingID, err)
	}

	// 5. Фиксируем отмену в БД
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = domain.DefaultCancellationReason
	}

	cancellation := &domain.ReservationCancellation{
		ReservationID: reservation.ID,
		Reason:        reason,
	}
	if trace != nil {
		if raw, err := json.Marshal(trace); err == nil {
			cancellation.ProviderResponse = raw
		}
	}

	persisted := true
	if err := uc.reservationRepo.Cancel(ctx, cancellation); err != nil {
		if errors.Is(err, reservationRepo.ErrNotConfirmed) {
			// Параллельная отмена уже записала результат
			uc.logger.Warn("CancelReservation: booking_id=%s was cancelled concurrently", bookingID)
		} else {
			persisted = false
			uc.logger.Error("CancelReservation: failed to persist cancellation booking_id=%s: %v", bookingID, err)
			uc.deferCancel(bookingID, cancellation)
		}
	}

	// 6. Журнал действий
	uc.logActivity(ctx, req, reservation, reason)

	uc.logger.Info("CancelReservation: successfully cancelled booking_id=%s reservation id=%d", bookingID, reservation.ID)

	return &Response{
		ReservationID:     reservation.ID,
		ProviderBookingID: bookingID,
		Reason:            reason,
		CancelledAt:       now,
		Persisted:         persisted,
		Trace:             trace,
	}, nil
}

func (uc *UseCase) providerError(bookingID string, err error) error {
	var rejected *auriga.RejectedError
	switch {
	case errors.As(err, &rejected):
		uc.logger.Warn("CancelReservation: provider rejected booking_id=%s status=%d body=%s",
			bookingID, rejected.StatusCode, rejected.Body)
		return fmt.Errorf("%w: %w", ErrProviderRejected, err)
	case errors.Is(err, auriga.ErrTransport):
		uc.logger.Error("CancelReservation: provider unavailable booking_id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	default:
		uc.logger.Error("CancelReservation: provider call failed booking_id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: provider call: %v", ErrInternal, err)
	}
}

func (uc *UseCase) deferCancel(bookingID string, c *domain.ReservationCancellation) {
	err := uc.deferred.Enqueue("reservation_cancel:"+bookingID, func(ctx context.Context) error {
		err := uc.reservationRepo.Cancel(ctx, c)
		if errors.Is(err, reservationRepo.ErrNotConfirmed) {
			return nil
		}
		return err
	})
	if err != nil {
		uc.logger.Error("CancelReservation: failed to enqueue deferred write booking_id=%s: %v", bookingID, err)
	}
}

func (uc *UseCase) logActivity(ctx context.Context, req *Request, reservation *domain.Reservation, reason string) {
	metadata, _ := json.Marshal(map[string]interface{}{
		"booking_id":     reservation.ProviderBookingID,
		"reservation_id": reservation.ID,
		"reason":         reason,
	})

	entry := &domain.Activity{
		UserID:      req.UserID,
		Type:        domain.ActivityReservationCancelled,
		Description: fmt.Sprintf("Reserva cancelada #%s", reservation.ProviderBookingID),
		IPAddress:   req.IPAddress,
		UserAgent:   req.UserAgent,
		Metadata:    metadata,
	}
	if err := uc.activities.Log(ctx, entry); err != nil {
		uc.logger.Warn("CancelReservation: failed to log activity user=%d: %v", req.UserID, err)
	}
}
