package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	userRepo "github.com/m04kA/TaxiClass-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/ptr"
)

const defaultNotificationTimeout = 30 * time.Second

// Config параметры use case
type Config struct {
	Location            *time.Location // часовой пояс для дат без смещения
	AdminEmail          string         // пусто: письмо администрации не отправляется
	NotificationTimeout time.Duration
}

// UseCase use case для создания бронирования у провайдера
type UseCase struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	provider        ProviderClient
	signer          Signer
	notifier        Notifier
	activities      ActivityLogger
	deferred        DeferredWriter
	runner          AsyncRunner
	cfg             Config
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	provider ProviderClient,
	signer Signer,
	notifier Notifier,
	activities ActivityLogger,
	deferred DeferredWriter,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.NotificationTimeout <= 0 {
		cfg.NotificationTimeout = defaultNotificationTimeout
	}

	return &UseCase{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		provider:        provider,
		signer:          signer,
		notifier:        notifier,
		activities:      activities,
		deferred:        deferred,
		runner:          GoRunner{},
		cfg:             cfg,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// После подтверждения провайдером ошибка записи в БД не возвращается клиенту:
// бронирование у провайдера уже существует, запись уходит в очередь повторов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateReservation: user=%d, date=%s, pickup_type=%s, passengers=%d",
		req.UserID, req.BookingDate, req.Pickup.Type, req.NumberOfPassengers)

	// 2. Дата в формате провайдера
	bookingDate, pickupTime, err := normalizeBookingDate(req.BookingDate, uc.cfg.Location)
	if err != nil {
		uc.logger.Warn("CreateReservation: invalid booking date %q: %v", req.BookingDate, err)
		return nil, err
	}

	// 3. Получаем пользователя
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateReservation: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 4. Собираем и подписываем запрос
	payload := buildPayload(req, user, bookingDate, pickupTime)
	authHeader := uc.signer.AuthHeader(uc.signer.CreateSignature(payload))

	// 5. Отправляем провайдеру (без повторов: повтор может создать дубль).
	// С этого шага отключение клиента не прерывает операцию, время ограничено таймаутом клиента провайдера.
	ctx = context.WithoutCancel(ctx)
	result, trace, err := uc.provider.Create(ctx, payload, authHeader)
	if err != nil {
		return &Response{Trace: trace}, uc.providerError(req.UserID, err)
	}

	uc.logger.Info("CreateReservation: provider confirmed booking_id=%s user=%d", result.BookingID, req.UserID)

	// 6. Сохраняем запись аудита
	record, err := buildRecord(req, payload, pickupTime, result, trace)
	if err != nil {
		// Бронирование у провайдера уже есть, поэтому не возвращаем ошибку
		uc.logger.Error("CreateReservation: failed to build record booking_id=%s: %v", result.BookingID, err)
		return uc.response(0, result, bookingDate, false, trace), nil
	}
	record.UserID = req.UserID

	var reservationID int64
	persisted := true
	created, err := uc.reservationRepo.Create(ctx, record)
	if err != nil {
		persisted = false
		uc.logger.Error("CreateReservation: failed to persist booking_id=%s user=%d: %v",
			result.BookingID, req.UserID, err)
		uc.deferPersist(record)
	} else {
		reservationID = created.ID
	}

	// 7. Уведомления (не блокируют ответ)
	uc.notify(ctx, user, buildEmailData(req, user, payload, pickupTime, result))

	// 8. Журнал действий
	uc.logActivity(ctx, req, result)

	uc.logger.Info("CreateReservation: successfully created reservation id=%d booking_id=%s persisted=%t",
		reservationID, result.BookingID, persisted)

	return uc.response(reservationID, result, bookingDate, persisted, trace), nil
}

// providerError сохраняет типизированную ошибку клиента для диагностики через errors.As
func (uc *UseCase) providerError(userID int64, err error) error {
	var rejected *auriga.RejectedError
	switch {
	case errors.As(err, &rejected):
		uc.logger.Warn("CreateReservation: provider rejected user=%d status=%d body=%s",
			userID, rejected.StatusCode, rejected.Body)
		return fmt.Errorf("%w: %w", ErrProviderRejected, err)
	case errors.Is(err, auriga.ErrTransport):
		uc.logger.Error("CreateReservation: provider unavailable user=%d: %v", userID, err)
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	default:
		uc.logger.Error("CreateReservation: provider call failed user=%d: %v", userID, err)
		return fmt.Errorf("%w: provider call: %v", ErrInternal, err)
	}
}

func (uc *UseCase) deferPersist(record *domain.Reservation) {
	name := "reservation_create:" + record.ProviderBookingID
	err := uc.deferred.Enqueue(name, func(ctx context.Context) error {
		_, err := uc.reservationRepo.Create(ctx, record)
		return err
	})
	if err != nil {
		uc.logger.Error("CreateReservation: failed to enqueue deferred write booking_id=%s: %v",
			record.ProviderBookingID, err)
	}
}

func (uc *UseCase) logActivity(ctx context.Context, req *Request, result *auriga.CreateResponse) {
	destination := domain.NotSpecifiedLabel
	if req.Destination != nil && req.Destination.Address != "" {
		destination = req.Destination.Address
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"booking_id":  result.BookingID,
		"service_id":  result.ServiceID,
		"pickup":      req.Pickup.Address,
		"destination": destination,
	})

	entry := &domain.Activity{
		UserID:      req.UserID,
		Type:        domain.ActivityReservationCreated,
		Description: fmt.Sprintf("Reserva creada #%s", result.BookingID),
		IPAddress:   req.IPAddress,
		UserAgent:   req.UserAgent,
		Metadata:    metadata,
	}
	if err := uc.activities.Log(ctx, entry); err != nil {
		uc.logger.Warn("CreateReservation: failed to log activity user=%d: %v", req.UserID, err)
	}
}

func (uc *UseCase) response(id int64, result *auriga.CreateResponse, bookingDate string, persisted bool, trace *auriga.Trace) *Response {
	return &Response{
		ReservationID:     id,
		ProviderBookingID: result.BookingID,
		ServiceID:         result.ServiceID,
		ProviderName:      ptr.NonEmpty(ptr.Value(result.ProviderName)),
		BookingDate:       bookingDate,
		Persisted:         persisted,
		Trace:             trace,
	}
}
