package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/TaxiClass-ReservationService/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/TaxiClass-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/reservations/models"
)

// Service сервис чтения бронирований пользователя
type Service struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	receipts        ReceiptRenderer
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// location задаёт границы "сегодня" для фильтров и статистики.
func NewService(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	receipts ReceiptRenderer,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		receipts:        receipts,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByProviderID возвращает бронирование пользователя по номеру провайдера
func (s *Service) GetByProviderID(ctx context.Context, userID int64, providerBookingID string) (*models.ReservationResponse, error) {
	res, err := s.load(ctx, "GetByProviderID", userID, providerBookingID)
	if err != nil {
		return nil, err
	}

	resp, decodeErrs := models.FromDomainReservation(res)
	for _, e := range decodeErrs {
		s.logger.Warn("GetByProviderID: broken JSON block in reservation id=%d: %v", res.ID, e)
	}
	return resp, nil
}

// GetUserReservations возвращает страницу бронирований пользователя, поздние даты первыми
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	filter, err := parseFilter(req.Filter)
	if err != nil {
		s.logger.Warn("GetUserReservations: invalid filter=%q for user=%d", req.Filter, req.UserID)
		return nil, err
	}
	page, limit := pageParams(req.Page, req.Limit)

	s.logger.Info("GetUserReservations: fetching reservations for user=%d, filter=%s, page=%d, limit=%d",
		req.UserID, filter, page, limit)

	dayStart, _ := s.dayBounds()
	items, total, err := s.reservationRepo.GetByUserWithFilter(ctx, domain.UserReservationsFilter{
		UserID: req.UserID,
		Filter: filter,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, dayStart)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	resp := &models.ReservationListResponse{
		Data:       make([]*models.ReservationResponse, 0, len(items)),
		Pagination: models.NewPagination(page, limit, total),
	}
	for _, item := range items {
		r, decodeErrs := models.FromDomainReservation(item)
		for _, e := range decodeErrs {
			s.logger.Warn("GetUserReservations: broken JSON block in reservation id=%d: %v", item.ID, e)
		}
		resp.Data = append(resp.Data, r)
	}

	s.logger.Info("GetUserReservations: fetched %d of %d reservations for user=%d", len(items), total, req.UserID)
	return resp, nil
}

// GetUserStats возвращает счётчики бронирований пользователя
func (s *Service) GetUserStats(ctx context.Context, userID int64) (*models.StatsResponse, error) {
	now := s.timeProvider.Now()
	dayStart, dayEnd := s.dayBounds()

	stats, err := s.reservationRepo.GetStats(ctx, userID, now, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("GetUserStats: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserStats - repository error: %v", ErrInternal, err)
	}

	return &models.StatsResponse{
		Total:     stats.Total,
		Upcoming:  stats.Upcoming,
		Today:     stats.Today,
		Completed: stats.Completed,
	}, nil
}

// GetReceipt формирует PDF квитанцию по бронированию пользователя
func (s *Service) GetReceipt(ctx context.Context, userID int64, providerBookingID string) (*models.ReceiptFile, error) {
	res, err := s.load(ctx, "GetReceipt", userID, providerBookingID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetReceipt: user=%d not found", userID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetReceipt: user repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetReceipt - user repository error: %v", ErrInternal, err)
	}

	content, err := s.receipts.Render(res, user)
	if err != nil {
		s.logger.Error("GetReceipt: failed to render receipt for reservation id=%d: %v", res.ID, err)
		return nil, fmt.Errorf("%w: GetReceipt - render: %v", ErrInternal, err)
	}

	s.logger.Info("GetReceipt: rendered receipt for booking=%s, size=%d", res.ProviderBookingID, len(content))
	return &models.ReceiptFile{
		Filename:    "reserva_" + res.ProviderBookingID + ".pdf",
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func (s *Service) load(ctx context.Context, op string, userID int64, providerBookingID string) (*domain.Reservation, error) {
	providerBookingID = strings.TrimSpace(providerBookingID)
	if providerBookingID == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	res, err := s.reservationRepo.GetByProviderIDAndUser(ctx, providerBookingID, userID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: booking=%s not found for user=%d", op, providerBookingID, userID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for booking=%s: %v", op, providerBookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}

// dayBounds начало текущего и следующего дня в часовом поясе сервиса
func (s *Service) dayBounds() (time.Time, time.Time) {
	now := s.timeProvider.Now().In(s.location)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	return start, start.AddDate(0, 0, 1)
}

func parseFilter(raw string) (domain.ReservationFilter, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return domain.FilterAll, nil
	}
	f := domain.ReservationFilter(raw)
	if !f.IsValid() {
		return "", fmt.Errorf("%w: unknown filter %q", ErrInvalidInput, raw)
	}
	return f, nil
}

// pageParams page не меньше 1, limit в пределах 1..MaxReservationsLimit
func pageParams(page, limit *int) (int, int) {
	p := 1
	if page != nil && *page > 1 {
		p = *page
	}

	l := domain.DefaultReservationsLimit
	if limit != nil {
		l = *limit
		if l < 1 {
			l = 1
		}
		if l > domain.MaxReservationsLimit {
			l = domain.MaxReservationsLimit
		}
	}
	return p, l
}
