package activities

import (
	"context"
	"fmt"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/activities/models"
)

// Service сервис журнала действий пользователя
type Service struct {
	repo   ActivityRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса журнала
func NewService(repo ActivityRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Log записывает действие пользователя
func (s *Service) Log(ctx context.Context, entry *domain.Activity) error {
	if entry == nil || entry.UserID <= 0 || entry.Type == "" {
		return fmt.Errorf("%w: activity must have user and type", ErrInvalidInput)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("Log: failed to store activity type=%s for user=%d: %v", entry.Type, entry.UserID, err)
		return fmt.Errorf("%w: Log - repository error: %v", ErrInternal, err)
	}
	return nil
}

// List возвращает страницу журнала пользователя, новые записи первыми
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ActivityListResponse, error) {
	limit, offset, err := pageParams(req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("List: fetching activities for user=%d, limit=%d, offset=%d", req.UserID, limit, offset)

	items, err := s.repo.GetByUser(ctx, req.UserID, limit, offset)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	total, err := s.repo.CountByUser(ctx, req.UserID)
	if err != nil {
		s.logger.Error("List: count error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - count error: %v", ErrInternal, err)
	}

	resp := &models.ActivityListResponse{
		Activities: make([]*models.ActivityResponse, 0, len(items)),
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    offset+len(items) < total,
	}
	for _, a := range items {
		resp.Activities = append(resp.Activities, toResponse(a))
	}
	return resp, nil
}

// pageParams применяет значения по умолчанию и границы; limit обрезается до максимума, offset до нуля
func pageParams(req *models.ListRequest) (int, int, error) {
	if req == nil || req.UserID <= 0 {
		return 0, 0, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	limit := domain.DefaultActivitiesLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	if limit <= 0 {
		limit = domain.DefaultActivitiesLimit
	}
	if limit > domain.MaxActivitiesLimit {
		limit = domain.MaxActivitiesLimit
	}

	offset := 0
	if req.Offset != nil && *req.Offset > 0 {
		offset = *req.Offset
	}
	return limit, offset, nil
}

func toResponse(a *domain.Activity) *models.ActivityResponse {
	return &models.ActivityResponse{
		ID:          a.ID,
		Type:        string(a.Type),
		Description: a.Description,
		IPAddress:   a.IPAddress,
		UserAgent:   describeUserAgent(a.UserAgent),
		Metadata:    a.Metadata,
		CreatedAt:   a.CreatedAt,
		Icon:        activityIcon(a.Type),
		Color:       activityColor(a.Type),
	}
}
