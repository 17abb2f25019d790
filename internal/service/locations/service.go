package locations

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/locations/models"
)

// Service сервис предопределённых точек посадки
type Service struct {
	repo   LocationRepository
	cache  LocationCache
	logger Logger
}

// NewService создает сервис; cache может быть nil
func NewService(repo LocationRepository, cache LocationCache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetGrouped возвращает активные точки, сгруппированные по категориям
func (s *Service) GetGrouped(ctx context.Context) (*models.GroupedLocationsResponse, error) {
	items, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	return models.GroupByCategory(items), nil
}

// Search ищет активные точки по названию или адресу
func (s *Service) Search(ctx context.Context, term string) (*models.SearchLocationsResponse, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < domain.MinLocationSearchLength {
		return nil, ErrSearchTermTooShort
	}

	items, err := s.repo.Search(ctx, term)
	if err != nil {
		s.logger.Error("Search: repository error for term=%q: %v", term, err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: found %d locations for term=%q", len(items), term)
	return models.FromDomainList(items), nil
}

// active читает список из кеша, при промахе или ошибке кеша идёт в БД
func (s *Service) active(ctx context.Context) ([]*domain.PredefinedLocation, error) {
	if s.cache != nil {
		items, err := s.cache.GetActive(ctx)
		if err == nil {
			return items, nil
		}
		s.logger.Info("GetGrouped: cache miss: %v", err)
	}

	items, err := s.repo.GetActive(ctx)
	if err != nil {
		s.logger.Error("GetGrouped: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetGrouped - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.SetActive(ctx, items); err != nil {
			s.logger.Warn("GetGrouped: failed to cache locations: %v", err)
		}
	}

	return items, nil
}
