package locations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/logger"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/ptr"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) GetActive(ctx context.Context) ([]*domain.PredefinedLocation, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*domain.PredefinedLocation)
	return items, args.Error(1)
}

func (m *mockRepo) Search(ctx context.Context, term string) ([]*domain.PredefinedLocation, error) {
	args := m.Called(ctx, term)
	items, _ := args.Get(0).([]*domain.PredefinedLocation)
	return items, args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) GetActive(ctx context.Context) ([]*domain.PredefinedLocation, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*domain.PredefinedLocation)
	return items, args.Error(1)
}

func (m *mockCache) SetActive(ctx context.Context, items []*domain.PredefinedLocation) error {
	return m.Called(ctx, items).Error(0)
}

func sampleLocations() []*domain.PredefinedLocation {
	return []*domain.PredefinedLocation{
		{ID: 1, Name: "Barajas T1", Category: ptr.Ptr("aeropuerto"), IsActive: true},
		{ID: 2, Name: "Barajas T4", Category: ptr.Ptr("aeropuerto"), IsActive: true},
		{ID: 3, Name: "Hotel Ritz", Category: ptr.Ptr(""), IsActive: true},
		{ID: 4, Name: "Atocha", Category: ptr.Ptr("estacion"), IsActive: true},
	}
}

func TestService_GetGrouped(t *testing.T) {
	ctx := context.Background()

	t.Run("GroupsFromRepository", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetActive", ctx).Return(sampleLocations(), nil)
		svc := NewService(repo, nil, logger.Nop())

		resp, err := svc.GetGrouped(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, resp.Total)
		require.Len(t, resp.Groups, 3)
		assert.Equal(t, "aeropuerto", resp.Groups[0].Category)
		assert.Len(t, resp.Groups[0].Locations, 2)
		assert.Equal(t, domain.DefaultLocationCategory, resp.Groups[1].Category)
		assert.Equal(t, "estacion", resp.Groups[2].Category)
	})

	t.Run("CacheHitSkipsRepository", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		cache.On("GetActive", ctx).Return(sampleLocations()[:1], nil)
		svc := NewService(repo, cache, logger.Nop())

		resp, err := svc.GetGrouped(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		repo.AssertNotCalled(t, "GetActive", mock.Anything)
	})

	t.Run("CacheMissFillsCache", func(t *testing.T) {
		items := sampleLocations()
		repo := new(mockRepo)
		repo.On("GetActive", ctx).Return(items, nil)
		cache := new(mockCache)
		cache.On("GetActive", ctx).Return(nil, errors.New("miss"))
		cache.On("SetActive", ctx, items).Return(errors.New("redis down"))
		svc := NewService(repo, cache, logger.Nop())

		resp, err := svc.GetGrouped(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, resp.Total)
		cache.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetActive", ctx).Return(nil, errors.New("db down"))
		svc := NewService(repo, nil, logger.Nop())

		_, err := svc.GetGrouped(ctx)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("TooShort", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, nil, logger.Nop())

		_, err := svc.Search(ctx, "  a ")
		assert.ErrorIs(t, err, ErrSearchTermTooShort)
		repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("MultibyteTwoRunes", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("Search", ctx, "Ñu").Return([]*domain.PredefinedLocation{}, nil)
		svc := NewService(repo, nil, logger.Nop())

		resp, err := svc.Search(ctx, "Ñu")
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Total)
		assert.NotNil(t, resp.Locations)
	})

	t.Run("Found", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("Search", ctx, "bara").Return(sampleLocations()[:2], nil)
		svc := NewService(repo, nil, logger.Nop())

		resp, err := svc.Search(ctx, " bara ")
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, "Barajas T1", resp.Locations[0].Name)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("Search", ctx, "bara").Return(nil, errors.New("db down"))
		svc := NewService(repo, nil, logger.Nop())

		_, err := svc.Search(ctx, "bara")
		assert.ErrorIs(t, err, ErrInternal)
	})
}
