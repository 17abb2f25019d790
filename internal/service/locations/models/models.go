package models

import "github.com/m04kA/TaxiClass-ReservationService/internal/domain"

// LocationResponse точка посадки
type LocationResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Category  string  `json:"category"`
	Icon      *string `json:"icon,omitempty"`
}

// LocationGroup точки одной категории
type LocationGroup struct {
	Category  string              `json:"category"`
	Locations []*LocationResponse `json:"locations"`
}

// GroupedLocationsResponse все активные точки, сгруппированные по категориям
type GroupedLocationsResponse struct {
	Groups []*LocationGroup `json:"groups"`
	Total  int              `json:"total"`
}

// SearchLocationsResponse результат поиска
type SearchLocationsResponse struct {
	Locations []*LocationResponse `json:"locations"`
	Total     int                 `json:"total"`
}

// FromDomainLocation конвертирует domain.PredefinedLocation в LocationResponse
func FromDomainLocation(l *domain.PredefinedLocation) *LocationResponse {
	return &LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Category:  l.CategoryOrDefault(),
		Icon:      l.Icon,
	}
}

// GroupByCategory группирует точки, сохраняя порядок первого появления категории
func GroupByCategory(items []*domain.PredefinedLocation) *GroupedLocationsResponse {
	resp := &GroupedLocationsResponse{
		Groups: make([]*LocationGroup, 0),
		Total:  len(items),
	}

	index := make(map[string]*LocationGroup)
	for _, l := range items {
		category := l.CategoryOrDefault()
		group, ok := index[category]
		if !ok {
			group = &LocationGroup{Category: category}
			index[category] = group
			resp.Groups = append(resp.Groups, group)
		}
		group.Locations = append(group.Locations, FromDomainLocation(l))
	}

	return resp
}

// FromDomainList конвертирует список точек
func FromDomainList(items []*domain.PredefinedLocation) *SearchLocationsResponse {
	resp := &SearchLocationsResponse{
		Locations: make([]*LocationResponse, 0, len(items)),
		Total:     len(items),
	}
	for _, l := range items {
		resp.Locations = append(resp.Locations, FromDomainLocation(l))
	}
	return resp
}
