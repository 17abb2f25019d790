package models

import (
	"encoding/json"
	"time"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
)

// Request модели

// GetUserReservationsRequest запрос страницы бронирований
type GetUserReservationsRequest struct {
	UserID int64
	Filter string
	Page   *int
	Limit  *int
}

// Response модели

// ReservationResponse бронирование с разобранными JSON блоками
type ReservationResponse struct {
	ID                  int64                     `json:"id"`
	BookingID           string                    `json:"bookingId"`
	BookingDate         time.Time                 `json:"bookingDate"`
	ClientName          string                    `json:"clientName"`
	ClientPhone         string                    `json:"clientPhone"`
	PickupAddress       *domain.StoredAddress     `json:"pickupAddress"`
	DestinationAddress  *domain.StoredAddress     `json:"destinationAddress"`
	PassengersDetails   *domain.PassengersDetails `json:"passengersDetails"`
	SpecialInstructions *string                   `json:"specialInstructions"`
	ProviderName        *string                   `json:"providerName"`
	ServiceID           *string                   `json:"serviceId"`
	Status              string                    `json:"status"`
	CancellationReason  *string                   `json:"cancellationReason,omitempty"`
	CancelledAt         *time.Time                `json:"cancelledAt,omitempty"`
	CreatedAt           time.Time                 `json:"createdAt"`
}

// Pagination метаданные страницы
type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	TotalItems   int  `json:"total_items"`
	ItemsPerPage int  `json:"items_per_page"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
}

// ReservationListResponse страница бронирований
type ReservationListResponse struct {
	Data       []*ReservationResponse `json:"data"`
	Pagination Pagination             `json:"pagination"`
}

// StatsResponse счётчики бронирований пользователя
type StatsResponse struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Today     int `json:"today"`
	Completed int `json:"completed"`
}

// ReceiptFile готовый документ квитанции
type ReceiptFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// NewPagination считает метаданные страницы
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
		HasNext:      page < totalPages,
		HasPrevious:  page > 1,
	}
}

// FromDomainReservation конвертирует domain.Reservation; нераспознанный JSON блок остаётся nil
func FromDomainReservation(r *domain.Reservation) (*ReservationResponse, []error) {
	var errs []error

	resp := &ReservationResponse{
		ID:                  r.ID,
		BookingID:           r.ProviderBookingID,
		BookingDate:         r.BookingDate,
		ClientName:          r.ClientName,
		ClientPhone:         r.ClientPhone,
		SpecialInstructions: r.SpecialInstructions,
		ProviderName:        r.ProviderName,
		ServiceID:           r.ServiceID,
		Status:              string(r.Status),
		CancellationReason:  r.CancellationReason,
		CancelledAt:         r.CancelledAt,
		CreatedAt:           r.CreatedAt,
	}

	if addr, err := DecodeAddress(r.PickupAddress); err != nil {
		errs = append(errs, err)
	} else {
		resp.PickupAddress = addr
	}
	if addr, err := DecodeAddress(r.DestinationAddress); err != nil {
		errs = append(errs, err)
	} else {
		resp.DestinationAddress = addr
	}
	if details, err := DecodePassengers(r.PassengersDetails); err != nil {
		errs = append(errs, err)
	} else {
		resp.PassengersDetails = details
	}

	return resp, errs
}

// DecodeAddress разбирает сохранённый адрес; пустой блок или null дают nil без ошибки
func DecodeAddress(raw json.RawMessage) (*domain.StoredAddress, error) {
	if isEmptyJSON(raw) {
		return nil, nil
	}
	var addr domain.StoredAddress
	if err := json.Unmarshal(raw, &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

// DecodePassengers разбирает сохранённые параметры пассажиров
func DecodePassengers(raw json.RawMessage) (*domain.PassengersDetails, error) {
	if isEmptyJSON(raw) {
		return nil, nil
	}
	var details domain.PassengersDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
