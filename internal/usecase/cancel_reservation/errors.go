package cancel_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено или принадлежит другому пользователю
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("cancel_reservation: reservation already cancelled")

	// ErrPastBooking возвращается, когда время поездки уже наступило
	ErrPastBooking = errors.New("cancel_reservation: past reservations cannot be cancelled")

	// ErrProviderRejected возвращается, когда провайдер отклонил отмену
	ErrProviderRejected = errors.New("cancel_reservation: provider rejected the cancellation")

	// ErrProviderUnavailable возвращается, когда провайдер недоступен
	ErrProviderUnavailable = errors.New("cancel_reservation: provider unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
