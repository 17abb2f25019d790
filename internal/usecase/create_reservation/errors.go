package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных (провайдер не вызывается)
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_reservation: user not found")

	// ErrProviderRejected возвращается, когда провайдер отклонил бронирование
	ErrProviderRejected = errors.New("create_reservation: provider rejected the booking")

	// ErrProviderUnavailable возвращается, когда провайдер недоступен
	ErrProviderUnavailable = errors.New("create_reservation: provider unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
