package locations

import "errors"

var (
	// ErrSearchTermTooShort возвращается, когда строка поиска короче минимальной
	ErrSearchTermTooShort = errors.New("search term too short")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
