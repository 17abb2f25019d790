package receipts

import "errors"

var (
	// ErrInvalidReservation возвращается, когда данных бронирования недостаточно для квитанции
	ErrInvalidReservation = errors.New("receipts: invalid reservation data")

	// ErrRender возвращается при ошибке формирования PDF
	ErrRender = errors.New("receipts: render failed")
)
