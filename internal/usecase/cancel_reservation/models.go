package cancel_reservation

import (
	"time"

	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
)

// Request модель запроса на отмену
type Request struct {
	UserID            int64
	ProviderBookingID string
	Reason            string  // пусто: причина по умолчанию
	IPAddress         *string // Для журнала действий
	UserAgent         *string // Для журнала действий
}

// Response модель ответа после подтверждения отмены провайдером.
// При ошибке провайдера заполнен только Trace.
type Response struct {
	ReservationID     int64
	ProviderBookingID string
	Reason            string
	CancelledAt       time.Time
	Persisted         bool // false, если обновление в БД поставлено в очередь повторов
	Trace             *auriga.Trace
}
