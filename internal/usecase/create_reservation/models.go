package create_reservation

import (
	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID              int64         // ID пользователя из токена
	BookingDate         string        // Дата и время подачи в том виде, как прислал клиент
	Pickup              *domain.Place // Точка подачи (обязательна)
	Destination         *domain.Place // Точка назначения (опционально)
	NumberOfPassengers  int           // Количество пассажиров
	ChildSeat           bool          // Детское кресло
	Vehicle56Seats      bool          // Автомобиль на 5-6 мест
	Vehicle7Seats       bool          // Автомобиль на 7 мест
	SpecialInstructions *string       // Комментарий водителю
	IPAddress           *string       // Для журнала действий
	UserAgent           *string       // Для журнала действий
}

// Response модель ответа после подтверждения провайдером.
// При ошибке провайдера заполнен только Trace.
type Response struct {
	ReservationID     int64   // ID записи в БД (0, если запись отложена)
	ProviderBookingID string  // ID бронирования у провайдера
	ServiceID         *string // ID услуги у провайдера
	ProviderName      *string // Название перевозчика
	BookingDate       string  // Дата в формате провайдера
	Persisted         bool    // false, если запись в БД поставлена в очередь повторов
	Trace             *auriga.Trace
}
