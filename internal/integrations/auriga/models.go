package auriga

import "encoding/json"

// Address адрес в формате провайдера. Координаты передаются строками (см. pkg/coords)
type Address struct {
	Latitude   string `json:"latitude"`
	Longitude  string `json:"longitude"`
	BldgNumber string `json:"bldgNumber"`
	Street     string `json:"street"`
	Locality   string `json:"locality"`
	Town       string `json:"town"`
	Country    string `json:"country"`
}

// Flight данные рейса для подачи в аэропорт
type Flight struct {
	FlightNo    string `json:"flightNo"`
	ArrivalTime string `json:"arrivalTime"`
	Origin      string `json:"origin"`
}

// BookingPayload тело запроса на создание бронирования.
// Порядок полей структуры совпадает с порядком ключей, который требует провайдер.
// Nullable поля без omitempty: провайдер ожидает присутствия всех ключей.
type BookingPayload struct {
	PhoneNumber             *string  `json:"phoneNumber"` // nil сериализуется как null
	ClientName              string   `json:"clientName"`
	BookingDate             string   `json:"bookingDate"`
	Special                 *string  `json:"special"`
	Preferences             []string `json:"preferences"` // nil сериализуется как null
	ProviderID              *string  `json:"providerId"`
	URLHook                 *string  `json:"urlHook"`
	Flight                  *Flight  `json:"flight"`
	Account                 *string  `json:"account"`
	AccountPassword         *string  `json:"accountPassword"`
	AccountReference        *string  `json:"accountReference"`
	LockedPrice             *string  `json:"lockedPrice"`
	CustomerEmail           *string  `json:"customerEmail"`
	CustomerPaymentMethodID *string  `json:"customerPaymentMethodId"`
	BookingID               *string  `json:"bookingId"`
	ProviderName            *string  `json:"providerName"`
	ProviderTelephone       *string  `json:"providerTelephone"`
	ServiceID               *string  `json:"serviceId"`
	PickupAddress           Address  `json:"pickupAddress"`
	DestinationAddress      *Address `json:"destinationAddress"`
}

// CancelPayload тело запроса на отмену
type CancelPayload struct {
	BookingID string `json:"bookingId"`
}

// CreateResponse успешный ответ провайдера на создание бронирования
type CreateResponse struct {
	BookingID    string
	ServiceID    *string
	ProviderName *string
	Raw          json.RawMessage
}

// Trace полная запись обмена с провайдером: запрос и ответ (если он был получен)
type Trace struct {
	TraceID    string         `json:"traceId"`
	Operation  string         `json:"operation"`
	Request    RequestTrace   `json:"request"`
	Response   *ResponseTrace `json:"response"`
	DurationMs int64          `json:"durationMs"`
	Error      string         `json:"error,omitempty"`
}

type RequestTrace struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Body    json.RawMessage   `json:"body"`
}

type ResponseTrace struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       json.RawMessage   `json:"body"`
}
