package auriga

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected провайдер ответил, но не подтвердил операцию
	ErrRejected = errors.New("auriga: request rejected by provider")

	// ErrTransport провайдер недоступен (соединение, таймаут, обрыв ответа)
	ErrTransport = errors.New("auriga: provider unreachable")

	// ErrInternal внутренняя ошибка клиента (сериализация, построение запроса)
	ErrInternal = errors.New("auriga client: internal error")
)

// RejectedError ответ провайдера с неуспешным статусом или неожиданной формой
type RejectedError struct {
	StatusCode int
	Body       string
	// Parsed тело ответа, если оно декодируется как JSON объект
	Parsed map[string]interface{}
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("auriga: provider rejected request: status=%d, reason=%s, body=%s", e.StatusCode, e.Reason, e.Body)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}

// Message текст ошибки из тела ответа провайдера, если он есть
func (e *RejectedError) Message() string {
	for _, key := range []string{"message", "error", "detail"} {
		if v, ok := e.Parsed[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// TransportError ошибка сетевого уровня при обращении к провайдеру
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("auriga: %s request failed: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}
