package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
)

const maxBodyBytes = 1 << 20

const (
	msgInternalError = "Error del servidor"
	msgUnauthorized  = "No autorizado"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса; лишние поля игнорируются, данные после JSON отклоняются.
// Обязательные поля проверяет слой use case.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// RespondJSON пишет JSON ответ с указанным статусом; nil data дает пустое тело
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Success: false, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter) {
	RespondError(w, http.StatusUnauthorized, msgUnauthorized)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondFile отдает файл как вложение
func RespondFile(w http.ResponseWriter, contentType, filename string, content []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// QueryInt читает необязательный целочисленный параметр запроса
func QueryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %s: %w", name, err)
	}
	return &v, nil
}

// ClientIP адрес клиента без порта.
// За доверенным прокси RemoteAddr уже переписан middleware.RealIP.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ProviderErrorResponse ответ, когда провайдер отклонил операцию
type ProviderErrorResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ProviderStatus  int    `json:"providerStatus"`
	ProviderMessage string `json:"providerMessage,omitempty"`
	ProviderBody    string `json:"providerBody,omitempty"`
	TraceID         string `json:"traceId,omitempty"`
}

// RespondProviderRejected 502 со статусом и телом ответа провайдера
func RespondProviderRejected(w http.ResponseWriter, message string, rejected *auriga.RejectedError, traceID string) {
	resp := ProviderErrorResponse{Message: message, TraceID: traceID}
	if rejected != nil {
		resp.ProviderStatus = rejected.StatusCode
		resp.ProviderMessage = rejected.Message()
		resp.ProviderBody = rejected.Body
	}
	RespondJSON(w, http.StatusBadGateway, resp)
}
