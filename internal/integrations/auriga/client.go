package auriga

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	operationCreate = "create"
	operationCancel = "cancel"

	outcomeSuccess   = "success"
	outcomeRejected  = "rejected"
	outcomeTransport = "transport_error"

	// headerCancelAuth провайдер требует имя заголовка в нижнем регистре для DELETE
	headerCancelAuth = "x-authorization"
	headerCreateAuth = "X-Authorization"
)

// Client клиент API провайдера бронирований.
// Повторных попыток нет: повтор создания может привести к дублю брони у провайдера.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	metrics    MetricsRecorder
}

// NewClient создает клиент с фиксированным таймаутом на запрос
func NewClient(baseURL string, timeout time.Duration, log Logger, metrics MetricsRecorder) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout}, log, metrics)
}

// NewClientWithHTTP создает клиент поверх готового http.Client
func NewClientWithHTTP(baseURL string, httpClient *http.Client, log Logger, metrics MetricsRecorder) *Client {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
		metrics:    metrics,
	}
}

// Create отправляет бронирование провайдеру.
// Успех только при 201 и непустом bookingId в ответе.
// Trace возвращается всегда, кроме ошибок построения запроса.
func (c *Client) Create(ctx context.Context, payload *BookingPayload, authHeader string) (*CreateResponse, *Trace, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to encode booking payload: %v", ErrInternal, err)
	}

	endpoint := c.baseURL + "/bookings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerCreateAuth, authHeader)
	req.Header.Set("Accept", "*/*")

	trace, status, respBody, err := c.do(req, operationCreate, body)
	if err != nil {
		return nil, trace, err
	}

	if status != http.StatusCreated {
		rejected := newRejectedError(status, respBody, "unexpected status code")
		c.observe(operationCreate, outcomeRejected, trace)
		c.log.Warn("Auriga.Create: rejected trace_id=%s status=%d body=%s", trace.TraceID, status, string(respBody))
		return nil, trace, rejected
	}

	result, err := decodeCreateResponse(respBody)
	if err != nil {
		rejected := newRejectedError(status, respBody, err.Error())
		c.observe(operationCreate, outcomeRejected, trace)
		c.log.Warn("Auriga.Create: unexpected response shape trace_id=%s: %v", trace.TraceID, err)
		return nil, trace, rejected
	}

	c.observe(operationCreate, outcomeSuccess, trace)
	c.log.Info("Auriga.Create: booking confirmed trace_id=%s booking_id=%s duration_ms=%d",
		trace.TraceID, result.BookingID, trace.DurationMs)
	return result, trace, nil
}

// Cancel отменяет бронирование у провайдера. Успех только при 200.
func (c *Client) Cancel(ctx context.Context, providerBookingID string, authHeader string) (*Trace, error) {
	body, err := encodeJSON(CancelPayload{BookingID: providerBookingID})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode cancel payload: %v", ErrInternal, err)
	}

	endpoint := c.baseURL + "/bookings/" + url.PathEscape(providerBookingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// Прямая запись в map, чтобы имя заголовка не было приведено к каноническому виду
	req.Header[headerCancelAuth] = []string{authHeader}

	trace, status, respBody, err := c.do(req, operationCancel, body)
	if err != nil {
		return trace, err
	}

	if status != http.StatusOK {
		rejected := newRejectedError(status, respBody, "unexpected status code")
		c.observe(operationCancel, outcomeRejected, trace)
		c.log.Warn("Auriga.Cancel: rejected trace_id=%s booking_id=%s status=%d body=%s",
			trace.TraceID, providerBookingID, status, string(respBody))
		return trace, rejected
	}

	c.observe(operationCancel, outcomeSuccess, trace)
	c.log.Info("Auriga.Cancel: booking cancelled trace_id=%s booking_id=%s duration_ms=%d",
		trace.TraceID, providerBookingID, trace.DurationMs)
	return trace, nil
}

// do выполняет запрос и заполняет trace. Ошибка возвращается только транспортная.
func (c *Client) do(req *http.Request, operation string, body []byte) (*Trace, int, []byte, error) {
	trace := &Trace{
		TraceID:   uuid.NewString(),
		Operation: operation,
		Request: RequestTrace{
			Method:  req.Method,
			URL:     req.URL.String(),
			Headers: flattenHeaders(req.Header),
			Body:    rawJSONOrString(body),
		},
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportFailure(trace, start, operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportFailure(trace, start, operation, fmt.Errorf("read response body: %w", err))
	}

	trace.DurationMs = time.Since(start).Milliseconds()
	trace.Response = &ResponseTrace{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       rawJSONOrString(respBody),
	}

	return trace, resp.StatusCode, respBody, nil
}

func (c *Client) transportFailure(trace *Trace, start time.Time, operation string, err error) (*Trace, int, []byte, error) {
	trace.DurationMs = time.Since(start).Milliseconds()
	trace.Error = err.Error()
	c.observe(operation, outcomeTransport, trace)
	c.log.Error("Auriga: %s transport failure trace_id=%s url=%s: %v", operation, trace.TraceID, trace.Request.URL, err)
	return trace, 0, nil, &TransportError{Operation: operation, Err: err}
}

func (c *Client) observe(operation, outcome string, trace *Trace) {
	c.metrics.ObserveProvider(operation, outcome, time.Duration(trace.DurationMs)*time.Millisecond)
}

// encodeJSON сериализует без экранирования HTML и без завершающего перевода строки
func encodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodeCreateResponse bookingId и serviceId могут прийти строкой или числом
func decodeCreateResponse(body []byte) (*CreateResponse, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %v", err)
	}

	bookingID := scalarString(data["bookingId"])
	if bookingID == "" {
		return nil, fmt.Errorf("response has no bookingId")
	}

	result := &CreateResponse{
		BookingID: bookingID,
		Raw:       json.RawMessage(body),
	}
	if v := scalarString(data["serviceId"]); v != "" {
		result.ServiceID = &v
	}
	if v := scalarString(data["providerName"]); v != "" {
		result.ProviderName = &v
	}
	return result, nil
}

func newRejectedError(status int, body []byte, reason string) *RejectedError {
	rejected := &RejectedError{
		StatusCode: status,
		Body:       string(body),
		Reason:     reason,
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err == nil {
		rejected.Parsed = parsed
	}
	return rejected
}

func scalarString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}

// rawJSONOrString возвращает тело как есть, если это JSON, иначе как JSON строку
func rawJSONOrString(body []byte) json.RawMessage {
	if len(body) == 0 {
		return json.RawMessage(`null`)
	}
	if json.Valid(body) {
		return json.RawMessage(append([]byte(nil), body...))
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}
