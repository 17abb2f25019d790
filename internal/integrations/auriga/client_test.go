package auriga

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TaxiClass-ReservationService/pkg/logger"
)

// recordingTransport сохраняет исходящий запрос до канонизации заголовков сервером
type recordingTransport struct {
	req    *http.Request
	body   []byte
	status int
	resp   string
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.req = req
	if req.Body != nil {
		t.body, _ = io.ReadAll(req.Body)
	}
	return &http.Response{
		StatusCode: t.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(t.resp)),
		Request:    req,
	}, nil
}

func newTestClient(baseURL string, httpClient *http.Client) *Client {
	return NewClientWithHTTP(baseURL, httpClient, logger.Nop(), nil)
}

func TestCreate_Success(t *testing.T) {
	var gotPath, gotMethod, gotAuth, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotAuth = r.Header.Get("X-Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"bookingId":"B1","serviceId":"S1","providerName":"Taxi BCN"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL+"/", srv.Client())

	res, trace, err := c.Create(context.Background(), basePayload(), "CLIENT:abc")
	require.NoError(t, err)

	assert.Equal(t, "/bookings", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "CLIENT:abc", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.False(t, strings.HasSuffix(string(gotBody), "\n"))

	assert.Equal(t, "B1", res.BookingID)
	require.NotNil(t, res.ServiceID)
	assert.Equal(t, "S1", *res.ServiceID)
	require.NotNil(t, res.ProviderName)
	assert.Equal(t, "Taxi BCN", *res.ProviderName)

	require.NotNil(t, trace)
	assert.NotEmpty(t, trace.TraceID)
	assert.Equal(t, srv.URL+"/bookings", trace.Request.URL)
	assert.Equal(t, "CLIENT:abc", trace.Request.Headers["X-Authorization"])
	assert.JSONEq(t, string(gotBody), string(trace.Request.Body))
	require.NotNil(t, trace.Response)
	assert.Equal(t, http.StatusCreated, trace.Response.StatusCode)
}

func TestCreate_BodyKeyOrderAndNulls(t *testing.T) {
	rt := &recordingTransport{status: http.StatusCreated, resp: `{"bookingId":"B1"}`}
	c := newTestClient("https://provider.example/api", &http.Client{Transport: rt})

	_, _, err := c.Create(context.Background(), basePayload(), "C:sig")
	require.NoError(t, err)

	body := string(rt.body)
	keys := []string{
		`"phoneNumber"`, `"clientName"`, `"bookingDate"`, `"special":null`, `"preferences":null`,
		`"providerId":null`, `"urlHook":null`, `"flight":null`, `"account":null`,
		`"accountPassword":null`, `"accountReference":null`, `"lockedPrice":null`,
		`"customerEmail":null`, `"customerPaymentMethodId":null`, `"bookingId":null`,
		`"providerName":null`, `"providerTelephone":null`, `"serviceId":null`,
		`"pickupAddress"`, `"destinationAddress":null`,
	}
	last := -1
	for _, k := range keys {
		idx := strings.Index(body, k)
		require.GreaterOrEqual(t, idx, 0, "key %s missing in %s", k, body)
		assert.Greater(t, idx, last, "key %s out of order", k)
		last = idx
	}

	assert.Contains(t, body, `"pickupAddress":{"latitude":"41.3879","longitude":"2.16992","bldgNumber":"12","street":"Carrer de Mallorca","locality":"Eixample","town":"Barcelona","country":"Spain"}`)
	assert.Equal(t, "*/*", rt.req.Header.Get("Accept"))
}

func TestCreate_NoHTMLEscaping(t *testing.T) {
	rt := &recordingTransport{status: http.StatusCreated, resp: `{"bookingId":"B1"}`}
	c := newTestClient("https://provider.example/api", &http.Client{Transport: rt})

	p := basePayload()
	p.PickupAddress.Street = "Plaça <Catalunya> & Rambla"

	_, _, err := c.Create(context.Background(), p, "C:sig")
	require.NoError(t, err)

	assert.Contains(t, string(rt.body), `"street":"Plaça <Catalunya> & Rambla"`)
}

func TestCreate_NumericBookingID(t *testing.T) {
	rt := &recordingTransport{status: http.StatusCreated, resp: `{"bookingId":987654321012,"serviceId":77}`}
	c := newTestClient("https://provider.example/api", &http.Client{Transport: rt})

	res, _, err := c.Create(context.Background(), basePayload(), "C:sig")
	require.NoError(t, err)

	assert.Equal(t, "987654321012", res.BookingID)
	require.NotNil(t, res.ServiceID)
	assert.Equal(t, "77", *res.ServiceID)
}

func TestCreate_RejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid signature"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.Client())

	res, trace, err := c.Create(context.Background(), basePayload(), "C:sig")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrRejected)

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusBadRequest, rejected.StatusCode)
	assert.Equal(t, `{"message":"Invalid signature"}`, rejected.Body)
	assert.Equal(t, "Invalid signature", rejected.Message())

	require.NotNil(t, trace)
	require.NotNil(t, trace.Response)
	assert.Equal(t, http.StatusBadRequest, trace.Response.StatusCode)
}

func TestCreate_CreatedWithoutBookingID(t *testing.T) {
	rt := &recordingTransport{status: http.StatusCreated, resp: `{"bookingId":""}`}
	c := newTestClient("https://provider.example/api", &http.Client{Transport: rt})

	_, _, err := c.Create(context.Background(), basePayload(), "C:sig")

	assert.ErrorIs(t, err, ErrRejected)
}

func TestCreate_OKInsteadOfCreated(t *testing.T) {
	rt := &recordingTransport{status: http.StatusOK, resp: `{"bookingId":"B1"}`}
	c := newTestClient("https://provider.example/api", &http.Client{Transport: rt})

	_, _, err := c.Create(context.Background(), basePayload(), "C:sig")

	assert.ErrorIs(t, err, ErrRejected)
}

func TestCreate_NonJSONBody(t *testing.T) {
	rt := &recordingTransport{status: http.StatusBadGateway, resp: `<html>Bad gateway</html>`}
	c := newTestClient("https://provider.example/api", &http.Client{Transport: rt})

	_, trace, err := c.Create(context.Background(), basePayload(), "C:sig")

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Nil(t, rejected.Parsed)
	assert.Empty(t, rejected.Message())

	// Тело не JSON: в trace сохраняется как JSON строка
	var body string
	require.NoError(t, json.Unmarshal(trace.Response.Body, &body))
	assert.Equal(t, "<html>Bad gateway</html>", body)
}

func TestCreate_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(url, &http.Client{Timeout: time.Second})

	res, trace, err := c.Create(context.Background(), basePayload(), "C:sig")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrRejected)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "create", transportErr.Operation)

	require.NotNil(t, trace)
	assert.Nil(t, trace.Response)
	assert.NotEmpty(t, trace.Error)
}

func TestCreate_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, 50*time.Millisecond, logger.Nop(), nil)

	_, _, err := c.Create(context.Background(), basePayload(), "C:sig")

	assert.ErrorIs(t, err, ErrTransport)
}

func TestCancel_Success(t *testing.T) {
	rt := &recordingTransport{status: http.StatusOK, resp: `{"status":"cancelled"}`}
	c := newTestClient("https://provider.example/api/", &http.Client{Transport: rt})

	trace, err := c.Cancel(context.Background(), "12345", "C:sig")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, rt.req.Method)
	assert.Equal(t, "https://provider.example/api/bookings/12345", rt.req.URL.String())
	assert.JSONEq(t, `{"bookingId":"12345"}`, string(rt.body))

	// Имя заголовка сохраняется в нижнем регистре
	assert.Equal(t, []string{"C:sig"}, rt.req.Header["x-authorization"])
	_, canonical := rt.req.Header["X-Authorization"]
	assert.False(t, canonical)

	require.NotNil(t, trace)
	assert.Equal(t, "C:sig", trace.Request.Headers["x-authorization"])
	assert.Equal(t, http.StatusOK, trace.Response.StatusCode)
}

func TestCancel_Rejected(t *testing.T) {
	rt := &recordingTransport{status: http.StatusNotFound, resp: `{"error":"Booking not found"}`}
	c := newTestClient("https://provider.example/api", &http.Client{Transport: rt})

	trace, err := c.Cancel(context.Background(), "999", "C:sig")

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusNotFound, rejected.StatusCode)
	assert.Equal(t, "Booking not found", rejected.Message())
	require.NotNil(t, trace)
}

func TestCancel_CreatedIsNotSuccess(t *testing.T) {
	rt := &recordingTransport{status: http.StatusNoContent, resp: ``}
	c := newTestClient("https://provider.example/api", &http.Client{Transport: rt})

	trace, err := c.Cancel(context.Background(), "1", "C:sig")

	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "null", string(trace.Response.Body))
}
