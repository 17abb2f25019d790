package create_reservation

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/auriga"
	"github.com/m04kA/TaxiClass-ReservationService/internal/integrations/mailer"
)

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, r)
	if res := args.Get(0); res != nil {
		return res.(*domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProvider struct{ mock.Mock }

func (m *mockProvider) Create(ctx context.Context, p *auriga.BookingPayload, authHeader string) (*auriga.CreateResponse, *auriga.Trace, error) {
	args := m.Called(ctx, p, authHeader)
	var resp *auriga.CreateResponse
	if r := args.Get(0); r != nil {
		resp = r.(*auriga.CreateResponse)
	}
	var trace *auriga.Trace
	if tr := args.Get(1); tr != nil {
		trace = tr.(*auriga.Trace)
	}
	return resp, trace, args.Error(2)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendReservationConfirmation(ctx context.Context, email, name string, data *mailer.ReservationEmail) error {
	return m.Called(ctx, email, name, data).Error(0)
}

func (m *mockNotifier) SendReservationNotificationToAdmin(ctx context.Context, adminEmail string, data *mailer.ReservationEmail) error {
	return m.Called(ctx, adminEmail, data).Error(0)
}

type mockActivities struct{ mock.Mock }

func (m *mockActivities) Log(ctx context.Context, entry *domain.Activity) error {
	return m.Called(ctx, entry).Error(0)
}

// fakeDeferred сохраняет задачи, чтобы тест мог выполнить их вручную
type fakeDeferred struct {
	names []string
	jobs  []func(ctx context.Context) error
	err   error
}

func (f *fakeDeferred) Enqueue(name string, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	f.names = append(f.names, name)
	f.jobs = append(f.jobs, fn)
	return nil
}

// syncRunner выполняет задачу сразу
type syncRunner struct{}

func (syncRunner) Go(fn func()) { fn() }
