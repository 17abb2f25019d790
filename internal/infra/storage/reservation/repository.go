package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/psqlbuilder"
)

const table = "reservations"

var reservationColumns = []string{
	"id",
	"user_id",
	"provider_booking_id",
	"booking_date",
	"client_name",
	"client_phone",
	"pickup_address",
	"destination_address",
	"passengers_details",
	"special_instructions",
	"provider_name",
	"service_id",
	"provider_request",
	"provider_response",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"provider_cancel_response",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет подтверждённое провайдером бронирование
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"provider_booking_id",
			"booking_date",
			"client_name",
			"client_phone",
			"pickup_address",
			"destination_address",
			"passengers_details",
			"special_instructions",
			"provider_name",
			"service_id",
			"provider_request",
			"provider_response",
			"status",
		).
		Values(
			res.UserID,
			res.ProviderBookingID,
			res.BookingDate,
			res.ClientName,
			res.ClientPhone,
			jsonArg(res.PickupAddress),
			jsonArg(res.DestinationAddress),
			jsonArg(res.PassengersDetails),
			res.SpecialInstructions,
			res.ProviderName,
			res.ServiceID,
			jsonArg(res.ProviderRequest),
			jsonArg(res.ProviderResponse),
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByProviderIDAndUser находит бронирование пользователя по ID провайдера.
// Чужое бронирование неотличимо от отсутствующего.
func (r *Repository) GetByProviderIDAndUser(ctx context.Context, providerBookingID string, userID int64) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(table).
		Where(squirrel.Eq{"provider_booking_id": providerBookingID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderIDAndUser - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderIDAndUser - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// Cancel переводит бронирование в cancelled. Обновление выполняется только из статуса confirmed,
// поэтому повторная отмена не перезаписывает данные первой.
func (r *Repository) Cancel(ctx context.Context, c *domain.ReservationCancellation) error {
	query, args, err := cancelQuery(c).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrNotConfirmed
	}

	return nil
}

func cancelQuery(c *domain.ReservationCancellation) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", c.Reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("provider_cancel_response", jsonArg(c.ProviderResponse)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ReservationID, "status": domain.StatusConfirmed})
}

// GetByUserWithFilter страница бронирований пользователя и общее количество по фильтру.
// dayStart начало текущего дня: "upcoming" включает сегодняшние поездки.
func (r *Repository) GetByUserWithFilter(ctx context.Context, f domain.UserReservationsFilter, dayStart time.Time) ([]*domain.Reservation, int, error) {
	where := filterCondition(f, dayStart)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - count: %v", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(table).
		Where(where).
		OrderBy("booking_date DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []*domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - scan reservation: %v", ErrScanRow, err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - rows iteration: %v", ErrScanRow, err)
	}

	return result, total, nil
}

// filterCondition условие выборки: отменённые всегда относятся к прошедшим
func filterCondition(f domain.UserReservationsFilter, dayStart time.Time) squirrel.Sqlizer {
	byUser := squirrel.Eq{"user_id": f.UserID}

	switch f.Filter {
	case domain.FilterUpcoming:
		return squirrel.And{
			byUser,
			squirrel.GtOrEq{"booking_date": dayStart},
			squirrel.NotEq{"status": domain.StatusCancelled},
		}
	case domain.FilterPast:
		return squirrel.And{
			byUser,
			squirrel.Or{
				squirrel.Lt{"booking_date": dayStart},
				squirrel.Eq{"status": domain.StatusCancelled},
			},
		}
	default:
		return byUser
	}
}

// GetStats счётчики бронирований пользователя относительно now и границ текущего дня.
// Завершённые: до начала текущего дня, сегодняшние в них не входят.
func (r *Repository) GetStats(ctx context.Context, userID int64, now, dayStart, dayEnd time.Time) (*domain.ReservationStats, error) {
	query, args, err := statsQuery(userID, now, dayStart, dayEnd).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.ReservationStats
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Upcoming,
		&stats.Today,
		&stats.Completed,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - scan stats: %v", ErrScanRow, err)
	}

	return &stats, nil
}

func statsQuery(userID int64, now, dayStart, dayEnd time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select("COUNT(*)").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE booking_date > ?)", now)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE booking_date >= ? AND booking_date < ?)", dayStart, dayEnd)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE booking_date < ?)", dayStart)).
		From(table).
		Where(squirrel.Eq{"user_id": userID})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var pickup, destination, passengers, providerRequest, providerResponse, cancelResponse []byte
	var special, providerName, serviceID, reason sql.NullString
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.ProviderBookingID,
		&res.BookingDate,
		&res.ClientName,
		&res.ClientPhone,
		&pickup,
		&destination,
		&passengers,
		&special,
		&providerName,
		&serviceID,
		&providerRequest,
		&providerResponse,
		&res.Status,
		&reason,
		&cancelledAt,
		&cancelResponse,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.PickupAddress = rawJSON(pickup)
	res.DestinationAddress = rawJSON(destination)
	res.PassengersDetails = rawJSON(passengers)
	res.ProviderRequest = rawJSON(providerRequest)
	res.ProviderResponse = rawJSON(providerResponse)
	res.ProviderCancelResponse = rawJSON(cancelResponse)
	res.SpecialInstructions = nullString(special)
	res.ProviderName = nullString(providerName)
	res.ServiceID = nullString(serviceID)
	res.CancellationReason = nullString(reason)
	if cancelledAt.Valid {
		t := cancelledAt.Time
		res.CancelledAt = &t
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// jsonArg пустой JSON блок пишется как NULL
func jsonArg(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
