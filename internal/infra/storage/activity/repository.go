package activity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/psqlbuilder"
)

const table = "activity_logs"

// Repository журнал действий пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал
func (r *Repository) Create(ctx context.Context, a *domain.Activity) error {
	query, args, err := insertQuery(a).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	a.CreatedAt = createdAt.Time

	return nil
}

func insertQuery(a *domain.Activity) squirrel.InsertBuilder {
	var metadata interface{}
	if len(a.Metadata) > 0 {
		metadata = string(a.Metadata)
	}

	return psqlbuilder.Insert(table).
		Columns("user_id", "activity_type", "activity_description", "ip_address", "user_agent", "metadata").
		Values(a.UserID, a.Type, a.Description, a.IPAddress, a.UserAgent, metadata).
		Suffix("RETURNING id, created_at")
}

// GetByUser последние записи пользователя, новые первыми
func (r *Repository) GetByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Activity, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"activity_type",
		"activity_description",
		"ip_address",
		"user_agent",
		"metadata",
		"created_at",
	).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Activity, 0, limit)
	for rows.Next() {
		var a domain.Activity
		var ip, ua sql.NullString
		var metadata []byte

		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Description, &ip, &ua, &metadata, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByUser - scan activity: %v", ErrScanRow, err)
		}
		if ip.Valid {
			a.IPAddress = &ip.String
		}
		if ua.Valid {
			a.UserAgent = &ua.String
		}
		if len(metadata) > 0 {
			a.Metadata = json.RawMessage(metadata)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUser - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// CountByUser общее количество записей пользователя
func (r *Repository) CountByUser(ctx context.Context, userID int64) (int, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByUser - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: CountByUser - scan count: %v", ErrScanRow, err)
	}
	return total, nil
}
