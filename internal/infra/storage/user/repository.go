package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/psqlbuilder"
)

var userColumns = []string{
	"id",
	"email",
	"password_hash",
	"name",
	"phone",
	"account",
	"created_at",
	"updated_at",
}

// Repository репозиторий пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEmail получает пользователя по email (без учёта регистра)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Expr("LOWER(email) = LOWER(?)", email))
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.User, error) {
	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var u domain.User
	var phone, account sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&phone,
		&account,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	u.Phone = nullString(phone)
	u.Account = nullString(account)
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time

	return &u, nil
}

// UpdateProfile обновляет только переданные поля профиля
func (r *Repository) UpdateProfile(ctx context.Context, id int64, upd *domain.UserProfileUpdate) (*domain.User, error) {
	builder, changed := profileUpdateQuery(id, upd)
	if !changed {
		return r.GetByID(ctx, id)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateProfile - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateProfile - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return nil, ErrUserNotFound
	}

	return r.GetByID(ctx, id)
}

// UpdatePassword заменяет хэш пароля
func (r *Repository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query, args, err := passwordUpdateQuery(id, passwordHash).ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePassword - build update query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePassword - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePassword - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func passwordUpdateQuery(id int64, passwordHash string) squirrel.UpdateBuilder {
	return psqlbuilder.Update("users").
		Set("password_hash", passwordHash).
		Set("password_updated_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
}

// profileUpdateQuery UPDATE только по изменённым полям; false, если менять нечего
func profileUpdateQuery(id int64, upd *domain.UserProfileUpdate) (squirrel.UpdateBuilder, bool) {
	builder := psqlbuilder.Update("users").Where(squirrel.Eq{"id": id})
	changed := false

	if upd.Name != nil {
		builder = builder.Set("name", *upd.Name)
		changed = true
	}

	switch {
	case upd.ClearPhone:
		builder = builder.Set("phone", nil)
		changed = true
	case upd.Phone != nil:
		builder = builder.Set("phone", *upd.Phone)
		changed = true
	}

	switch {
	case upd.ClearAccount:
		builder = builder.Set("account", nil)
		changed = true
	case upd.Account != nil:
		builder = builder.Set("account", *upd.Account)
		changed = true
	}

	if changed {
		builder = builder.Set("updated_at", squirrel.Expr("NOW()"))
	}

	return builder, changed
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
