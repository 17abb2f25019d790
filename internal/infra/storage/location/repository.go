package location

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/psqlbuilder"
)

const table = "predefined_locations"

var locationColumns = []string{"id", "name", "address", "latitude", "longitude", "category", "icon", "is_active"}

// Repository репозиторий предопределённых точек
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория точек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActive активные точки, упорядоченные по категории и названию
func (r *Repository) GetActive(ctx context.Context) ([]*domain.PredefinedLocation, error) {
	query, args, err := psqlbuilder.Select(locationColumns...).
		From(table).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("category", "name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	return r.list(ctx, "GetActive", query, args)
}

// Search активные точки, у которых название или адрес содержит term (без учёта регистра)
func (r *Repository) Search(ctx context.Context, term string) ([]*domain.PredefinedLocation, error) {
	query, args, err := searchQuery(term).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	return r.list(ctx, "Search", query, args)
}

func searchQuery(term string) squirrel.SelectBuilder {
	pattern := "%" + escapeLike(term) + "%"
	return psqlbuilder.Select(locationColumns...).
		From(table).
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"address": pattern},
		}).
		OrderBy("name")
}

func (r *Repository) list(ctx context.Context, op, query string, args []interface{}) ([]*domain.PredefinedLocation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.PredefinedLocation, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan location: %v", ErrScanRow, op, err)
		}
		result = append(result, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLocation(row rowScanner) (*domain.PredefinedLocation, error) {
	var loc domain.PredefinedLocation
	var category, icon sql.NullString

	if err := row.Scan(
		&loc.ID,
		&loc.Name,
		&loc.Address,
		&loc.Latitude,
		&loc.Longitude,
		&category,
		&icon,
		&loc.IsActive,
	); err != nil {
		return nil, err
	}

	if category.Valid {
		loc.Category = &category.String
	}
	if icon.Valid {
		loc.Icon = &icon.String
	}
	return &loc, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы LIKE во вводе пользователя
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
