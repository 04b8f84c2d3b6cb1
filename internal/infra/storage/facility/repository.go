package facility

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AmenityService/pkg/psqlbuilder"
)

const tableFacilities = "facilities"

var facilityColumns = []string{
	"id",
	"name",
	"description",
	"category",
	"capacity",
	"area",
	"amenities",
	"is_reservable",
	"hourly_rate",
	"operating_hours",
	"restrictions",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с помещениями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория помещений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое помещение
func (r *Repository) Create(ctx context.Context, f *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableFacilities).
		Columns(
			"name",
			"description",
			"category",
			"capacity",
			"area",
			"amenities",
			"is_reservable",
			"hourly_rate",
			"operating_hours",
			"restrictions",
		).
		Values(
			f.Name,
			f.Description,
			f.Category,
			f.Capacity,
			f.Area,
			pq.Array(nonNil(f.Amenities)),
			f.IsReservable,
			f.HourlyRate,
			f.OperatingHours,
			pq.Array(nonNil(f.Restrictions)),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return f, nil
}

// GetByID получает помещение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facilityColumns...).
		From(tableFacilities).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	f, err := scanFacility(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %v", ErrScanRow, err)
	}

	return f, nil
}

// Update заменяет изменяемые поля помещения и обновляет updated_at
func (r *Repository) Update(ctx context.Context, f *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableFacilities).
		Set("name", f.Name).
		Set("description", f.Description).
		Set("category", f.Category).
		Set("capacity", f.Capacity).
		Set("area", f.Area).
		Set("amenities", pq.Array(nonNil(f.Amenities))).
		Set("is_reservable", f.IsReservable).
		Set("hourly_rate", f.HourlyRate).
		Set("operating_hours", f.OperatingHours).
		Set("restrictions", pq.Array(nonNil(f.Restrictions))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": f.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return f, nil
}

// AddAmenity добавляет удобство в список помещения
// Повторное добавление не изменяет запись
func (r *Repository) AddAmenity(ctx context.Context, id int64, name string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableFacilities).
		Set("amenities", squirrel.Expr("array_append(amenities, ?::text)", name)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("NOT (?::text = ANY(amenities))", name)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddAmenity - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAmenityUpdate(ctx, executor, "AddAmenity", id, query, args)
}

// RemoveAmenity удаляет удобство из списка помещения
// Удаление отсутствующего удобства не изменяет запись
func (r *Repository) RemoveAmenity(ctx context.Context, id int64, name string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableFacilities).
		Set("amenities", squirrel.Expr("array_remove(amenities, ?::text)", name)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("?::text = ANY(amenities)", name)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveAmenity - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAmenityUpdate(ctx, executor, "RemoveAmenity", id, query, args)
}

// execAmenityUpdate выполняет запрос и отличает no-op от отсутствующего помещения
func (r *Repository) execAmenityUpdate(ctx context.Context, executor DBExecutor, op string, id int64, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	exists, err := r.exists(ctx, executor, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrFacilityNotFound
	}

	return nil
}

// Delete удаляет помещение
// Возвращает ErrFacilityInUse, если на помещение ссылаются бронирования
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableFacilities).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
			return ErrFacilityInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrFacilityNotFound
	}

	return nil
}

// FindByFilters ищет помещения по фильтру
// Пустой фильтр возвращает все помещения
func (r *Repository) FindByFilters(ctx context.Context, filter domain.FacilityFilter) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := filterSelect(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByFilters - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByFilters - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	facilities := make([]*domain.Facility, 0)
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: FindByFilters - scan row: %v", ErrScanRow, err)
		}
		facilities = append(facilities, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindByFilters - rows error: %v", ErrScanRow, err)
	}

	return facilities, nil
}

// FindReservable возвращает помещения, доступные для бронирования
func (r *Repository) FindReservable(ctx context.Context) ([]*domain.Facility, error) {
	reservable := true
	return r.FindByFilters(ctx, domain.FacilityFilter{IsReservable: &reservable})
}

func (r *Repository) exists(ctx context.Context, executor DBExecutor, id int64) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From(tableFacilities).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

func filterSelect(filter domain.FacilityFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(facilityColumns...).
		From(tableFacilities).
		OrderBy("name ASC, id ASC")

	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.IsReservable != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_reservable": *filter.IsReservable})
	}
	if filter.MinCapacity != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"capacity": *filter.MinCapacity})
	}
	if filter.Amenity != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("?::text = ANY(amenities)", *filter.Amenity))
	}
	if filter.NameContains != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"name": containsPattern(*filter.NameContains)})
	}

	return selectBuilder
}

// likeEscaper экранирует спецсимволы LIKE, escape-символ по умолчанию в PostgreSQL - обратный слеш
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern строит шаблон поиска подстроки, введенные % и _ ищутся буквально
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFacility(row rowScanner) (*domain.Facility, error) {
	var (
		f          domain.Facility
		area       sql.NullFloat64
		hourlyRate sql.NullFloat64
	)

	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Description,
		&f.Category,
		&f.Capacity,
		&area,
		pq.Array(&f.Amenities),
		&f.IsReservable,
		&hourlyRate,
		&f.OperatingHours,
		pq.Array(&f.Restrictions),
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if area.Valid {
		f.Area = &area.Float64
	}
	if hourlyRate.Valid {
		f.HourlyRate = &hourlyRate.Float64
	}

	return &f, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
