package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AmenityService/pkg/psqlbuilder"
)

const tableReservations = "reservations"

var reservationColumns = []string{
	"id",
	"facility_id",
	"requester_id",
	"start_time",
	"end_time",
	"status",
	"cost",
	"details",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
//
// Пересечение с активным бронированием того же помещения отклоняется ограничением
// reservations_no_overlap и возвращается как ErrOverlap.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableReservations).
		Columns(
			"facility_id",
			"requester_id",
			"start_time",
			"end_time",
			"status",
			"cost",
			"details",
		).
		Values(
			res.FacilityID,
			res.RequesterID,
			res.StartTime,
			res.EndTime,
			res.Status,
			res.Cost,
			res.Details,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, classifyExecError("Create - execute insert", err)
	}

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// Update сохраняет интервал, статус, стоимость и детали бронирования
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("start_time", res.StartTime).
		Set("end_time", res.EndTime).
		Set("status", res.Status).
		Set("cost", res.Cost).
		Set("details", res.Details).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, classifyExecError("Update - execute update", err)
	}

	return res, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyExecError("UpdateStatus - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление, только для административной очистки)
// Для обычной отмены используется UpdateStatus со статусом cancelled
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableReservations).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// FindByFilters получает бронирования с гибкой фильтрацией
//
// Примеры использования:
//
// 1. Активные бронирования пользователя:
//    filter := domain.ReservationFilter{RequesterID: &userID}
//
// 2. Бронирования помещения за период (включая отменённые):
//    filter := domain.ReservationFilter{FacilityID: &facilityID, From: &from, To: &to, IncludeCancelled: true}
func (r *Repository) FindByFilters(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	return r.query(ctx, "FindByFilters", filterSelect(filter))
}

// FindConflicting возвращает активные бронирования помещения, пересекающиеся с [start, end)
// excludeID исключает бронирование из проверки (при обновлении оно не конфликтует само с собой)
//
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельная запись
// дождалась завершения текущей проверки.
func (r *Repository) FindConflicting(ctx context.Context, facilityID int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	return r.query(ctx, "FindConflicting", conflictingSelect(ctx, facilityID, start, end, excludeID))
}

func filterSelect(filter domain.ReservationFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		OrderBy("start_time ASC, id ASC")

	if filter.FacilityID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"facility_id": *filter.FacilityID})
	}
	if filter.RequesterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"requester_id": *filter.RequesterID})
	}

	// Бронирование попадает в период, если пересекается с ним
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	return selectBuilder
}

// conflictingSelect строит запрос пересечения полуоткрытых интервалов:
// start_time < end AND end_time > start, граничащие бронирования не попадают
func conflictingSelect(ctx context.Context, facilityID int64, start, end time.Time, excludeID *int64) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"facility_id": facilityID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC, id ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder
}

// FindByRequester получает все бронирования пользователя, включая отменённые
func (r *Repository) FindByRequester(ctx context.Context, requesterID int64) ([]*domain.Reservation, error) {
	return r.FindByFilters(ctx, domain.ReservationFilter{RequesterID: &requesterID, IncludeCancelled: true})
}

// FindByFacility получает все бронирования помещения, включая отменённые
func (r *Repository) FindByFacility(ctx context.Context, facilityID int64) ([]*domain.Reservation, error) {
	return r.FindByFilters(ctx, domain.ReservationFilter{FacilityID: &facilityID, IncludeCancelled: true})
}

func (r *Repository) query(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return reservations, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res  domain.Reservation
		cost sql.NullFloat64
	)

	err := row.Scan(
		&res.ID,
		&res.FacilityID,
		&res.RequesterID,
		&res.StartTime,
		&res.EndTime,
		&res.Status,
		&cost,
		&res.Details,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cost.Valid {
		res.Cost = &cost.Float64
	}

	return &res, nil
}
