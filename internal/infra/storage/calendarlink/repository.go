package calendarlink

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AmenityService/pkg/psqlbuilder"
)

const tableLinks = "reservation_calendar_links"

// Repository хранит связи бронирований с событиями внешних календарей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория связей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет связь
// Повторная связь того же бронирования или события с календарем возвращает ErrLinkExists
func (r *Repository) Create(ctx context.Context, link *domain.CalendarLink) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableLinks).
		Columns("reservation_id", "calendar_id", "external_event_id", "direction").
		Values(link.ReservationID, link.CalendarID, link.ExternalEventID, link.Direction).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&link.CreatedAt); err != nil {
		return classifyInsertError("Create - execute insert", err)
	}

	return nil
}

// FindExternalIDs возвращает id событий календаря для уже связанных бронирований
// Бронирования без связи в результат не попадают
func (r *Repository) FindExternalIDs(ctx context.Context, calendarID string, reservationIDs []int64) (map[int64]string, error) {
	result := make(map[int64]string, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reservation_id", "external_event_id").
		From(tableLinks).
		Where(squirrel.Eq{"calendar_id": calendarID}).
		Where(squirrel.Eq{"reservation_id": reservationIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindExternalIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindExternalIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			reservationID int64
			externalID    string
		)
		if err := rows.Scan(&reservationID, &externalID); err != nil {
			return nil, fmt.Errorf("%w: FindExternalIDs - scan row: %v", ErrScanRow, err)
		}
		result[reservationID] = externalID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindExternalIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ExistsByExternalID проверяет, связано ли событие календаря с каким-либо бронированием
func (r *Repository) ExistsByExternalID(ctx context.Context, calendarID, externalEventID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableLinks).
		Where(squirrel.Eq{"calendar_id": calendarID, "external_event_id": externalEventID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByExternalID - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByExternalID - scan: %v", ErrScanRow, err)
	}

	return true, nil
}
