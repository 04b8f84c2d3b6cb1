// Package availability проверяет, свободно ли помещение в заданном интервале
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-AmenityService/internal/infra/storage/facility"
)

// Engine движок доступности помещений
type Engine struct {
	reservationRepo ReservationRepository
	facilityRepo    FacilityRepository
	logger          Logger
}

// NewEngine создает новый экземпляр движка доступности
func NewEngine(reservationRepo ReservationRepository, facilityRepo FacilityRepository, logger Logger) *Engine {
	return &Engine{
		reservationRepo: reservationRepo,
		facilityRepo:    facilityRepo,
		logger:          logger,
	}
}

// FindConflicts возвращает все активные бронирования помещения, пересекающиеся с [start, end)
// excludeID исключает бронирование из проверки (используется при обновлении)
// Внутри транзакции найденные строки блокируются до её завершения
func (e *Engine) FindConflicts(ctx context.Context, facilityID int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	candidates, err := e.reservationRepo.FindConflicting(ctx, facilityID, start, end, excludeID)
	if err != nil {
		e.logger.Error("FindConflicts: repository error for facility=%d window=[%s, %s): %v",
			facilityID, start.Format(time.RFC3339), end.Format(time.RFC3339), err)
		return nil, fmt.Errorf("%w: FindConflicts - repository error: %v", ErrInternal, err)
	}

	return Conflicting(candidates, start, end, excludeID), nil
}

// IsAvailable сообщает, свободно ли помещение в [start, end)
func (e *Engine) IsAvailable(ctx context.Context, facilityID int64, start, end time.Time, excludeID *int64) (bool, error) {
	conflicts, err := e.FindConflicts(ctx, facilityID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// FreeWindows возвращает свободные интервалы помещения в день date в пределах часов работы
func (e *Engine) FreeWindows(ctx context.Context, facilityID int64, date time.Time) ([]domain.TimeWindow, error) {
	facility, err := e.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			e.logger.Warn("FreeWindows: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		e.logger.Error("FreeWindows: failed to get facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: FreeWindows - get facility: %v", ErrInternal, err)
	}

	from, to, err := dayBounds(facility, date)
	if err != nil {
		e.logger.Error("FreeWindows: invalid operating hours for facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: FreeWindows - operating hours: %v", ErrInternal, err)
	}

	busy, err := e.FindConflicts(ctx, facilityID, from, to, nil)
	if err != nil {
		return nil, err
	}

	windows := freeWindows(from, to, busy)
	e.logger.Info("FreeWindows: facility=%d date=%s busy=%d free=%d",
		facilityID, date.Format(domain.DateFormat), len(busy), len(windows))
	return windows, nil
}
