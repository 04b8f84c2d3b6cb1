package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-AmenityService/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/SMC-AmenityService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

// Операции для метрик
const (
	opCreate  = "create"
	opImport  = "import"
	opUpdate  = "update"
	opCancel  = "cancel"
	opConfirm = "confirm"
)

// Config настройки сервиса бронирований
type Config struct {
	Billing              BillingPolicy
	NotificationChannels []string
}

// Service управляет жизненным циклом бронирований
type Service struct {
	facilityRepo    FacilityRepository
	reservationRepo ReservationRepository
	availability    AvailabilityChecker
	locker          FacilityLocker
	txManager       TransactionManager
	notifier        NotificationSender
	metrics         Metrics
	timeProvider    TimeProvider
	cfg             Config
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	facilityRepo FacilityRepository,
	reservationRepo ReservationRepository,
	availability AvailabilityChecker,
	locker FacilityLocker,
	txManager TransactionManager,
	notifier NotificationSender,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.Billing == "" {
		cfg.Billing = RoundFloor
	}
	return &Service{
		facilityRepo:    facilityRepo,
		reservationRepo: reservationRepo,
		availability:    availability,
		locker:          locker,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		timeProvider:    RealTimeProvider{},
		cfg:             cfg,
		logger:          logger,
	}
}

// Create создает бронирование в статусе pending и уведомляет пользователя
//
// Порядок проверок:
// 1. Интервал (start < end)
// 2. Существование помещения
// 3. Помещение доступно для бронирования (до проверки пересечений)
// 4. Часы работы
// 5. Пересечения с активными бронированиями под блокировкой помещения в сериализуемой транзакции
func (s *Service) Create(ctx context.Context, req *models.CreateReservationRequest) (*domain.Reservation, error) {
	res, facility, err := s.create(ctx, "Create", req, domain.StatusPending)
	s.observe(opCreate, err)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, res, "Reservation created", describe(res, facility.Name))
	return res, nil
}

// Import создает бронирование в статусе imported по событию внешнего календаря
// Проверки те же, что и при создании. Уведомление не отправляется: событие уже есть в календаре пользователя.
func (s *Service) Import(ctx context.Context, req *models.CreateReservationRequest) (*domain.Reservation, error) {
	res, _, err := s.create(ctx, "Import", req, domain.StatusImported)
	s.observe(opImport, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) create(
	ctx context.Context,
	op string,
	req *models.CreateReservationRequest,
	status domain.ReservationStatus,
) (*domain.Reservation, *domain.Facility, error) {
	window := req.Window()
	s.logger.Info("%s: facility=%d requester=%d window=%s", op, req.FacilityID, req.RequesterID, window)

	fail := func(err error) (*domain.Reservation, *domain.Facility, error) {
		s.logFailure(op, req.FacilityID, req.RequesterID, window, err)
		return nil, nil, err
	}

	if req.RequesterID <= 0 {
		return fail(fmt.Errorf("%w: requester id is required", ErrInvalidInput))
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return fail(err)
	}

	facility, err := s.getFacility(ctx, op, req.FacilityID)
	if err != nil {
		return fail(err)
	}
	if !facility.IsReservable {
		return fail(fmt.Errorf("%w: facility id=%d", ErrNotReservable, facility.ID))
	}
	if err := validateOperatingHours(facility, req.StartTime, req.EndTime); err != nil {
		return fail(err)
	}

	res := &domain.Reservation{
		FacilityID:  facility.ID,
		RequesterID: req.RequesterID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      status,
		Cost:        ComputeCost(facility.HourlyRate, req.StartTime, req.EndTime, s.cfg.Billing),
		Details:     domain.Details{}.Merge(req.Details),
	}

	created, err := s.persistChecked(ctx, op, res, nil, func(txCtx context.Context) (*domain.Reservation, error) {
		return s.reservationRepo.Create(txCtx, res)
	})
	if err != nil {
		return fail(err)
	}

	s.logger.Info("%s: reservation id=%d created for facility=%d requester=%d status=%s",
		op, created.ID, created.FacilityID, created.RequesterID, created.Status)
	return created, facility, nil
}

// Update изменяет интервал, статус и детали бронирования
// Отмененное бронирование изменить нельзя. Новый интервал проверяется без учета самого бронирования.
// Стоимость пересчитывается по текущей ставке помещения.
func (s *Service) Update(ctx context.Context, req *models.UpdateReservationRequest) (*domain.Reservation, error) {
	const op = "Update"
	window := req.Window()
	s.logger.Info("%s: reservation id=%d window=%s status=%v", op, req.ID, window, req.Status)

	res, err := s.update(ctx, op, req)
	s.observe(opUpdate, err)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, res, "Reservation updated", describe(res, ""))
	return res, nil
}

func (s *Service) update(ctx context.Context, op string, req *models.UpdateReservationRequest) (*domain.Reservation, error) {
	window := req.Window()

	current, err := s.getReservation(ctx, op, req.ID)
	if err != nil {
		s.logFailure(op, 0, 0, window, err)
		return nil, err
	}

	fail := func(err error) (*domain.Reservation, error) {
		s.logFailure(op, current.FacilityID, current.RequesterID, window, err)
		return nil, err
	}

	if !current.CanBeUpdated() {
		return fail(fmt.Errorf("%w: reservation id=%d is cancelled", ErrInvalidTransition, current.ID))
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return fail(err)
	}

	target := current.Status
	switch {
	case req.Status != nil:
		if !req.Status.IsValid() {
			return fail(fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status))
		}
		target = *req.Status
	case current.Status == domain.StatusConfirmed:
		// Изменение подтвержденного бронирования требует повторного подтверждения
		target = domain.StatusPending
	}
	if !domain.CanTransition(current.Status, target) {
		return fail(fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, target))
	}

	facility, err := s.getFacility(ctx, op, current.FacilityID)
	if err != nil {
		return fail(err)
	}

	updated := *current
	updated.StartTime = req.StartTime
	updated.EndTime = req.EndTime
	updated.Status = target
	updated.Cost = ComputeCost(facility.HourlyRate, req.StartTime, req.EndTime, s.cfg.Billing)
	updated.Details = current.Details.Merge(req.Details)

	write := func(txCtx context.Context) (*domain.Reservation, error) {
		return s.reservationRepo.Update(txCtx, &updated)
	}

	var saved *domain.Reservation
	if target == domain.StatusCancelled {
		// Отмененное бронирование не занимает интервал, проверка пересечений не нужна
		saved, err = write(ctx)
		if err != nil {
			err = s.mapWriteError(ctx, op, &updated, &current.ID, err)
		}
	} else {
		if err := validateOperatingHours(facility, req.StartTime, req.EndTime); err != nil {
			return fail(err)
		}
		saved, err = s.persistChecked(ctx, op, &updated, &current.ID, write)
	}
	if err != nil {
		return fail(err)
	}

	s.logger.Info("%s: reservation id=%d updated, status=%s", op, saved.ID, saved.Status)
	return saved, nil
}

// Cancel отменяет бронирование и освобождает интервал
// Повторная отмена ничего не меняет и не отправляет уведомление
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Reservation, error) {
	const op = "Cancel"
	s.logger.Info("%s: reservation id=%d", op, id)

	current, err := s.getReservation(ctx, op, id)
	if err != nil {
		s.observe(opCancel, err)
		return nil, err
	}

	if current.IsCancelled() {
		s.logger.Info("%s: reservation id=%d already cancelled", op, id)
		s.metrics.ObserveReservation(opCancel, "noop")
		return current, nil
	}

	res, err := s.setStatus(ctx, op, current, domain.StatusCancelled)
	s.observe(opCancel, err)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, res, "Reservation cancelled", describe(res, ""))
	return res, nil
}

// Confirm подтверждает ожидающее или импортированное бронирование
func (s *Service) Confirm(ctx context.Context, id int64) (*domain.Reservation, error) {
	const op = "Confirm"
	s.logger.Info("%s: reservation id=%d", op, id)

	current, err := s.getReservation(ctx, op, id)
	if err != nil {
		s.observe(opConfirm, err)
		return nil, err
	}

	if !current.CanBeConfirmed() {
		err := fmt.Errorf("%w: reservation id=%d is %s", ErrInvalidTransition, id, current.Status)
		s.logFailure(op, current.FacilityID, current.RequesterID, current.Window(), err)
		s.observe(opConfirm, err)
		return nil, err
	}

	res, err := s.setStatus(ctx, op, current, domain.StatusConfirmed)
	s.observe(opConfirm, err)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, res, "Reservation confirmed", describe(res, ""))
	return res, nil
}

func (s *Service) setStatus(ctx context.Context, op string, current *domain.Reservation, status domain.ReservationStatus) (*domain.Reservation, error) {
	if err := s.reservationRepo.UpdateStatus(ctx, current.ID, status); err != nil {
		err = s.mapWriteError(ctx, op, current, &current.ID, err)
		s.logFailure(op, current.FacilityID, current.RequesterID, current.Window(), err)
		return nil, err
	}

	res := *current
	res.Status = status
	res.UpdatedAt = s.timeProvider.Now()

	s.logger.Info("%s: reservation id=%d is now %s", op, res.ID, status)
	return &res, nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.getReservation(ctx, "GetByID", id)
}

// FindByFilters получает бронирования по фильтру
func (s *Service) FindByFilters(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		s.logger.Warn("FindByFilters: invalid period %s - %s", filter.From, filter.To)
		return nil, fmt.Errorf("%w: period start must be before period end", ErrInvalidInput)
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *filter.Status)
	}

	list, err := s.reservationRepo.FindByFilters(ctx, filter)
	if err != nil {
		s.logger.Error("FindByFilters: repository error: %v", err)
		return nil, fmt.Errorf("%w: FindByFilters - repository error: %v", ErrPersistence, err)
	}
	return list, nil
}

// FindByRequester получает все бронирования пользователя
func (s *Service) FindByRequester(ctx context.Context, requesterID int64) ([]*domain.Reservation, error) {
	list, err := s.reservationRepo.FindByRequester(ctx, requesterID)
	if err != nil {
		s.logger.Error("FindByRequester: repository error for requester=%d: %v", requesterID, err)
		return nil, fmt.Errorf("%w: FindByRequester - repository error: %v", ErrPersistence, err)
	}

	s.logger.Info("FindByRequester: found %d reservations for requester=%d", len(list), requesterID)
	return list, nil
}

// FindByFacility получает все бронирования помещения
func (s *Service) FindByFacility(ctx context.Context, facilityID int64) ([]*domain.Reservation, error) {
	if _, err := s.getFacility(ctx, "FindByFacility", facilityID); err != nil {
		return nil, err
	}

	list, err := s.reservationRepo.FindByFacility(ctx, facilityID)
	if err != nil {
		s.logger.Error("FindByFacility: repository error for facility=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: FindByFacility - repository error: %v", ErrPersistence, err)
	}

	s.logger.Info("FindByFacility: found %d reservations for facility=%d", len(list), facilityID)
	return list, nil
}

// persistChecked проверяет пересечения и записывает бронирование
// Проверка и запись выполняются под блокировкой помещения в одной сериализуемой транзакции.
func (s *Service) persistChecked(
	ctx context.Context,
	op string,
	res *domain.Reservation,
	excludeID *int64,
	write func(ctx context.Context) (*domain.Reservation, error),
) (*domain.Reservation, error) {
	unlock, err := s.locker.Lock(ctx, res.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - lock facility=%d: %v", ErrInternal, op, res.FacilityID, err)
	}
	defer unlock()

	var saved *domain.Reservation
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflicts, err := s.availability.FindConflicts(txCtx, res.FacilityID, res.StartTime, res.EndTime, excludeID)
		if err != nil {
			return fmt.Errorf("%w: %s - availability check: %v", ErrPersistence, op, err)
		}
		if len(conflicts) > 0 {
			return &SchedulingConflictError{
				FacilityID: res.FacilityID,
				Start:      res.StartTime,
				End:        res.EndTime,
				Conflicts:  conflicts,
			}
		}

		saved, err = write(txCtx)
		return err
	})
	if err != nil {
		return nil, s.mapWriteError(ctx, op, res, excludeID, err)
	}

	return saved, nil
}

// mapWriteError переводит ошибки записи в ошибки сервиса
func (s *Service) mapWriteError(ctx context.Context, op string, res *domain.Reservation, excludeID *int64, err error) error {
	switch {
	case errors.Is(err, ErrSchedulingConflict), errors.Is(err, ErrPersistence):
		return err
	case errors.Is(err, reservationRepo.ErrOverlap):
		// Пересечение отклонено ограничением БД: запись другого экземпляра прошла раньше
		conflicts, ferr := s.availability.FindConflicts(ctx, res.FacilityID, res.StartTime, res.EndTime, excludeID)
		if ferr != nil {
			s.logger.Warn("%s: failed to load conflicts for facility=%d: %v", op, res.FacilityID, ferr)
		}
		return &SchedulingConflictError{
			FacilityID: res.FacilityID,
			Start:      res.StartTime,
			End:        res.EndTime,
			Conflicts:  conflicts,
		}
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		return ErrReservationNotFound
	case errors.Is(err, reservationRepo.ErrFacilityNotFound):
		return ErrFacilityNotFound
	default:
		return fmt.Errorf("%w: %s - %v", ErrPersistence, op, err)
	}
}

func (s *Service) getFacility(ctx context.Context, op string, id int64) (*domain.Facility, error) {
	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("%s: facility id=%d not found", op, id)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("%s: failed to get facility id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get facility: %v", ErrPersistence, op, err)
	}
	return facility, nil
}

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: failed to get reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get reservation: %v", ErrPersistence, op, err)
	}
	return res, nil
}

// notify отправляет уведомление; ошибка доставки не отменяет операцию
func (s *Service) notify(ctx context.Context, res *domain.Reservation, title, message string) {
	ok, err := s.notifier.Send(ctx, res.RequesterID, title, message, s.cfg.NotificationChannels)
	if err != nil || !ok {
		s.logger.Warn("notify: failed to notify requester=%d about reservation id=%d: %v", res.RequesterID, res.ID, err)
	}
}

func (s *Service) logFailure(op string, facilityID, requesterID int64, window domain.TimeWindow, err error) {
	if errors.Is(err, ErrPersistence) || errors.Is(err, ErrInternal) {
		s.logger.Error("%s: failed for facility=%d requester=%d window=%s: %v", op, facilityID, requesterID, window, err)
		return
	}
	s.logger.Warn("%s: rejected for facility=%d requester=%d window=%s: %v", op, facilityID, requesterID, window, err)
}

func (s *Service) observe(operation string, err error) {
	s.metrics.ObserveReservation(operation, outcomeOf(err))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrSchedulingConflict):
		return "conflict"
	case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrFacilityNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrNotReservable):
		return "rejected"
	default:
		return "error"
	}
}

func describe(res *domain.Reservation, facilityName string) string {
	facility := facilityName
	if facility == "" {
		facility = fmt.Sprintf("facility #%d", res.FacilityID)
	}
	msg := fmt.Sprintf("Reservation #%d: %s, %s - %s, status %s",
		res.ID, facility, res.StartTime.Format(time.RFC3339), res.EndTime.Format(time.RFC3339), res.Status)
	if res.Cost != nil {
		msg += fmt.Sprintf(", cost %.2f", *res.Cost)
	}
	return msg
}
