// Package calendarsync синхронизирует бронирования с внешним календарем в обе стороны
package calendarsync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/internal/infra/storage/calendarlink"
	"github.com/m04kA/SMC-AmenityService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations"
	"github.com/m04kA/SMC-AmenityService/internal/service/reservations/models"
)

// Service мост между бронированиями и внешним календарем
type Service struct {
	reservations ReservationService
	facilityRepo FacilityRepository
	linkRepo     LinkRepository
	calendar     CalendarClient
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр синхронизации
func NewService(
	reservations ReservationService,
	facilityRepo FacilityRepository,
	linkRepo LinkRepository,
	calendar CalendarClient,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservations: reservations,
		facilityRepo: facilityRepo,
		linkRepo:     linkRepo,
		calendar:     calendar,
		metrics:      metrics,
		logger:       logger,
	}
}

// Export создает события календаря для активных бронирований пользователя в окне
// Бронирования, уже связанные с календарем, пропускаются.
// Ошибка календаря прерывает пакет: возвращаются созданные до неё события и ErrExternalService.
func (s *Service) Export(ctx context.Context, req Request) (*ExportResult, error) {
	s.logger.Info("Export: requester=%d calendar=%s window=%s", req.RequesterID, req.CalendarID, req.Window)

	result := &ExportResult{Created: []ExportedReservation{}, Skipped: []int64{}}

	if err := validateRequest(req); err != nil {
		s.logger.Warn("Export: validation failed: %v", err)
		return result, err
	}

	list, err := s.reservations.FindByFilters(ctx, domain.ReservationFilter{
		RequesterID: &req.RequesterID,
		From:        &req.Window.Start,
		To:          &req.Window.End,
	})
	if err != nil {
		s.logger.Error("Export: failed to load reservations for requester=%d: %v", req.RequesterID, err)
		return result, fmt.Errorf("%w: Export - load reservations: %v", ErrPersistence, err)
	}

	ids := make([]int64, 0, len(list))
	for _, r := range list {
		ids = append(ids, r.ID)
	}
	linked, err := s.linkRepo.FindExternalIDs(ctx, req.CalendarID, ids)
	if err != nil {
		s.logger.Error("Export: failed to load links for calendar=%s: %v", req.CalendarID, err)
		return result, fmt.Errorf("%w: Export - load links: %v", ErrPersistence, err)
	}

	names := make(map[int64]string)
	for _, res := range list {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("Export: stopped after %d events: %v", len(result.Created), err)
			return result, err
		}

		if extID, ok := linked[res.ID]; ok {
			s.logger.Info("Export: reservation id=%d already linked to event id=%s", res.ID, extID)
			result.Skipped = append(result.Skipped, res.ID)
			s.metrics.ObserveSyncEvent(string(DirectionExport), "skipped")
			continue
		}

		event := toExternalEvent(res, s.facilityName(ctx, names, res.FacilityID))
		extID, err := s.calendar.CreateEvent(ctx, req.CalendarID, event)
		if err != nil {
			s.metrics.ObserveSyncEvent(string(DirectionExport), "failed")
			s.logger.Error("Export: failed to create event for reservation id=%d facility=%d requester=%d window=%s: %v",
				res.ID, res.FacilityID, res.RequesterID, res.Window(), err)
			return result, s.mapCalendarError("Export", err)
		}

		link := &domain.CalendarLink{
			ReservationID:   res.ID,
			CalendarID:      req.CalendarID,
			ExternalEventID: extID,
			Direction:       domain.LinkExported,
		}
		if err := s.linkRepo.Create(ctx, link); err != nil {
			s.logger.Error("Export: event id=%s created but link for reservation id=%d not saved: %v", extID, res.ID, err)
			return result, fmt.Errorf("%w: Export - save link: %v", ErrPersistence, err)
		}

		result.Created = append(result.Created, ExportedReservation{ReservationID: res.ID, ExternalEventID: extID})
		s.metrics.ObserveSyncEvent(string(DirectionExport), "created")
	}

	s.logger.Info("Export: requester=%d calendar=%s created=%d skipped=%d",
		req.RequesterID, req.CalendarID, len(result.Created), len(result.Skipped))
	return result, nil
}

// Import создает бронирования со статусом imported по событиям календаря
// Помещение определяется по месту события "Facility #<id>". События без такого места,
// уже импортированные, пересекающиеся с бронированиями или указывающие на недоступное помещение
// пропускаются с указанием причины.
func (s *Service) Import(ctx context.Context, req Request) (*ImportResult, error) {
	s.logger.Info("Import: requester=%d calendar=%s window=%s", req.RequesterID, req.CalendarID, req.Window)

	result := &ImportResult{Imported: []*domain.Reservation{}, Skipped: []SkippedEvent{}}

	if err := validateRequest(req); err != nil {
		s.logger.Warn("Import: validation failed: %v", err)
		return result, err
	}

	events, err := s.calendar.ListEvents(ctx, req.CalendarID, req.Window)
	if err != nil {
		s.logger.Error("Import: failed to list events of calendar=%s: %v", req.CalendarID, err)
		return result, s.mapCalendarError("Import", err)
	}

	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("Import: stopped after %d events: %v", len(result.Imported), err)
			return result, err
		}

		reason, err := s.importEvent(ctx, req, ev, result)
		if err != nil {
			s.metrics.ObserveSyncEvent(string(DirectionImport), "failed")
			return result, err
		}
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedEvent{ExternalEventID: ev.ID, Reason: reason})
			s.metrics.ObserveSyncEvent(string(DirectionImport), "skipped")
			continue
		}
		s.metrics.ObserveSyncEvent(string(DirectionImport), "imported")
	}

	s.logger.Info("Import: requester=%d calendar=%s imported=%d skipped=%d",
		req.RequesterID, req.CalendarID, len(result.Imported), len(result.Skipped))
	return result, nil
}

// importEvent возвращает причину пропуска или ошибку, прерывающую импорт
func (s *Service) importEvent(ctx context.Context, req Request, ev domain.ExternalEvent, result *ImportResult) (string, error) {
	facilityID, ok := ParseFacilityLocation(ev.LocationOrEmpty())
	if !ok {
		s.logger.Warn("Import: event id=%s has unmapped location %q", ev.ID, ev.LocationOrEmpty())
		return SkipUnmappedLocation, nil
	}

	exists, err := s.linkRepo.ExistsByExternalID(ctx, req.CalendarID, ev.ID)
	if err != nil {
		s.logger.Error("Import: failed to check link for event id=%s: %v", ev.ID, err)
		return "", fmt.Errorf("%w: Import - check link: %v", ErrPersistence, err)
	}
	if exists {
		s.logger.Info("Import: event id=%s already linked", ev.ID)
		return SkipAlreadyLinked, nil
	}

	details := domain.Details{
		domain.DetailExternalEventID:    ev.ID,
		domain.DetailExternalCalendarID: req.CalendarID,
		domain.DetailExternalTitle:      ev.Title,
	}
	if ev.Description != nil {
		details[domain.DetailExternalDescription] = *ev.Description
	}

	res, err := s.reservations.Import(ctx, &models.CreateReservationRequest{
		FacilityID:  facilityID,
		RequesterID: req.RequesterID,
		StartTime:   ev.Start,
		EndTime:     ev.End,
		Details:     details,
	})
	switch {
	case err == nil:
	case errors.Is(err, reservations.ErrSchedulingConflict):
		s.logger.Warn("Import: event id=%s conflicts with reservations of facility=%d", ev.ID, facilityID)
		return SkipConflict, nil
	case errors.Is(err, reservations.ErrFacilityNotFound):
		s.logger.Warn("Import: event id=%s refers to unknown facility=%d", ev.ID, facilityID)
		return SkipUnknownFacility, nil
	case errors.Is(err, reservations.ErrNotReservable):
		s.logger.Warn("Import: event id=%s refers to not reservable facility=%d", ev.ID, facilityID)
		return SkipNotReservable, nil
	case errors.Is(err, reservations.ErrInvalidInput):
		s.logger.Warn("Import: event id=%s rejected: %v", ev.ID, err)
		return SkipInvalid, nil
	default:
		s.logger.Error("Import: failed to import event id=%s facility=%d requester=%d: %v",
			ev.ID, facilityID, req.RequesterID, err)
		return "", fmt.Errorf("%w: Import - create reservation: %v", ErrPersistence, err)
	}

	link := &domain.CalendarLink{
		ReservationID:   res.ID,
		CalendarID:      req.CalendarID,
		ExternalEventID: ev.ID,
		Direction:       domain.LinkImported,
	}
	if err := s.linkRepo.Create(ctx, link); err != nil && !errors.Is(err, calendarlink.ErrLinkExists) {
		s.logger.Error("Import: reservation id=%d created but link to event id=%s not saved: %v", res.ID, ev.ID, err)
		return "", fmt.Errorf("%w: Import - save link: %v", ErrPersistence, err)
	}

	result.Imported = append(result.Imported, res)
	s.logger.Info("Import: event id=%s imported as reservation id=%d", ev.ID, res.ID)
	return "", nil
}

// Sync выполняет экспорт, затем импорт
// Направления не объединены в транзакцию: результат экспорта сохраняется, даже если импорт завершился ошибкой.
func (s *Service) Sync(ctx context.Context, req Request, direction Direction) (*SyncResult, error) {
	if !direction.IsValid() {
		return &SyncResult{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, direction)
	}

	result := &SyncResult{}

	if direction == DirectionExport || direction == DirectionBoth {
		exported, err := s.Export(ctx, req)
		result.Export = exported
		if err != nil {
			return result, err
		}
	}

	if direction == DirectionImport || direction == DirectionBoth {
		imported, err := s.Import(ctx, req)
		result.Import = imported
		if err != nil {
			return result, err
		}
	}

	return result, nil
}

func (s *Service) facilityName(ctx context.Context, cache map[int64]string, facilityID int64) string {
	if name, ok := cache[facilityID]; ok {
		return name
	}

	name := FacilityLocation(facilityID)
	facility, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		s.logger.Warn("Export: failed to get facility id=%d, using %q: %v", facilityID, name, err)
	} else {
		name = facility.Name
	}

	cache[facilityID] = name
	return name
}

func (s *Service) mapCalendarError(op string, err error) error {
	if errors.Is(err, googlecalendar.ErrCalendarNotFound) {
		return fmt.Errorf("%w: %s - %v", ErrCalendarNotFound, op, err)
	}
	return fmt.Errorf("%w: %s - %v", ErrExternalService, op, err)
}

func validateRequest(req Request) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requester id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CalendarID) == "" {
		return fmt.Errorf("%w: calendar id is required", ErrInvalidInput)
	}
	if err := req.Window.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func toExternalEvent(res *domain.Reservation, facilityName string) domain.ExternalEvent {
	description := fmt.Sprintf("Status: %s", res.Status)
	if res.Cost != nil {
		description += fmt.Sprintf("\nCost: %.2f", *res.Cost)
	}

	return domain.ExternalEvent{
		Title:       fmt.Sprintf("%s reservation #%d", facilityName, res.ID),
		Start:       res.StartTime,
		End:         res.EndTime,
		Description: &description,
		Location:    &facilityName,
	}
}
