package facilities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	facilityRepo "github.com/m04kA/SMC-AmenityService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-AmenityService/internal/service/facilities/models"
)

// Service каталог помещений
type Service struct {
	facilityRepo FacilityRepository
	logger       Logger
}

// NewService создает новый экземпляр каталога помещений
func NewService(facilityRepo FacilityRepository, logger Logger) *Service {
	return &Service{
		facilityRepo: facilityRepo,
		logger:       logger,
	}
}

// Create создает новое помещение
func (s *Service) Create(ctx context.Context, req *models.FacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("Create: creating facility name=%q category=%q", req.Name, req.Category)

	facility, err := buildFacility(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.facilityRepo.Create(ctx, facility)
	if err != nil {
		s.logger.Error("Create: repository error for facility name=%q: %v", facility.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: facility id=%d created", created.ID)
	return models.FromDomainFacility(created), nil
}

// Update заменяет изменяемые поля помещения
func (s *Service) Update(ctx context.Context, id int64, req *models.FacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("Update: updating facility id=%d", id)

	facility, err := buildFacility(req)
	if err != nil {
		s.logger.Warn("Update: validation failed for facility id=%d: %v", id, err)
		return nil, err
	}
	facility.ID = id

	updated, err := s.facilityRepo.Update(ctx, facility)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: facility id=%d updated", id)
	return models.FromDomainFacility(updated), nil
}

// Delete удаляет помещение
// Помещение с бронированиями удалить нельзя
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting facility id=%d", id)

	if err := s.facilityRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.logger.Info("Delete: facility id=%d deleted", id)
	return nil
}

// GetByID получает помещение по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.FacilityResponse, error) {
	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return models.FromDomainFacility(facility), nil
}

// FindByFilters ищет помещения по фильтру
func (s *Service) FindByFilters(ctx context.Context, req *models.ListFacilitiesRequest) (*models.FacilityListResponse, error) {
	list, err := s.facilityRepo.FindByFilters(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("FindByFilters: repository error: %v", err)
		return nil, fmt.Errorf("%w: FindByFilters - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("FindByFilters: found %d facilities", len(list))
	return models.FromDomainFacilityList(list), nil
}

// FindReservable возвращает помещения, доступные для бронирования
func (s *Service) FindReservable(ctx context.Context) (*models.FacilityListResponse, error) {
	list, err := s.facilityRepo.FindReservable(ctx)
	if err != nil {
		s.logger.Error("FindReservable: repository error: %v", err)
		return nil, fmt.Errorf("%w: FindReservable - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainFacilityList(list), nil
}

// AddAmenity добавляет удобство
// Удобство, которое уже есть у помещения (без учета регистра), повторно не добавляется
func (s *Service) AddAmenity(ctx context.Context, id int64, name string) (*models.FacilityResponse, error) {
	name, err := normalizeAmenity(name)
	if err != nil {
		s.logger.Warn("AddAmenity: validation failed for facility id=%d: %v", id, err)
		return nil, err
	}

	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("AddAmenity", id, err)
	}

	if facility.HasAmenity(name) {
		s.logger.Info("AddAmenity: facility id=%d already has amenity %q", id, name)
		return models.FromDomainFacility(facility), nil
	}

	if err := s.facilityRepo.AddAmenity(ctx, id, name); err != nil {
		return nil, s.mapRepoError("AddAmenity", id, err)
	}

	s.logger.Info("AddAmenity: amenity %q added to facility id=%d", name, id)
	return s.GetByID(ctx, id)
}

// RemoveAmenity удаляет удобство
// Удаление отсутствующего удобства ничего не меняет
func (s *Service) RemoveAmenity(ctx context.Context, id int64, name string) (*models.FacilityResponse, error) {
	name, err := normalizeAmenity(name)
	if err != nil {
		s.logger.Warn("RemoveAmenity: validation failed for facility id=%d: %v", id, err)
		return nil, err
	}

	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("RemoveAmenity", id, err)
	}

	// Удаляем значение в том виде, в котором оно хранится
	stored := ""
	for _, a := range facility.Amenities {
		if strings.EqualFold(a, name) {
			stored = a
			break
		}
	}
	if stored == "" {
		s.logger.Info("RemoveAmenity: facility id=%d has no amenity %q", id, name)
		return models.FromDomainFacility(facility), nil
	}

	if err := s.facilityRepo.RemoveAmenity(ctx, id, stored); err != nil {
		return nil, s.mapRepoError("RemoveAmenity", id, err)
	}

	s.logger.Info("RemoveAmenity: amenity %q removed from facility id=%d", stored, id)
	return s.GetByID(ctx, id)
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, facilityRepo.ErrFacilityNotFound):
		s.logger.Warn("%s: facility id=%d not found", op, id)
		return ErrFacilityNotFound
	case errors.Is(err, facilityRepo.ErrFacilityInUse):
		s.logger.Warn("%s: facility id=%d is referenced by reservations", op, id)
		return ErrFacilityInUse
	default:
		s.logger.Error("%s: repository error for facility id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
