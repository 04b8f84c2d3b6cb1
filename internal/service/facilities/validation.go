package facilities

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	"github.com/m04kA/SMC-AmenityService/internal/service/facilities/models"
)

// buildFacility проверяет запрос и собирает из него domain модель
// Удобства и ограничения очищаются от пробелов, дубликаты (без учета регистра) отбрасываются
func buildFacility(req *models.FacilityRequest) (*domain.Facility, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxFacilityNameLength {
		return nil, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxFacilityNameLength)
	}
	if req.Capacity < 0 || req.Capacity > domain.MaxCapacity {
		return nil, fmt.Errorf("%w: capacity must be between 0 and %d", ErrInvalidInput, domain.MaxCapacity)
	}
	if req.Area != nil && *req.Area < 0 {
		return nil, fmt.Errorf("%w: area must not be negative", ErrInvalidInput)
	}
	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly rate must not be negative", ErrInvalidInput)
	}

	hours := domain.OperatingHours(req.OperatingHours)
	if err := hours.Validate(); err != nil {
		return nil, fmt.Errorf("%w: operating hours: %v", ErrInvalidInput, err)
	}

	amenities, err := normalizeNames(req.Amenities, "amenity")
	if err != nil {
		return nil, err
	}
	restrictions, err := normalizeNames(req.Restrictions, "restriction")
	if err != nil {
		return nil, err
	}

	return &domain.Facility{
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		Category:       strings.TrimSpace(req.Category),
		Capacity:       req.Capacity,
		Area:           req.Area,
		Amenities:      amenities,
		IsReservable:   req.IsReservable,
		HourlyRate:     req.HourlyRate,
		OperatingHours: hours,
		Restrictions:   restrictions,
	}, nil
}

func normalizeAmenity(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: amenity name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxAmenityNameLength {
		return "", fmt.Errorf("%w: amenity name exceeds %d characters", ErrInvalidInput, domain.MaxAmenityNameLength)
	}
	return name, nil
}

func normalizeNames(values []string, kind string) ([]string, error) {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, fmt.Errorf("%w: empty %s", ErrInvalidInput, kind)
		}
		if len(v) > domain.MaxAmenityNameLength {
			return nil, fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidInput, kind, domain.MaxAmenityNameLength)
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, v)
	}

	return result, nil
}
