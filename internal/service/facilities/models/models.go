package models

import (
	"time"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

// Request модели

// FacilityRequest поля помещения для создания и полной замены
type FacilityRequest struct {
	Name           string                     `json:"name"`
	Description    string                     `json:"description"`
	Category       string                     `json:"category"`
	Capacity       int                        `json:"capacity"`
	Area           *float64                   `json:"area,omitempty"`       // м²
	Amenities      []string                   `json:"amenities,omitempty"`
	IsReservable   bool                       `json:"isReservable"`
	HourlyRate     *float64                   `json:"hourlyRate,omitempty"` // nil = бесплатно
	OperatingHours map[string]domain.DayHours `json:"operatingHours,omitempty"`
	Restrictions   []string                   `json:"restrictions,omitempty"`
}

// ListFacilitiesRequest фильтры списка помещений
// Все поля опциональны
type ListFacilitiesRequest struct {
	Category     *string
	IsReservable *bool
	MinCapacity  *int
	Amenity      *string
	NameContains *string
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListFacilitiesRequest) ToDomainFilter() domain.FacilityFilter {
	return domain.FacilityFilter{
		Category:     r.Category,
		IsReservable: r.IsReservable,
		MinCapacity:  r.MinCapacity,
		Amenity:      r.Amenity,
		NameContains: r.NameContains,
	}
}

// Response модели

// FacilityResponse ответ с данными помещения
type FacilityResponse struct {
	ID             int64                      `json:"id"`
	Name           string                     `json:"name"`
	Description    string                     `json:"description"`
	Category       string                     `json:"category"`
	Capacity       int                        `json:"capacity"`
	Area           *float64                   `json:"area,omitempty"`
	Amenities      []string                   `json:"amenities"`
	IsReservable   bool                       `json:"isReservable"`
	HourlyRate     *float64                   `json:"hourlyRate,omitempty"`
	OperatingHours map[string]domain.DayHours `json:"operatingHours"`
	Restrictions   []string                   `json:"restrictions"`
	CreatedAt      time.Time                  `json:"createdAt"`
	UpdatedAt      time.Time                  `json:"updatedAt"`
}

// FacilityListResponse ответ со списком помещений
type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
}

// Методы конвертации

// FromDomainFacility конвертирует domain модель в DTO
func FromDomainFacility(f *domain.Facility) *FacilityResponse {
	if f == nil {
		return nil
	}

	hours := map[string]domain.DayHours(f.OperatingHours)
	if hours == nil {
		hours = map[string]domain.DayHours{}
	}

	return &FacilityResponse{
		ID:             f.ID,
		Name:           f.Name,
		Description:    f.Description,
		Category:       f.Category,
		Capacity:       f.Capacity,
		Area:           f.Area,
		Amenities:      orEmpty(f.Amenities),
		IsReservable:   f.IsReservable,
		HourlyRate:     f.HourlyRate,
		OperatingHours: hours,
		Restrictions:   orEmpty(f.Restrictions),
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

// FromDomainFacilityList конвертирует список domain моделей в DTO
func FromDomainFacilityList(list []*domain.Facility) *FacilityListResponse {
	resp := &FacilityListResponse{Facilities: make([]FacilityResponse, 0, len(list))}
	for _, f := range list {
		resp.Facilities = append(resp.Facilities, *FromDomainFacility(f))
	}
	return resp
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
