package facilities

import (
	"context"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
)

// FacilityRepository интерфейс репозитория помещений
type FacilityRepository interface {
	Create(ctx context.Context, f *domain.Facility) (*domain.Facility, error)
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	Update(ctx context.Context, f *domain.Facility) (*domain.Facility, error)
	Delete(ctx context.Context, id int64) error
	AddAmenity(ctx context.Context, id int64, name string) error
	RemoveAmenity(ctx context.Context, id int64, name string) error
	FindByFilters(ctx context.Context, filter domain.FacilityFilter) ([]*domain.Facility, error)
	FindReservable(ctx context.Context) ([]*domain.Facility, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
