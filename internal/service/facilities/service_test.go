package facilities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-AmenityService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-AmenityService/internal/service/facilities/models"
	"github.com/m04kA/SMC-AmenityService/pkg/ptr"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) Create(ctx context.Context, f *domain.Facility) (*domain.Facility, error) {
	args := m.Called(ctx, f)
	if v := args.Get(0); v != nil {
		return v.(*domain.Facility), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *repoMock) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Facility), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *repoMock) Update(ctx context.Context, f *domain.Facility) (*domain.Facility, error) {
	args := m.Called(ctx, f)
	if v := args.Get(0); v != nil {
		return v.(*domain.Facility), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *repoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) AddAmenity(ctx context.Context, id int64, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *repoMock) RemoveAmenity(ctx context.Context, id int64, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *repoMock) FindByFilters(ctx context.Context, filter domain.FacilityFilter) ([]*domain.Facility, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Facility), args.Error(1)
}

func (m *repoMock) FindReservable(ctx context.Context) ([]*domain.Facility, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Facility), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestCreate_NormalizesInput(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nopLogger{})

	repo.On("Create", mock.Anything, mock.MatchedBy(func(f *domain.Facility) bool {
		return f.Name == "Pool" && assert.ObjectsAreEqual([]string{"Towels", "Lockers"}, f.Amenities)
	})).Return(&domain.Facility{ID: 1, Name: "Pool", Amenities: []string{"Towels", "Lockers"}}, nil)

	resp, err := svc.Create(context.Background(), &models.FacilityRequest{
		Name:       "  Pool ",
		Capacity:   20,
		Amenities:  []string{" Towels", "towels", "Lockers"},
		HourlyRate: ptr.Ptr(50.0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	repo.AssertExpectations(t)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&repoMock{}, nopLogger{})

	cases := map[string]models.FacilityRequest{
		"empty name":        {Name: " "},
		"negative capacity": {Name: "Pool", Capacity: -1},
		"negative rate":     {Name: "Pool", HourlyRate: ptr.Ptr(-1.0)},
		"empty amenity":     {Name: "Pool", Amenities: []string{""}},
		"bad hours": {Name: "Pool", OperatingHours: map[string]domain.DayHours{
			"monday": {Open: "22:00", Close: "08:00"},
		}},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nopLogger{})

	repo.On("Update", mock.Anything, mock.Anything).Return(nil, facilityRepo.ErrFacilityNotFound)

	_, err := svc.Update(context.Background(), 99, &models.FacilityRequest{Name: "Gym"})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestDelete_InUse(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nopLogger{})

	repo.On("Delete", mock.Anything, int64(3)).Return(facilityRepo.ErrFacilityInUse)

	assert.ErrorIs(t, svc.Delete(context.Background(), 3), ErrFacilityInUse)
}

func TestAddAmenity_Idempotent(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Facility{ID: 1, Name: "Pool", Amenities: []string{"Towels"}}, nil)

	resp, err := svc.AddAmenity(context.Background(), 1, "towels")
	require.NoError(t, err)
	assert.Equal(t, []string{"Towels"}, resp.Amenities)
	repo.AssertNotCalled(t, "AddAmenity", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddAmenity_Adds(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Facility{ID: 1, Name: "Pool"}, nil).Once()
	repo.On("AddAmenity", mock.Anything, int64(1), "Sauna").Return(nil)
	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Facility{ID: 1, Name: "Pool", Amenities: []string{"Sauna"}}, nil).Once()

	resp, err := svc.AddAmenity(context.Background(), 1, " Sauna ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sauna"}, resp.Amenities)
	repo.AssertExpectations(t)
}

func TestRemoveAmenity_MissingIsNoop(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Facility{ID: 1, Name: "Pool", Amenities: []string{"Towels"}}, nil)

	_, err := svc.RemoveAmenity(context.Background(), 1, "Sauna")
	require.NoError(t, err)
	repo.AssertNotCalled(t, "RemoveAmenity", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveAmenity_UsesStoredName(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Facility{ID: 1, Name: "Pool", Amenities: []string{"Towels"}}, nil).Once()
	repo.On("RemoveAmenity", mock.Anything, int64(1), "Towels").Return(nil)
	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Facility{ID: 1, Name: "Pool"}, nil).Once()

	resp, err := svc.RemoveAmenity(context.Background(), 1, "TOWELS")
	require.NoError(t, err)
	assert.Empty(t, resp.Amenities)
	repo.AssertExpectations(t)
}

func TestAmenity_FacilityNotFound(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetByID", mock.Anything, int64(5)).Return(nil, facilityRepo.ErrFacilityNotFound)

	_, err := svc.AddAmenity(context.Background(), 5, "Sauna")
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestFindByFilters(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nopLogger{})

	filter := domain.FacilityFilter{Category: ptr.Ptr("sport"), MinCapacity: ptr.Ptr(10)}
	repo.On("FindByFilters", mock.Anything, filter).
		Return([]*domain.Facility{{ID: 1, Name: "Gym"}, {ID: 2, Name: "Pool"}}, nil)

	resp, err := svc.FindByFilters(context.Background(), &models.ListFacilitiesRequest{
		Category:    filter.Category,
		MinCapacity: filter.MinCapacity,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Facilities, 2)
}
