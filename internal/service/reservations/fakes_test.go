package reservations

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AmenityService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-AmenityService/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/SMC-AmenityService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-AmenityService/internal/service/availability"
)

type fakeFacilities struct {
	items map[int64]*domain.Facility
}

func (f *fakeFacilities) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	facility, ok := f.items[id]
	if !ok {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	copied := *facility
	return &copied, nil
}

// fakeReservations хранилище в памяти с той же семантикой пересечений, что и у БД
type fakeReservations struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*domain.Reservation

	// overlapOnWrite имитирует срабатывание ограничения исключения в БД
	overlapOnWrite bool
}

func newFakeReservations() *fakeReservations {
	return &fakeReservations{items: make(map[int64]*domain.Reservation)}
}

func (f *fakeReservations) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.overlapOnWrite {
		return nil, reservationRepo.ErrOverlap
	}

	f.nextID++
	res.ID = f.nextID
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt

	copied := *res
	f.items[res.ID] = &copied
	return res, nil
}

func (f *fakeReservations) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, ok := f.items[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (f *fakeReservations) Update(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.items[res.ID]; !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	if f.overlapOnWrite {
		return nil, reservationRepo.ErrOverlap
	}

	res.UpdatedAt = time.Now()
	copied := *res
	f.items[res.ID] = &copied
	return res, nil
}

func (f *fakeReservations) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, ok := f.items[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.Status = status
	return nil
}

func (f *fakeReservations) FindByFilters(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*domain.Reservation, 0)
	for _, r := range f.items {
		if filter.FacilityID != nil && r.FacilityID != *filter.FacilityID {
			continue
		}
		if filter.RequesterID != nil && r.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.Status == nil && !filter.IncludeCancelled && r.IsCancelled() {
			continue
		}
		if filter.From != nil && !r.EndTime.After(*filter.From) {
			continue
		}
		if filter.To != nil && !r.StartTime.Before(*filter.To) {
			continue
		}
		copied := *r
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (f *fakeReservations) FindByRequester(ctx context.Context, requesterID int64) ([]*domain.Reservation, error) {
	return f.FindByFilters(ctx, domain.ReservationFilter{RequesterID: &requesterID, IncludeCancelled: true})
}

func (f *fakeReservations) FindByFacility(ctx context.Context, facilityID int64) ([]*domain.Reservation, error) {
	return f.FindByFilters(ctx, domain.ReservationFilter{FacilityID: &facilityID, IncludeCancelled: true})
}

func (f *fakeReservations) FindConflicting(ctx context.Context, facilityID int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	all, err := f.FindByFilters(ctx, domain.ReservationFilter{FacilityID: &facilityID})
	if err != nil {
		return nil, err
	}
	return availability.Conflicting(all, start, end, excludeID), nil
}

// active возвращает все не отмененные бронирования помещения
func (f *fakeReservations) active(facilityID int64) []*domain.Reservation {
	list, _ := f.FindByFilters(context.Background(), domain.ReservationFilter{FacilityID: &facilityID})
	return list
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// countingAvailability считает обращения к проверке пересечений
type countingAvailability struct {
	next  AvailabilityChecker
	mu    sync.Mutex
	calls int
}

func (c *countingAvailability) FindConflicts(ctx context.Context, facilityID int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.next.FindConflicts(ctx, facilityID, start, end, excludeID)
}

type notifierMock struct {
	mock.Mock
}

func (m *notifierMock) Send(ctx context.Context, requesterID int64, title, message string, channels []string) (bool, error) {
	args := m.Called(ctx, requesterID, title, message, channels)
	return args.Bool(0), args.Error(1)
}

type sentNotification struct {
	RequesterID int64
	Title       string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (r *recordingNotifier) Send(_ context.Context, requesterID int64, title, _ string, _ []string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentNotification{RequesterID: requesterID, Title: title})
	return true, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
