package service

import (
	"context"
	"sync"
	"sync/atomic"

	"ridehail/internal/client"
	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

type MockRideRepository struct {
	mu     sync.RWMutex
	rides  map[int64]*domain.Ride
	nextID int64

	Outbox []*repository.OutboxMessage

	CreateCallCount int32
	UpdateCallCount int32

	CreateError error
	UpdateError error
}

func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{rides: make(map[int64]*domain.Ride)}
}

func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ride.ID = m.nextID
	m.rides[ride.ID] = ride
	return nil
}

func (m *MockRideRepository) CreateWithOutbox(ctx context.Context, ride *domain.Ride, makeMessage func(*domain.Ride) (*repository.OutboxMessage, error)) error {
	if err := m.Create(ctx, ride); err != nil {
		return err
	}
	msg, err := makeMessage(ride)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outbox = append(m.Outbox, msg)
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id int64) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) List(ctx context.Context, filter repository.RideFilter, page repository.PageQuery) (repository.Page[*domain.Ride], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := repository.Page[*domain.Ride]{Page: page.Page, Size: page.Size}
	for _, r := range m.rides {
		copy := *r
		result.Items = append(result.Items, &copy)
	}
	result.TotalItems = int64(len(result.Items))
	return result, nil
}

func (m *MockRideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.rides[ride.ID]
	if !ok {
		return repository.ErrNotFound
	}
	// Status and order time are untouched by this path, like the SQL.
	updated := *ride
	updated.Status = existing.Status
	updated.OrderTime = existing.OrderTime
	m.rides[ride.ID] = &updated
	return nil
}

func (m *MockRideRepository) UpdateStatus(ctx context.Context, id int64, status domain.RideStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return repository.ErrNotFound
	}
	ride.Status = status
	return nil
}

func (m *MockRideRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rides[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rides, id)
	return nil
}

func (m *MockRideRepository) GetRide(id int64) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rides[id]
}

func (m *MockRideRepository) CountRides() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rides)
}

// ──────────────────────────────────────────────
// MOCK RESOLVERS
// ──────────────────────────────────────────────

type MockDriverResolver struct {
	mu      sync.RWMutex
	drivers map[int64]*client.DriverInfo

	ResolveError error
	CallCount    int32
}

func NewMockDriverResolver() *MockDriverResolver {
	return &MockDriverResolver{drivers: make(map[int64]*client.DriverInfo)}
}

func (m *MockDriverResolver) AddDriver(info *client.DriverInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[info.ID] = info
}

func (m *MockDriverResolver) ResolveDriver(ctx context.Context, id int64) (*client.DriverInfo, error) {
	atomic.AddInt32(&m.CallCount, 1)
	if m.ResolveError != nil {
		return nil, m.ResolveError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.drivers[id]
	if !ok {
		return nil, domain.NewNotFoundError("Driver", id)
	}
	return info, nil
}

type MockPassengerResolver struct {
	mu         sync.RWMutex
	passengers map[int64]*client.PassengerInfo

	ResolveError error
	CallCount    int32
}

func NewMockPassengerResolver() *MockPassengerResolver {
	return &MockPassengerResolver{passengers: make(map[int64]*client.PassengerInfo)}
}

func (m *MockPassengerResolver) AddPassenger(info *client.PassengerInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passengers[info.ID] = info
}

func (m *MockPassengerResolver) ResolvePassenger(ctx context.Context, id int64) (*client.PassengerInfo, error) {
	atomic.AddInt32(&m.CallCount, 1)
	if m.ResolveError != nil {
		return nil, m.ResolveError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.passengers[id]
	if !ok {
		return nil, domain.NewNotFoundError("Passenger", id)
	}
	return info, nil
}

// MockNudger records relay nudges.
type MockNudger struct {
	NudgeCount int32
}

func (m *MockNudger) Nudge() {
	atomic.AddInt32(&m.NudgeCount, 1)
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[int64]*domain.Driver
	nextID  int64

	CreateCallCount int32
	UpdateCallCount int32
}

func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{drivers: make(map[int64]*domain.Driver)}
}

func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	if driver.ID > m.nextID {
		m.nextID = driver.ID
	}
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	driver.ID = m.nextID
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) List(ctx context.Context, page repository.PageQuery) (repository.Page[*domain.Driver], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := repository.Page[*domain.Driver]{Page: page.Page, Size: page.Size}
	for _, d := range m.drivers {
		copy := *d
		result.Items = append(result.Items, &copy)
	}
	result.TotalItems = int64(len(result.Items))
	return result, nil
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[driver.ID]; !ok {
		return repository.ErrNotFound
	}
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.drivers, id)
	return nil
}

func (m *MockDriverRepository) PhoneNumberExists(ctx context.Context, phoneNumber string, excludeID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.PhoneNumber == phoneNumber && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockDriverRepository) CarNumberExists(ctx context.Context, number string, excludeDriverID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.ID == excludeDriverID {
			continue
		}
		for _, car := range d.Cars {
			if car.Number == number {
				return true, nil
			}
		}
	}
	return false, nil
}

// ──────────────────────────────────────────────
// MOCK PASSENGER REPOSITORY
// ──────────────────────────────────────────────

type MockPassengerRepository struct {
	mu         sync.RWMutex
	passengers map[int64]*domain.Passenger
	nextID     int64

	CreateCallCount int32
	UpdateCallCount int32
}

func NewMockPassengerRepository() *MockPassengerRepository {
	return &MockPassengerRepository{passengers: make(map[int64]*domain.Passenger)}
}

func (m *MockPassengerRepository) AddPassenger(passenger *domain.Passenger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passengers[passenger.ID] = passenger
	if passenger.ID > m.nextID {
		m.nextID = passenger.ID
	}
}

func (m *MockPassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	passenger.ID = m.nextID
	m.passengers[passenger.ID] = passenger
	return nil
}

func (m *MockPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	passenger, ok := m.passengers[id]
	if !ok || passenger.Deleted {
		return nil, repository.ErrNotFound
	}
	copy := *passenger
	return &copy, nil
}

func (m *MockPassengerRepository) List(ctx context.Context, page repository.PageQuery) (repository.Page[*domain.Passenger], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := repository.Page[*domain.Passenger]{Page: page.Page, Size: page.Size}
	for _, p := range m.passengers {
		if p.Deleted {
			continue
		}
		copy := *p
		result.Items = append(result.Items, &copy)
	}
	result.TotalItems = int64(len(result.Items))
	return result, nil
}

func (m *MockPassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.passengers[passenger.ID]
	if !ok || existing.Deleted {
		return repository.ErrNotFound
	}
	m.passengers[passenger.ID] = passenger
	return nil
}

func (m *MockPassengerRepository) SoftDelete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	passenger, ok := m.passengers[id]
	if !ok || passenger.Deleted {
		return repository.ErrNotFound
	}
	passenger.Deleted = true
	return nil
}

func (m *MockPassengerRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.passengers {
		if !p.Deleted && p.Email == email && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPassengerRepository) PhoneNumberExists(ctx context.Context, phoneNumber string, excludeID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.passengers {
		if !p.Deleted && p.PhoneNumber == phoneNumber && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// ──────────────────────────────────────────────
// MOCK RATING REPOSITORY
// ──────────────────────────────────────────────

type MockRatingRepository struct {
	mu      sync.RWMutex
	ratings map[int64]*domain.Rating
	nextID  int64

	UpsertCallCount int32
	UpsertError     error
}

func NewMockRatingRepository() *MockRatingRepository {
	return &MockRatingRepository{ratings: make(map[int64]*domain.Rating)}
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	rating.ID = m.nextID
	m.ratings[rating.ID] = rating
	return nil
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	atomic.AddInt32(&m.UpsertCallCount, 1)
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.ratings {
		if existing.DriverID == rating.DriverID && existing.UserID == rating.UserID && existing.RideID == rating.RideID {
			rating.ID = existing.ID
			return nil
		}
	}
	m.nextID++
	rating.ID = m.nextID
	m.ratings[rating.ID] = rating
	return nil
}

func (m *MockRatingRepository) GetByID(ctx context.Context, id int64) (*domain.Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rating, ok := m.ratings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *rating
	return &copy, nil
}

func (m *MockRatingRepository) List(ctx context.Context, page repository.PageQuery) (repository.Page[*domain.Rating], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := repository.Page[*domain.Rating]{Page: page.Page, Size: page.Size}
	for _, r := range m.ratings {
		copy := *r
		result.Items = append(result.Items, &copy)
	}
	result.TotalItems = int64(len(result.Items))
	return result, nil
}

func (m *MockRatingRepository) Update(ctx context.Context, rating *domain.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ratings[rating.ID]; !ok {
		return repository.ErrNotFound
	}
	m.ratings[rating.ID] = rating
	return nil
}

func (m *MockRatingRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ratings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.ratings, id)
	return nil
}

func (m *MockRatingRepository) CountRatings() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ratings)
}
