package booking

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/models"
)

type pair struct {
	bookingID uint
	staffID   uint
}

// mockRepo is an in-memory stand-in for the gorm repository, mirroring its
// contract: ErrRecordNotFound for misses, ErrDuplicatedKey for a second
// review on the same booking, upsert semantics on the roster.
type mockRepo struct {
	services      map[uint]*models.Service
	bookings      map[uint]*models.Booking
	staff         map[uint]*models.User
	assignments   map[pair]*models.BookingAssignment
	reviews       []*models.Review
	notifications []*models.Notification

	nextID uint
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		services:    make(map[uint]*models.Service),
		bookings:    make(map[uint]*models.Booking),
		staff:       make(map[uint]*models.User),
		assignments: make(map[pair]*models.BookingAssignment),
	}
}

func (m *mockRepo) GetActiveService(_ context.Context, serviceID uint) (*models.Service, error) {
	svc, ok := m.services[serviceID]
	if !ok || !svc.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return svc, nil
}

func (m *mockRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	m.nextID++
	b.ID = m.nextID
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *mockRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockRepo) SaveBooking(_ context.Context, b *models.Booking) error {
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *mockRepo) GetActiveStaff(_ context.Context, userID uint) (*models.User, error) {
	u, ok := m.staff[userID]
	if !ok || !u.IsStaffMember() || !u.Active || !u.ActiveStaff {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockRepo) UpsertAssignment(_ context.Context, a *models.BookingAssignment) error {
	key := pair{a.BookingID, a.StaffID}
	if existing, ok := m.assignments[key]; ok {
		existing.Role = a.Role
		existing.AssignedAt = a.AssignedAt
		existing.UnassignedAt = nil
		return nil
	}
	m.nextID++
	a.ID = m.nextID
	cp := *a
	m.assignments[key] = &cp
	return nil
}

func (m *mockRepo) GetAssignment(_ context.Context, bookingID, staffID uint) (*models.BookingAssignment, error) {
	a, ok := m.assignments[pair{bookingID, staffID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) DeleteAssignment(_ context.Context, bookingID, staffID uint) error {
	key := pair{bookingID, staffID}
	if _, ok := m.assignments[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, key)
	return nil
}

func (m *mockRepo) ListAssignmentsByBooking(_ context.Context, bookingID uint) ([]models.BookingAssignment, error) {
	var out []models.BookingAssignment
	for key, a := range m.assignments {
		if key.bookingID == bookingID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AssignedAt.Before(out[j].AssignedAt)
	})
	return out, nil
}

func (m *mockRepo) EarliestAssignment(_ context.Context, bookingID uint) (*models.BookingAssignment, error) {
	rows, _ := m.ListAssignmentsByBooking(context.Background(), bookingID)
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (m *mockRepo) CreateReview(_ context.Context, r *models.Review) error {
	for _, existing := range m.reviews {
		if existing.BookingID == r.BookingID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	r.ID = m.nextID
	cp := *r
	m.reviews = append(m.reviews, &cp)
	return nil
}

func (m *mockRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	cp := *n
	m.notifications = append(m.notifications, &cp)
	return nil
}
