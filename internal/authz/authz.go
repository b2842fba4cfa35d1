// Package authz holds every role/ownership rule as a pure predicate over the
// acting identity and the target resource. Handlers evaluate the predicate
// before touching the database for writes, so the whole rule set is testable
// without HTTP or storage.
package authz

import "github.com/elitehands/elitehands-api/internal/models"

// Actor is the authenticated identity, threaded explicitly instead of read
// from ambient request state.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsStaff() bool {
	return a.Role == models.RoleStaff || a.Role == models.RoleAdmin
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// ---- Bookings ----

// CanViewBooking: staff/admin see everything, customers only their own.
func CanViewBooking(a Actor, b *models.Booking) bool {
	return a.IsStaff() || b.CustomerID == a.ID
}

func CanWriteBooking(a Actor, b *models.Booking) bool {
	return a.IsStaff() || b.CustomerID == a.ID
}

func CanDeleteBooking(a Actor, b *models.Booking) bool {
	return a.IsStaff() || b.CustomerID == a.ID
}

// ---- Assignments ----

func CanManageAssignments(a Actor) bool {
	return a.IsAdmin()
}

func CanListAssignments(a Actor, b *models.Booking) bool {
	return a.IsStaff() || b.CustomerID == a.ID
}

// ---- Reviews ----

func CanReviewBooking(a Actor, b *models.Booking) bool {
	return a.Role == models.RoleCustomer && b.CustomerID == a.ID
}

func CanEditReview(a Actor, r *models.Review) bool {
	return r.CustomerID == a.ID
}

func CanModerateReviews(a Actor) bool {
	return a.IsAdmin()
}

// ---- Notifications ----

func CanAccessNotification(a Actor, n *models.Notification) bool {
	return n.UserID == a.ID
}

// ---- Messages ----

// CanAccessMessage: each party sees only its own side of the thread.
func CanAccessMessage(a Actor, m *models.Message) bool {
	if a.IsStaff() {
		return m.StaffID == a.ID
	}
	return m.CustomerID == a.ID
}

// ---- Leave requests ----

func CanSubmitLeave(a Actor) bool {
	return a.IsStaff()
}

func CanDecideLeave(a Actor) bool {
	return a.IsAdmin()
}

// ---- Staff directory / admin surface ----

func CanViewStaffDirectory(a Actor) bool {
	return a.IsStaff()
}

func CanManageStaff(a Actor) bool {
	return a.IsAdmin()
}

func CanRegisterStaff(a Actor) bool {
	return a.IsAdmin()
}

func CanEditSettings(a Actor) bool {
	return a.IsAdmin()
}

func CanViewAnalytics(a Actor) bool {
	return a.IsAdmin()
}
