package booking

import (
	"context"
	"testing"

	"github.com/elitehands/elitehands-api/internal/authz"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/models"
)

func strPtr(s string) *string { return &s }

func bookingFixture(status string) (*mockRepo, *models.Booking) {
	repo := newMockRepo()
	b := &models.Booking{BookingID: "ext-1", CustomerID: 1, Status: status}
	_ = repo.CreateBooking(context.Background(), b)
	return repo, b
}

func TestCustomerMayOnlyCancel(t *testing.T) {
	repo, b := bookingFixture("pending")
	uc := NewUpdateBooking(repo, testDispatcher())
	owner := authz.Actor{ID: 1, Role: models.RoleCustomer}

	_, err := uc.Execute(context.Background(), UpdateBookingInput{
		Actor:     owner,
		BookingID: b.ID,
		Status:    strPtr("confirmed"),
	})
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("customer confirm err = %v, want invalid_transition", err)
	}

	got, err := uc.Execute(context.Background(), UpdateBookingInput{
		Actor:     owner,
		BookingID: b.ID,
		Status:    strPtr("cancelled"),
	})
	if err != nil {
		t.Fatalf("customer cancel: %v", err)
	}
	if got.Status != "cancelled" {
		t.Fatalf("status = %q, want cancelled", got.Status)
	}
}

func TestStaffFollowTheTransitionTable(t *testing.T) {
	repo, b := bookingFixture("pending")
	uc := NewUpdateBooking(repo, testDispatcher())
	staff := authz.Actor{ID: 3, Role: models.RoleStaff}

	_, err := uc.Execute(context.Background(), UpdateBookingInput{
		Actor:     staff,
		BookingID: b.ID,
		Status:    strPtr("completed"),
	})
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("staff pending->completed err = %v, want invalid_transition", err)
	}

	got, err := uc.Execute(context.Background(), UpdateBookingInput{
		Actor:     staff,
		BookingID: b.ID,
		Status:    strPtr("confirmed"),
	})
	if err != nil {
		t.Fatalf("staff confirm: %v", err)
	}
	if got.Status != "confirmed" {
		t.Fatalf("status = %q, want confirmed", got.Status)
	}
}

func TestAdminJumpsStraightToCompleted(t *testing.T) {
	repo, b := bookingFixture("pending")
	uc := NewUpdateBooking(repo, testDispatcher())
	admin := authz.Actor{ID: 4, Role: models.RoleAdmin}

	got, err := uc.Execute(context.Background(), UpdateBookingInput{
		Actor:     admin,
		BookingID: b.ID,
		Status:    strPtr("completed"),
	})
	if err != nil {
		t.Fatalf("admin jump: %v", err)
	}
	if got.Status != "completed" {
		t.Fatalf("status = %q, want completed", got.Status)
	}

	// Terminal even for admin.
	_, err = uc.Execute(context.Background(), UpdateBookingInput{
		Actor:     admin,
		BookingID: b.ID,
		Status:    strPtr("pending"),
	})
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("admin reopen err = %v, want invalid_transition", err)
	}
}

func TestOtherCustomerGetsNotFound(t *testing.T) {
	repo, b := bookingFixture("pending")
	uc := NewUpdateBooking(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), UpdateBookingInput{
		Actor:     authz.Actor{ID: 2, Role: models.RoleCustomer},
		BookingID: b.ID,
		Status:    strPtr("cancelled"),
	})
	if !httperr.IsBusiness(err, "booking_not_found") {
		t.Fatalf("foreign cancel err = %v, want booking_not_found", err)
	}
}

func TestCustomerEditsOnlyWhilePending(t *testing.T) {
	repo, b := bookingFixture("confirmed")
	uc := NewUpdateBooking(repo, testDispatcher())
	owner := authz.Actor{ID: 1, Role: models.RoleCustomer}

	_, err := uc.Execute(context.Background(), UpdateBookingInput{
		Actor:     owner,
		BookingID: b.ID,
		Address:   strPtr("99 Elsewhere Ave"),
	})
	if !httperr.IsBusiness(err, "not_editable") {
		t.Fatalf("confirmed edit err = %v, want not_editable", err)
	}

	repo2, b2 := bookingFixture("pending")
	uc2 := NewUpdateBooking(repo2, testDispatcher())
	got, err := uc2.Execute(context.Background(), UpdateBookingInput{
		Actor:     owner,
		BookingID: b2.ID,
		Address:   strPtr("99 Elsewhere Ave"),
	})
	if err != nil {
		t.Fatalf("pending edit: %v", err)
	}
	if got.Address != "99 Elsewhere Ave" {
		t.Fatalf("address = %q", got.Address)
	}
}

func TestCancellationNotifiesCustomer(t *testing.T) {
	repo, b := bookingFixture("pending")
	uc := NewUpdateBooking(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), UpdateBookingInput{
		Actor:     authz.Actor{ID: 1, Role: models.RoleCustomer},
		BookingID: b.ID,
		Status:    strPtr("cancelled"),
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if len(repo.notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(repo.notifications))
	}
	n := repo.notifications[0]
	if n.UserID != 1 || n.Type != models.NotificationBookingCancelled {
		t.Fatalf("notification = %+v", n)
	}
}
