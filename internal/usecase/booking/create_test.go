package booking

import (
	"context"
	"testing"

	"github.com/elitehands/elitehands-api/internal/audit"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/models"
)

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nil)
}

func TestCreateBookingSnapshotsPrice(t *testing.T) {
	repo := newMockRepo()
	repo.services[7] = &models.Service{ID: 7, Name: "Deep clean", Price: 120.50, Active: true}

	uc := NewCreateBooking(repo, testDispatcher())

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:    42,
		ServiceID:     7,
		ScheduledDate: "2026-09-15",
		ScheduledTime: "09:30",
		Address:       "12 Main St",
		City:          "Toronto",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if b.CustomerID != 42 {
		t.Errorf("CustomerID = %d, want 42", b.CustomerID)
	}
	if b.Status != "pending" {
		t.Errorf("Status = %q, want pending", b.Status)
	}
	if b.TotalAmount != 120.50 {
		t.Errorf("TotalAmount = %v, want 120.50", b.TotalAmount)
	}
	if b.BookingID == "" {
		t.Error("BookingID should be a fresh uuid")
	}

	// Later price changes must not leak into the stored booking.
	repo.services[7].Price = 200

	stored, err := repo.GetBooking(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if stored.TotalAmount != 120.50 {
		t.Errorf("stored TotalAmount = %v, want the snapshot 120.50", stored.TotalAmount)
	}
}

func TestCreateBookingRejectsInactiveService(t *testing.T) {
	repo := newMockRepo()
	repo.services[7] = &models.Service{ID: 7, Price: 80, Active: false}

	uc := NewCreateBooking(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:    1,
		ServiceID:     7,
		ScheduledDate: "2026-09-15",
		ScheduledTime: "09:30",
	})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("err = %v, want service_not_found", err)
	}
}

func TestCreateBookingValidatesDateAndTime(t *testing.T) {
	repo := newMockRepo()
	repo.services[7] = &models.Service{ID: 7, Price: 80, Active: true}

	uc := NewCreateBooking(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:    1,
		ServiceID:     7,
		ScheduledDate: "15/09/2026",
		ScheduledTime: "09:30",
	})
	if !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("bad date err = %v, want invalid_date", err)
	}

	_, err = uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:    1,
		ServiceID:     7,
		ScheduledDate: "2026-09-15",
		ScheduledTime: "9:30pm",
	})
	if !httperr.IsBusiness(err, "invalid_time") {
		t.Fatalf("bad time err = %v, want invalid_time", err)
	}
}
