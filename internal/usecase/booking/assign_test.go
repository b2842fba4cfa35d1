package booking

import (
	"context"
	"testing"

	"github.com/elitehands/elitehands-api/internal/authz"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/models"
)

func rosterFixture() (*mockRepo, *models.Booking) {
	repo := newMockRepo()
	b := &models.Booking{CustomerID: 1, Status: "confirmed"}
	_ = repo.CreateBooking(context.Background(), b)
	repo.staff[10] = &models.User{ID: 10, Role: models.RoleStaff, Active: true, ActiveStaff: true}
	repo.staff[11] = &models.User{ID: 11, Role: models.RoleStaff, Active: true, ActiveStaff: false}
	return repo, b
}

var adminActor = authz.Actor{ID: 99, Role: models.RoleAdmin}

func TestAssignIsAdminOnly(t *testing.T) {
	repo, b := rosterFixture()
	uc := NewAssignStaff(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), AssignStaffInput{
		Actor:     authz.Actor{ID: 10, Role: models.RoleStaff},
		BookingID: b.ID,
		Items:     []AssignmentItem{{StaffID: 10, Role: "lead"}},
	})
	if !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("staff assign err = %v, want forbidden", err)
	}
}

func TestAssignUpsertsInPlace(t *testing.T) {
	repo, b := rosterFixture()
	uc := NewAssignStaff(repo, testDispatcher())

	first, err := uc.Execute(context.Background(), AssignStaffInput{
		Actor:     adminActor,
		BookingID: b.ID,
		Items:     []AssignmentItem{{StaffID: 10, Role: "helper"}},
	})
	if err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if len(first) != 1 || first[0].Role != "helper" {
		t.Fatalf("first assign rows = %+v", first)
	}

	// Same pair again with a new role: the single row changes, no duplicate.
	second, err := uc.Execute(context.Background(), AssignStaffInput{
		Actor:     adminActor,
		BookingID: b.ID,
		Items:     []AssignmentItem{{StaffID: 10, Role: "lead"}},
	})
	if err != nil {
		t.Fatalf("second assign: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("second assign wrote %d rows, want 1", len(second))
	}
	if second[0].ID != first[0].ID {
		t.Errorf("row id changed %d -> %d, want in-place update", first[0].ID, second[0].ID)
	}
	if second[0].Role != "lead" {
		t.Errorf("role = %q, want lead", second[0].Role)
	}

	rows, _ := repo.ListAssignmentsByBooking(context.Background(), b.ID)
	if len(rows) != 1 {
		t.Fatalf("roster has %d rows, want 1", len(rows))
	}
}

func TestAssignSkipsInactiveStaff(t *testing.T) {
	repo, b := rosterFixture()
	uc := NewAssignStaff(repo, testDispatcher())

	written, err := uc.Execute(context.Background(), AssignStaffInput{
		Actor:     adminActor,
		BookingID: b.ID,
		Items: []AssignmentItem{
			{StaffID: 10, Role: "lead"},
			{StaffID: 11, Role: "helper"}, // ActiveStaff=false
			{StaffID: 12, Role: "helper"}, // does not exist
		},
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(written) != 1 || written[0].StaffID != 10 {
		t.Fatalf("written = %+v, want only staff 10", written)
	}
}

func TestUnassign(t *testing.T) {
	repo, b := rosterFixture()
	assign := NewAssignStaff(repo, testDispatcher())
	unassign := NewUnassignStaff(repo, testDispatcher())

	_, err := assign.Execute(context.Background(), AssignStaffInput{
		Actor:     adminActor,
		BookingID: b.ID,
		Items:     []AssignmentItem{{StaffID: 10, Role: "lead"}},
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	if err := unassign.Execute(context.Background(), adminActor, b.ID, 10); err != nil {
		t.Fatalf("unassign: %v", err)
	}

	err = unassign.Execute(context.Background(), adminActor, b.ID, 10)
	if !httperr.IsBusiness(err, "assignment_not_found") {
		t.Fatalf("second unassign err = %v, want assignment_not_found", err)
	}

	err = unassign.Execute(context.Background(), authz.Actor{ID: 10, Role: models.RoleStaff}, b.ID, 10)
	if !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("staff unassign err = %v, want forbidden", err)
	}
}
