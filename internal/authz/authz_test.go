package authz

import (
	"testing"

	"github.com/elitehands/elitehands-api/internal/models"
)

var (
	customer = Actor{ID: 1, Role: models.RoleCustomer}
	other    = Actor{ID: 2, Role: models.RoleCustomer}
	staff    = Actor{ID: 3, Role: models.RoleStaff}
	admin    = Actor{ID: 4, Role: models.RoleAdmin}
)

func TestBookingVisibility(t *testing.T) {
	b := &models.Booking{CustomerID: 1}

	if !CanViewBooking(customer, b) {
		t.Error("owner should see own booking")
	}
	if CanViewBooking(other, b) {
		t.Error("other customer should not see the booking")
	}
	if !CanViewBooking(staff, b) || !CanViewBooking(admin, b) {
		t.Error("staff and admin should see every booking")
	}
}

func TestAssignmentManagementIsAdminOnly(t *testing.T) {
	if CanManageAssignments(staff) {
		t.Error("staff must not manage assignments")
	}
	if CanManageAssignments(customer) {
		t.Error("customer must not manage assignments")
	}
	if !CanManageAssignments(admin) {
		t.Error("admin should manage assignments")
	}
}

func TestReviewCreation(t *testing.T) {
	b := &models.Booking{CustomerID: 1}

	if !CanReviewBooking(customer, b) {
		t.Error("owning customer should be able to review")
	}
	if CanReviewBooking(other, b) {
		t.Error("non-owner should not review")
	}

	// Staff never review, even a booking made under their own account.
	staffOwn := &models.Booking{CustomerID: staff.ID}
	if CanReviewBooking(staff, staffOwn) {
		t.Error("staff role should not create reviews")
	}
}

func TestMessageSides(t *testing.T) {
	m := &models.Message{CustomerID: 1, StaffID: 3}

	if !CanAccessMessage(customer, m) {
		t.Error("customer side should access the message")
	}
	if !CanAccessMessage(staff, m) {
		t.Error("staff side should access the message")
	}
	if CanAccessMessage(other, m) {
		t.Error("unrelated customer should not access the message")
	}

	otherStaff := Actor{ID: 9, Role: models.RoleStaff}
	if CanAccessMessage(otherStaff, m) {
		t.Error("unrelated staff should not access the message")
	}
}

func TestNotificationOwnership(t *testing.T) {
	n := &models.Notification{UserID: 1}
	if !CanAccessNotification(customer, n) {
		t.Error("owner should access own notification")
	}
	if CanAccessNotification(staff, n) {
		t.Error("staff role grants no access to others' notifications")
	}
}

func TestLeaveRules(t *testing.T) {
	if CanSubmitLeave(customer) {
		t.Error("customers cannot request leave")
	}
	if !CanSubmitLeave(staff) || !CanSubmitLeave(admin) {
		t.Error("staff and admin can request leave")
	}
	if CanDecideLeave(staff) {
		t.Error("staff cannot decide leave")
	}
	if !CanDecideLeave(admin) {
		t.Error("admin decides leave")
	}
}

func TestAdminSurface(t *testing.T) {
	for name, pred := range map[string]func(Actor) bool{
		"settings":           CanEditSettings,
		"analytics":          CanViewAnalytics,
		"staff":              CanManageStaff,
		"staff registration": CanRegisterStaff,
		"reviews":            CanModerateReviews,
	} {
		if pred(customer) {
			t.Errorf("%s: customer should be denied", name)
		}
		if pred(staff) {
			t.Errorf("%s: staff should be denied", name)
		}
		if !pred(admin) {
			t.Errorf("%s: admin should be allowed", name)
		}
	}
}
