package booking

import "github.com/elitehands/elitehands-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status", "Invalid booking status")
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// transitions is the staff-facing state machine. Admins may additionally
// jump from any non-terminal status straight to any other status, which some
// back-office workflows depend on.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

// CanTransition validates a status change. Terminal statuses are final for
// everyone, admin included.
func CanTransition(from, to Status, admin bool) error {
	if from == to {
		return nil
	}
	if from.Terminal() {
		return httperr.ErrBusiness("invalid_transition", "Booking is already "+string(from))
	}
	if admin {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition", "Cannot move booking from "+string(from)+" to "+string(to))
}

// CustomerCanCancel: customers may only back out before work starts.
func CustomerCanCancel(from Status) bool {
	return from == StatusPending || from == StatusConfirmed
}
