package domain

// UIStatus is the reduced status vocabulary exposed to external screens.
// Raw storage statuses stay internal; this is the only set the UI may branch on.
type UIStatus string

const (
	UIPending    UIStatus = "pending"
	UIConfirmed  UIStatus = "confirmed"
	UIOnRoute    UIStatus = "on_route"
	UIInProgress UIStatus = "in_progress"
	UIFinalized  UIStatus = "finalized"
	UICanceled   UIStatus = "canceled"
)

// transitions is the full legal transition table, shared by both modalities.
// Forward movement is professional-driven and linear; in_progress is optional
// (a job may be marked done from confirmed or on_route directly). Cancellation
// is allowed from any state before completed. A dispute can be raised from any
// active state or from completed, and is terminal for state-machine purposes.
// completed is deliberately unreachable from pending_approval.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPendingApproval: {StatusConfirmed, StatusCanceledClient, StatusCanceledPro, StatusDisputed},
	StatusConfirmed:       {StatusOnRoute, StatusInProgress, StatusCompleted, StatusCanceledClient, StatusCanceledPro, StatusDisputed},
	StatusOnRoute:         {StatusInProgress, StatusCompleted, StatusCanceledClient, StatusCanceledPro, StatusDisputed},
	StatusInProgress:      {StatusCompleted, StatusCanceledClient, StatusCanceledPro, StatusDisputed},
	StatusCompleted:       {StatusDisputed},
	StatusCanceledClient:  {},
	StatusCanceledPro:     {},
	StatusDisputed:        {},
}

// CanTransition reports whether from → to is a legal status change.
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no transition can leave the given status.
func IsTerminalStatus(s ReservationStatus) bool {
	return len(transitions[s]) == 0
}

// IsValidStatus reports whether s is a known storage-level status.
func IsValidStatus(s ReservationStatus) bool {
	_, ok := transitions[s]
	return ok
}

// UIStatusOf maps a storage-level status to the UI-facing reduced set.
// Both completed and disputed surface as finalized: the dispute itself is
// handled outside this core.
func UIStatusOf(s ReservationStatus) UIStatus {
	switch s {
	case StatusPendingApproval:
		return UIPending
	case StatusConfirmed:
		return UIConfirmed
	case StatusOnRoute:
		return UIOnRoute
	case StatusInProgress:
		return UIInProgress
	case StatusCompleted, StatusDisputed:
		return UIFinalized
	case StatusCanceledClient, StatusCanceledPro:
		return UICanceled
	default:
		return UIPending
	}
}
