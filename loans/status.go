package loans

// Loan lifecycle. The progression is linear; rejected and completed are
// absorbing.
const (
	StatusWaitingApproval = "waitingApproval"
	StatusActive          = "active"
	StatusReturned        = "returned"
	StatusCompleted       = "completed"
	StatusRejected        = "rejected"
)

var transitions = map[string][]string{
	StatusWaitingApproval: {StatusActive, StatusRejected},
	StatusActive:          {StatusReturned},
	StatusReturned:        {StatusCompleted},
	StatusCompleted:       {},
	StatusRejected:        {},
}

// CanTransition reports whether from → to is a legal loan move.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
