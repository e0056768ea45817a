package applications

import "errors"

var (
	ErrNotFound      = errors.New("application not found")
	ErrInvalidStatus = errors.New("invalid status")
)

const (
	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
)

// ValidStatus reports whether s is one of the accepted application
// statuses. The transition graph itself is not enforced.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected:
		return true
	}
	return false
}
