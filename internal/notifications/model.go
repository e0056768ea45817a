package notifications

import "time"

// TypeStatus marks a notification produced by an application status change.
const TypeStatus = "status"

// Notification is an in-app alert for an applicant about one of their
// applications. Status carries the applicant-facing wording, which can
// differ from the internal application status.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	JobID     string    `json:"jobId"`
	JobTitle  string    `json:"jobTitle"`
	Company   string    `json:"company"`
	Status    string    `json:"status"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}
