package jobs

import (
	"time"

	"jobmatch-backend/internal/matching"
)

// Job represents a posted position that applications are matched against.
type Job struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Company     string           `json:"company"`
	Description string           `json:"description"`
	Skills      []matching.Skill `json:"skills"`
	CreatedAt   time.Time        `json:"createdAt"`
}
