package jobs

import (
	"strings"

	"jobmatch-backend/internal/matching"
)

// DefaultSkills guesses a weighted skill list from the job title. Used when
// a job was posted without explicit skill requirements so analysis still has
// something to score against.
func DefaultSkills(title string) []matching.Skill {
	t := strings.ToLower(title)

	if strings.Contains(t, "developer") || strings.Contains(t, "engineer") {
		switch {
		case strings.Contains(t, "front"):
			return []matching.Skill{
				{Name: "HTML/CSS", Weight: 80},
				{Name: "JavaScript", Weight: 90},
			}
		case strings.Contains(t, "back"):
			return []matching.Skill{
				{Name: "Server-side programming", Weight: 90},
				{Name: "Database skills", Weight: 80},
			}
		case strings.Contains(t, "full"):
			return []matching.Skill{
				{Name: "Frontend technologies", Weight: 80},
				{Name: "Backend technologies", Weight: 80},
			}
		}
	}

	return []matching.Skill{
		{Name: "Programming skills", Weight: 90},
		{Name: "Problem solving", Weight: 80},
	}
}
