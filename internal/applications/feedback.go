package applications

import (
	"fmt"
	"strings"

	"jobmatch-backend/internal/matching"
)

func rejectionFeedbackPrompt(jobTitle string, analysis *matching.AnalysisResult, notes string) string {
	var missingNames []string
	var improvementAreas []string
	if analysis != nil {
		for _, skill := range analysis.MissingSkills {
			missingNames = append(missingNames, skill.SkillName)
		}
		improvementAreas = analysis.ImprovementAreas
	}
	if jobTitle == "" {
		jobTitle = "the position"
	}

	return fmt.Sprintf(`You're a helpful recruitment AI sending a rejection feedback email to a candidate.

The candidate applied for the position: %s

Their application was rejected for the following reasons:
- Missing skills: %s
- Areas for improvement: %s
- Recruiter notes: %s

Write a polite, constructive, and empathetic feedback message (150-200 words) to the candidate explaining:
1. Thank them for their application
2. Gently explain that they weren't selected
3. Provide constructive feedback on missing skills and how they could improve
4. Encourage them for future opportunities

Keep the tone professional, kind, and helpful. Don't be overly negative or discouraging.`,
		jobTitle,
		strings.Join(missingNames, ", "),
		strings.Join(improvementAreas, ", "),
		notes,
	)
}

func acceptanceFeedbackPrompt(jobTitle, notes string) string {
	if jobTitle == "" {
		jobTitle = "the position"
	}

	return fmt.Sprintf(`You're a helpful recruitment AI sending a positive feedback email to a candidate.

The candidate applied for the position: %s

Their application was shortlisted with these recruiter notes:
%s

Write a brief, professional, and encouraging message (100-150 words) to the candidate:
1. Thank them for their application
2. Inform them they've been shortlisted
3. Explain the next steps in the process
4. Mention that someone from the recruitment team will contact them soon

Keep the tone professional but warm and positive.`, jobTitle, notes)
}
