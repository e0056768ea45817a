package applications

import (
	"time"

	"jobmatch-backend/internal/matching"
)

// Application records a candidate's submission for a job, including the
// stored analysis produced by the matching engine and any feedback drafted
// on a status change. Job title and company are denormalized from the job
// at creation time so notifications and feedback reads do not need a join.
type Application struct {
	ID                 string                   `json:"id"`
	JobID              string                   `json:"jobId"`
	ApplicantID        string                   `json:"applicantId"`
	ApplicantName      string                   `json:"applicantName"`
	ApplicantEmail     string                   `json:"applicantEmail"`
	JobTitle           string                   `json:"jobTitle"`
	CompanyName        string                   `json:"companyName"`
	ResumeData         string                   `json:"resumeData,omitempty"`
	Status             string                   `json:"status"`
	Notes              string                   `json:"notes,omitempty"`
	MatchScore         *int                     `json:"matchScore,omitempty"`
	Analysis           *matching.AnalysisResult `json:"analysis,omitempty"`
	RejectionFeedback  *string                  `json:"rejectionFeedback,omitempty"`
	AcceptanceFeedback *string                  `json:"acceptanceFeedback,omitempty"`
	AnalyzedAt         *time.Time               `json:"analyzedAt,omitempty"`
	ReanalyzedAt       *time.Time               `json:"reanalyzedAt,omitempty"`
	CreatedAt          time.Time                `json:"createdAt"`
	UpdatedAt          time.Time                `json:"updatedAt"`
}

// ReanalysisOutcome reports the score movement for one application in a
// bulk re-analysis run.
type ReanalysisOutcome struct {
	ApplicationID string `json:"application_id"`
	ApplicantName string `json:"applicant_name"`
	PreviousScore int    `json:"previous_score"`
	NewScore      int    `json:"new_score"`
}

// FeedbackView is the applicant-facing read model returned by the feedback
// endpoint. Fields beyond the status block are present only when the
// status warrants them.
type FeedbackView struct {
	Status           string                  `json:"status"`
	JobTitle         string                  `json:"jobTitle"`
	CompanyName      string                  `json:"companyName"`
	AppliedAt        time.Time               `json:"appliedAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
	Feedback         string                  `json:"feedback,omitempty"`
	MatchScore       *int                    `json:"match_score,omitempty"`
	MissingSkills    []matching.MissingSkill `json:"missing_skills,omitempty"`
	ImprovementAreas []string                `json:"improvement_areas,omitempty"`
	Strengths        []string                `json:"strengths,omitempty"`
}
