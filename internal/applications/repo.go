package applications

import (
	"context"
	"time"

	"jobmatch-backend/internal/matching"
)

// Repo defines persistence operations for applications.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, applicationID string) (Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)

	// SaveAnalysis overwrites the stored analysis and denormalized score.
	// reanalysis selects which timestamp column is stamped.
	SaveAnalysis(ctx context.Context, applicationID string, result matching.AnalysisResult, analyzedAt time.Time, reanalysis bool) error

	UpdateStatus(ctx context.Context, applicationID, status, notes string) error
	SaveRejectionFeedback(ctx context.Context, applicationID, feedback string) error
	SaveAcceptanceFeedback(ctx context.Context, applicationID, feedback string) error
}
