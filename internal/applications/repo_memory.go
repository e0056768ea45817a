package applications

import (
	"context"
	"sort"
	"sync"
	"time"

	"jobmatch-backend/internal/matching"
)

// MemoryRepo stores applications in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Application
	byJob map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:  make(map[string]Application),
		byJob: make(map[string][]string),
	}
}

// Create stores the application.
func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[app.ID] = app
	r.byJob[app.JobID] = append(r.byJob[app.JobID], app.ID)
	return nil
}

// GetByID returns an application by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, applicationID string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.byID[applicationID]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

// ListByJob returns all applications for a job, oldest first.
func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	ids := r.byJob[jobID]
	out := make([]Application, 0, len(ids))
	for _, id := range ids {
		if app, ok := r.byID[id]; ok {
			out = append(out, app)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// SaveAnalysis overwrites the stored analysis and score.
func (r *MemoryRepo) SaveAnalysis(ctx context.Context, applicationID string, result matching.AnalysisResult, analyzedAt time.Time, reanalysis bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.byID[applicationID]
	if !ok {
		return ErrNotFound
	}
	stored := result
	score := result.OverallMatchScore
	app.Analysis = &stored
	app.MatchScore = &score
	if reanalysis {
		app.ReanalyzedAt = &analyzedAt
	} else {
		app.AnalyzedAt = &analyzedAt
	}
	app.UpdatedAt = time.Now().UTC()
	r.byID[applicationID] = app
	return nil
}

// UpdateStatus sets status and recruiter notes.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, applicationID, status, notes string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.byID[applicationID]
	if !ok {
		return ErrNotFound
	}
	app.Status = status
	app.Notes = notes
	app.UpdatedAt = time.Now().UTC()
	r.byID[applicationID] = app
	return nil
}

// SaveRejectionFeedback stores drafted rejection feedback.
func (r *MemoryRepo) SaveRejectionFeedback(ctx context.Context, applicationID, feedback string) error {
	return r.saveFeedback(ctx, applicationID, feedback, false)
}

// SaveAcceptanceFeedback stores drafted acceptance feedback.
func (r *MemoryRepo) SaveAcceptanceFeedback(ctx context.Context, applicationID, feedback string) error {
	return r.saveFeedback(ctx, applicationID, feedback, true)
}

func (r *MemoryRepo) saveFeedback(ctx context.Context, applicationID, feedback string, acceptance bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.byID[applicationID]
	if !ok {
		return ErrNotFound
	}
	if acceptance {
		app.AcceptanceFeedback = &feedback
	} else {
		app.RejectionFeedback = &feedback
	}
	app.UpdatedAt = time.Now().UTC()
	r.byID[applicationID] = app
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
