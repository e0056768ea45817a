package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmatch-backend/internal/extract"
	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/llm"
	"jobmatch-backend/internal/matching"
	"jobmatch-backend/internal/notifications"
	"jobmatch-backend/internal/shared/metrics"
	"jobmatch-backend/internal/shared/storage/object"
	"jobmatch-backend/internal/shared/telemetry"
)

// Service contains business logic for applications: the analysis
// orchestrator, the submission trigger, and the status/feedback workflow.
type Service struct {
	Repo   Repo
	Jobs   jobs.Repo
	Notifs notifications.Repo
	Mailer notifications.Mailer
	Oracle matching.Scorer
	LLM    llm.Client
	Store  object.ObjectStore

	// AnalysisDelay is how long the submission trigger waits before
	// analyzing, so the just-written application row is visible to readers.
	AnalysisDelay time.Duration
}

// Create stores a new application and fires the analysis trigger. The
// trigger is fire-and-forget: the caller never observes its outcome, and a
// lost trigger just leaves the application without an analysis until a
// manual re-analysis runs.
func (s *Service) Create(ctx context.Context, app Application) (Application, error) {
	if app.JobID == "" {
		return Application{}, errors.New("jobId is required")
	}
	job, err := s.Jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return Application{}, err
	}

	app.ID = uuid.NewString()
	app.Status = StatusPending
	if app.JobTitle == "" {
		app.JobTitle = job.Title
	}
	if app.CompanyName == "" {
		app.CompanyName = job.Company
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now

	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}

	go s.triggerAnalysis(backgroundWithRequestID(ctx), app.ID, app.JobID)

	return app, nil
}

func (s *Service) triggerAnalysis(ctx context.Context, applicationID, jobID string) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("analysis.trigger.panic", map[string]any{
				"request_id":     requestIDFromContext(ctx),
				"application_id": applicationID,
				"panic":          fmt.Sprint(r),
			})
		}
	}()

	delay := s.AnalysisDelay
	if delay <= 0 {
		delay = time.Second
	}
	time.Sleep(delay)

	if _, err := s.Analyze(ctx, applicationID, jobID); err != nil {
		telemetry.Warn("analysis.trigger.failed", map[string]any{
			"request_id":     requestIDFromContext(ctx),
			"application_id": applicationID,
			"job_id":         jobID,
			"error":          err.Error(),
		})
	}
}

// Get returns an application by ID.
func (s *Service) Get(ctx context.Context, applicationID string) (Application, error) {
	if applicationID == "" {
		return Application{}, errors.New("applicationID is required")
	}
	return s.Repo.GetByID(ctx, applicationID)
}

// ListByJob returns all applications for a job.
func (s *Service) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	if jobID == "" {
		return nil, errors.New("jobID is required")
	}
	return s.Repo.ListByJob(ctx, jobID)
}

// Analyze runs the full analysis pipeline for one application and persists
// the result onto the application record. Only lookup failures are returned
// as errors; everything past that point degrades into a result. Persistence
// failure is logged and the result is still returned.
func (s *Service) Analyze(ctx context.Context, applicationID, jobID string) (matching.AnalysisResult, error) {
	if applicationID == "" || jobID == "" {
		return matching.AnalysisResult{}, errors.New("applicationID and jobID are required")
	}

	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return matching.AnalysisResult{}, err
	}
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return matching.AnalysisResult{}, err
	}

	metrics.IncAnalysisStarted()
	started := time.Now()
	result := s.runAnalysis(ctx, app, job)
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Milliseconds()))

	if err := s.Repo.SaveAnalysis(ctx, applicationID, result, time.Now().UTC(), false); err != nil {
		telemetry.Error("analysis.persist.failed", map[string]any{
			"request_id":     requestIDFromContext(ctx),
			"application_id": applicationID,
			"error":          err.Error(),
		})
	}

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"request_id":     requestIDFromContext(ctx),
		"application_id": applicationID,
		"job_id":         jobID,
		"match_score":    result.OverallMatchScore,
	})
	return result, nil
}

// runAnalysis performs extraction and scoring. It never fails: missing text
// collapses into the neutral no-text result, scoring into scoreResume's
// last-resort handling.
func (s *Service) runAnalysis(ctx context.Context, app Application, job jobs.Job) matching.AnalysisResult {
	resumeText, err := extract.FromResumeData(app.ResumeData)
	if err != nil || strings.TrimSpace(resumeText) == "" {
		telemetry.Warn("analysis.no_text", map[string]any{
			"request_id":        requestIDFromContext(ctx),
			"application_id":    app.ID,
			"extraction_failed": errors.Is(err, extract.ErrExtractionFailed),
		})
		return matching.NoTextResult()
	}
	return s.scoreResume(ctx, app, job, resumeText)
}

// scoreResume scores already-extracted resume text against a job. It never
// fails: any panic in the scoring path collapses into the fixed last-resort
// result.
func (s *Service) scoreResume(ctx context.Context, app Application, job jobs.Job, resumeText string) (result matching.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("analysis.panic", map[string]any{
				"request_id":     requestIDFromContext(ctx),
				"application_id": app.ID,
				"panic":          fmt.Sprint(r),
			})
			metrics.IncAnalysisFailed()
			result = matching.LastResortResult()
		}
	}()

	s.saveExtractedText(ctx, app.ID, resumeText)

	skills := job.Skills
	if len(skills) == 0 {
		skills = jobs.DefaultSkills(job.Title)
		telemetry.Info("analysis.default_skills", map[string]any{
			"request_id":     requestIDFromContext(ctx),
			"application_id": app.ID,
			"job_id":         job.ID,
			"skill_count":    len(skills),
		})
	}

	if s.Oracle != nil {
		res, err := s.Oracle.Score(ctx, resumeText, job.Description, skills)
		if err == nil {
			return res
		}
		telemetry.Warn("analysis.oracle.failed", map[string]any{
			"request_id":     requestIDFromContext(ctx),
			"application_id": app.ID,
			"error":          err.Error(),
		})
	}

	metrics.IncAnalysisFallback()
	res, err := matching.FallbackScorer{}.Score(ctx, resumeText, job.Description, skills)
	if err != nil {
		metrics.IncAnalysisFailed()
		return matching.LastResortResult()
	}
	return res
}

// saveExtractedText keeps a plain-text copy of the extracted resume in the
// object store for debugging and audits. Best-effort.
func (s *Service) saveExtractedText(ctx context.Context, applicationID, text string) {
	if s.Store == nil {
		return
	}
	key := "applications/" + applicationID + "/resume.extracted.txt"
	if _, err := s.Store.Save(ctx, key, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		telemetry.Warn("analysis.extracted_copy.failed", map[string]any{
			"application_id": applicationID,
			"error":          err.Error(),
		})
	}
}

// ReanalyzeJob re-runs analysis for every application on a job, strictly
// one at a time. Individual failures are logged and skipped; the batch
// never fails because of one application.
func (s *Service) ReanalyzeJob(ctx context.Context, jobID string) ([]ReanalysisOutcome, error) {
	if jobID == "" {
		return nil, errors.New("jobID is required")
	}
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	apps, err := s.Repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	outcomes := make([]ReanalysisOutcome, 0, len(apps))
	for _, app := range apps {
		resumeText, err := extract.FromResumeData(app.ResumeData)
		if err != nil || strings.TrimSpace(resumeText) == "" {
			telemetry.Warn("reanalysis.no_text", map[string]any{
				"request_id":     requestIDFromContext(ctx),
				"application_id": app.ID,
			})
			continue
		}

		previous := 0
		if app.MatchScore != nil {
			previous = *app.MatchScore
		}

		result := s.scoreResume(ctx, app, job, resumeText)
		if err := s.Repo.SaveAnalysis(ctx, app.ID, result, time.Now().UTC(), true); err != nil {
			telemetry.Error("reanalysis.persist.failed", map[string]any{
				"request_id":     requestIDFromContext(ctx),
				"application_id": app.ID,
				"error":          err.Error(),
			})
			continue
		}

		outcomes = append(outcomes, ReanalysisOutcome{
			ApplicationID: app.ID,
			ApplicantName: app.ApplicantName,
			PreviousScore: previous,
			NewScore:      result.OverallMatchScore,
		})
	}

	telemetry.Info("reanalysis.completed", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"job_id":     jobID,
		"updated":    len(outcomes),
		"total":      len(apps),
	})
	return outcomes, nil
}

// UpdateStatus makes the status change durable, then drafts feedback for
// terminal statuses and emits a notification. The status update never rolls
// back: feedback and notification failures are logged and absorbed.
func (s *Service) UpdateStatus(ctx context.Context, applicationID, status, notes string) (string, error) {
	if applicationID == "" {
		return "", errors.New("applicationID is required")
	}
	if !ValidStatus(status) {
		return "", ErrInvalidStatus
	}

	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return "", err
	}

	if err := s.Repo.UpdateStatus(ctx, applicationID, status, notes); err != nil {
		return "", err
	}
	telemetry.Info("application.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"application_id":    applicationID,
		"status_transition": app.Status + "->" + status,
	})

	feedback := ""
	switch status {
	case StatusRejected:
		feedback = s.draftFeedback(ctx, applicationID, rejectionFeedbackPrompt(app.JobTitle, app.Analysis, notes), s.Repo.SaveRejectionFeedback)
	case StatusShortlisted:
		feedback = s.draftFeedback(ctx, applicationID, acceptanceFeedbackPrompt(app.JobTitle, notes), s.Repo.SaveAcceptanceFeedback)
	}

	s.emitNotification(ctx, app, status)

	return feedback, nil
}

// draftFeedback asks the oracle for feedback text and persists it. Any
// failure leaves the feedback unset and returns empty; the status change
// already happened and must stand.
func (s *Service) draftFeedback(ctx context.Context, applicationID, prompt string, save func(context.Context, string, string) error) string {
	if s.LLM == nil {
		return ""
	}
	feedback, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		telemetry.Warn("feedback.oracle.failed", map[string]any{
			"request_id":     requestIDFromContext(ctx),
			"application_id": applicationID,
			"error":          err.Error(),
		})
		return ""
	}
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return ""
	}
	if err := save(ctx, applicationID, feedback); err != nil {
		telemetry.Error("feedback.persist.failed", map[string]any{
			"request_id":     requestIDFromContext(ctx),
			"application_id": applicationID,
			"error":          err.Error(),
		})
	}
	metrics.IncFeedbackGenerated()
	return feedback
}

// emitNotification inserts a status notification for the applicant and,
// when a mailer is configured, emails a copy. Failures are logged only.
func (s *Service) emitNotification(ctx context.Context, app Application, status string) {
	if s.Notifs == nil {
		return
	}

	// Applicants see "accepted" rather than the internal "shortlisted".
	notificationStatus := status
	if status == StatusShortlisted {
		notificationStatus = "accepted"
	}

	n := notifications.Notification{
		ID:        uuid.NewString(),
		UserID:    app.ApplicantID,
		Type:      notifications.TypeStatus,
		JobID:     app.JobID,
		JobTitle:  app.JobTitle,
		Company:   app.CompanyName,
		Status:    notificationStatus,
		Read:      false,
		Timestamp: time.Now().UTC(),
	}
	if err := s.Notifs.Create(ctx, n); err != nil {
		telemetry.Error("notification.persist.failed", map[string]any{
			"request_id":     requestIDFromContext(ctx),
			"application_id": app.ID,
			"error":          err.Error(),
		})
		return
	}
	metrics.IncNotificationEmitted()

	if s.Mailer != nil && app.ApplicantEmail != "" {
		if err := s.Mailer.SendStatusUpdate(app.ApplicantEmail, n); err != nil {
			telemetry.Warn("notification.mail.failed", map[string]any{
				"request_id":     requestIDFromContext(ctx),
				"application_id": app.ID,
				"error":          err.Error(),
			})
		}
	}
}

// GetFeedback builds the applicant-facing status view. Feedback and
// analysis extracts appear only when the current status has them.
func (s *Service) GetFeedback(ctx context.Context, applicationID string) (FeedbackView, error) {
	if applicationID == "" {
		return FeedbackView{}, errors.New("applicationID is required")
	}
	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return FeedbackView{}, err
	}

	view := FeedbackView{
		Status:      app.Status,
		JobTitle:    app.JobTitle,
		CompanyName: app.CompanyName,
		AppliedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}

	switch {
	case app.Status == StatusRejected && app.RejectionFeedback != nil:
		view.Feedback = *app.RejectionFeedback
		if app.Analysis != nil {
			view.MatchScore = intPtr(app.Analysis.OverallMatchScore)
			view.MissingSkills = app.Analysis.MissingSkills
			view.ImprovementAreas = app.Analysis.ImprovementAreas
		}
	case app.Status == StatusShortlisted && app.AcceptanceFeedback != nil:
		view.Feedback = *app.AcceptanceFeedback
		if app.Analysis != nil {
			view.MatchScore = intPtr(app.Analysis.OverallMatchScore)
			view.Strengths = app.Analysis.Strengths
		}
	}
	return view, nil
}

func intPtr(v int) *int { return &v }
