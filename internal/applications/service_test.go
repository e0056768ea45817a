package applications

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/matching"
	"jobmatch-backend/internal/notifications"
)

type stubScorer struct {
	result    matching.AnalysisResult
	err       error
	gotSkills []matching.Skill
	gotResume string
	calls     int
	panics    bool
}

func (s *stubScorer) Score(ctx context.Context, resumeText, jobDescription string, skills []matching.Skill) (matching.AnalysisResult, error) {
	_ = ctx
	_ = jobDescription
	s.calls++
	s.gotResume = resumeText
	s.gotSkills = skills
	if s.panics {
		panic("scorer blew up")
	}
	return s.result, s.err
}

type staticCompletion struct {
	resp string
	err  error
}

func (s staticCompletion) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return s.resp, s.err
}

type failingSaveRepo struct {
	*MemoryRepo
}

func (r *failingSaveRepo) SaveAnalysis(ctx context.Context, applicationID string, result matching.AnalysisResult, analyzedAt time.Time, reanalysis bool) error {
	return errors.New("disk on fire")
}

func setupService(t *testing.T, job jobs.Job, app Application) (*Service, *MemoryRepo, *jobs.MemoryRepo, *notifications.MemoryRepo) {
	t.Helper()
	jobRepo := jobs.NewMemoryRepo()
	appRepo := NewMemoryRepo()
	notifRepo := notifications.NewMemoryRepo()

	if err := jobRepo.Create(context.Background(), job); err != nil {
		t.Fatalf("create job: %v", err)
	}
	if app.ID != "" {
		if err := appRepo.Create(context.Background(), app); err != nil {
			t.Fatalf("create application: %v", err)
		}
	}

	svc := &Service{
		Repo:   appRepo,
		Jobs:   jobRepo,
		Notifs: notifRepo,
	}
	return svc, appRepo, jobRepo, notifRepo
}

func testJob() jobs.Job {
	return jobs.Job{
		ID:          "job-1",
		Title:       "Backend Developer",
		Company:     "Acme",
		Description: "Build Go services",
		Skills:      []matching.Skill{{Name: "Go", Weight: 90}, {Name: "SQL", Weight: 60}},
		CreatedAt:   time.Now().UTC(),
	}
}

func testApplication(resumeData string) Application {
	now := time.Now().UTC()
	return Application{
		ID:             "app-1",
		JobID:          "job-1",
		ApplicantID:    "user-1",
		ApplicantName:  "Jane Candidate",
		ApplicantEmail: "jane@example.com",
		JobTitle:       "Backend Developer",
		CompanyName:    "Acme",
		ResumeData:     resumeData,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestAnalyzePersistsResultAndScore(t *testing.T) {
	svc, repo, _, _ := setupService(t, testJob(), testApplication("Go and SQL experience"))
	oracle := &stubScorer{result: matching.AnalysisResult{
		OverallMatchScore: 88,
		SkillMatches:      []matching.SkillMatch{},
		MissingSkills:     []matching.MissingSkill{},
		DetailedFeedback:  "Strong candidate.",
	}}
	svc.Oracle = oracle

	result, err := svc.Analyze(context.Background(), "app-1", "job-1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.OverallMatchScore != 88 {
		t.Errorf("score = %d, want 88", result.OverallMatchScore)
	}

	stored, err := repo.GetByID(context.Background(), "app-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Analysis == nil || stored.Analysis.OverallMatchScore != 88 {
		t.Errorf("analysis not persisted: %+v", stored.Analysis)
	}
	if stored.MatchScore == nil || *stored.MatchScore != 88 {
		t.Errorf("match score not persisted")
	}
	if stored.AnalyzedAt == nil {
		t.Error("analyzedAt not stamped")
	}
	if stored.ReanalyzedAt != nil {
		t.Error("reanalyzedAt stamped on first analysis")
	}
}

func TestAnalyzeUnknownApplication(t *testing.T) {
	svc, _, _, _ := setupService(t, testJob(), Application{})
	if _, err := svc.Analyze(context.Background(), "ghost", "job-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalyzeUnknownJob(t *testing.T) {
	svc, _, _, _ := setupService(t, testJob(), testApplication("text"))
	if _, err := svc.Analyze(context.Background(), "app-1", "ghost"); !errors.Is(err, jobs.ErrNotFound) {
		t.Fatalf("expected jobs.ErrNotFound, got %v", err)
	}
}

func TestAnalyzeNoTextSkipsScoring(t *testing.T) {
	svc, repo, _, _ := setupService(t, testJob(), testApplication("   "))
	oracle := &stubScorer{result: matching.AnalysisResult{OverallMatchScore: 99}}
	svc.Oracle = oracle

	result, err := svc.Analyze(context.Background(), "app-1", "job-1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if oracle.calls != 0 {
		t.Errorf("scorer called %d times for empty resume, want 0", oracle.calls)
	}
	if result.OverallMatchScore != 70 {
		t.Errorf("score = %d, want neutral 70", result.OverallMatchScore)
	}

	stored, _ := repo.GetByID(context.Background(), "app-1")
	if stored.MatchScore == nil || *stored.MatchScore != 70 {
		t.Errorf("neutral result not persisted")
	}
}

func TestAnalyzeExtractionFailureSkipsScoring(t *testing.T) {
	svc, _, _, _ := setupService(t, testJob(), testApplication("data:application/pdf;base64,!!!notbase64!!!"))
	oracle := &stubScorer{}
	svc.Oracle = oracle

	result, err := svc.Analyze(context.Background(), "app-1", "job-1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if oracle.calls != 0 {
		t.Error("scorer called despite extraction failure")
	}
	if result.OverallMatchScore != 70 {
		t.Errorf("score = %d, want neutral 70", result.OverallMatchScore)
	}
}

func TestAnalyzeFallsBackWhenOracleFails(t *testing.T) {
	job := testJob()
	job.Skills = []matching.Skill{{Name: "React", Weight: 90}, {Name: "SQL", Weight: 60}}
	svc, _, _, _ := setupService(t, job, testApplication("Years of React experience building UIs"))
	svc.Oracle = &stubScorer{err: errors.New("oracle unavailable")}

	result, err := svc.Analyze(context.Background(), "app-1", "job-1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	// floor(90*90/150) from the deterministic path
	if result.OverallMatchScore != 54 {
		t.Errorf("score = %d, want 54 from fallback", result.OverallMatchScore)
	}
	if result.ScoreNote == "" {
		t.Error("fallback result should carry a score note")
	}
}

func TestAnalyzeScorerPanicYieldsLastResort(t *testing.T) {
	svc, _, _, _ := setupService(t, testJob(), testApplication("plain resume text"))
	svc.Oracle = &stubScorer{panics: true}

	result, err := svc.Analyze(context.Background(), "app-1", "job-1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.OverallMatchScore != 75 {
		t.Errorf("score = %d, want last-resort 75", result.OverallMatchScore)
	}
}

func TestAnalyzeDerivesDefaultSkillsFromTitle(t *testing.T) {
	job := testJob()
	job.Title = "Senior Frontend Developer"
	job.Skills = nil
	svc, _, _, _ := setupService(t, job, testApplication("JavaScript and CSS work"))
	oracle := &stubScorer{result: matching.AnalysisResult{OverallMatchScore: 80}}
	svc.Oracle = oracle

	if _, err := svc.Analyze(context.Background(), "app-1", "job-1"); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := []matching.Skill{{Name: "HTML/CSS", Weight: 80}, {Name: "JavaScript", Weight: 90}}
	if len(oracle.gotSkills) != len(want) {
		t.Fatalf("got %d derived skills, want %d", len(oracle.gotSkills), len(want))
	}
	for i := range want {
		if oracle.gotSkills[i] != want[i] {
			t.Errorf("skill[%d] = %+v, want %+v", i, oracle.gotSkills[i], want[i])
		}
	}
}

func TestAnalyzePersistFailureStillReturnsResult(t *testing.T) {
	svc, repo, _, _ := setupService(t, testJob(), testApplication("Go experience"))
	svc.Repo = &failingSaveRepo{MemoryRepo: repo}
	svc.Oracle = &stubScorer{result: matching.AnalysisResult{OverallMatchScore: 91}}

	result, err := svc.Analyze(context.Background(), "app-1", "job-1")
	if err != nil {
		t.Fatalf("Analyze should absorb persistence failure, got %v", err)
	}
	if result.OverallMatchScore != 91 {
		t.Errorf("score = %d, want 91", result.OverallMatchScore)
	}
}

func TestCreateFiresAnalysisTrigger(t *testing.T) {
	svc, repo, _, _ := setupService(t, testJob(), Application{})
	svc.Oracle = &stubScorer{result: matching.AnalysisResult{OverallMatchScore: 82}}
	svc.AnalysisDelay = time.Millisecond

	app, err := svc.Create(context.Background(), Application{
		JobID:         "job-1",
		ApplicantID:   "user-1",
		ApplicantName: "Jane Candidate",
		ResumeData:    "Go and SQL background",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if app.Status != StatusPending {
		t.Errorf("status = %q, want pending", app.Status)
	}
	if app.JobTitle != "Backend Developer" || app.CompanyName != "Acme" {
		t.Errorf("job fields not denormalized: %+v", app)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		stored, err := repo.GetByID(context.Background(), app.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if stored.Analysis != nil {
			if stored.Analysis.OverallMatchScore != 82 {
				t.Errorf("triggered analysis score = %d, want 82", stored.Analysis.OverallMatchScore)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("analysis trigger never completed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestReanalyzeJobRecordsScoreMovement(t *testing.T) {
	svc, repo, _, _ := setupService(t, testJob(), testApplication("Go and SQL work"))
	previous := 40

	// give app-1 a prior score
	if err := repo.SaveAnalysis(context.Background(), "app-1", matching.AnalysisResult{OverallMatchScore: previous}, time.Now().UTC(), false); err != nil {
		t.Fatalf("seed analysis: %v", err)
	}

	// second application whose resume cannot be extracted: skipped
	broken := testApplication("data:application/pdf;base64,@@@")
	broken.ID = "app-2"
	if err := repo.Create(context.Background(), broken); err != nil {
		t.Fatalf("create broken app: %v", err)
	}

	svc.Oracle = &stubScorer{result: matching.AnalysisResult{OverallMatchScore: 90}}

	outcomes, err := svc.ReanalyzeJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("ReanalyzeJob: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1 (broken resume skipped)", len(outcomes))
	}
	if outcomes[0].ApplicationID != "app-1" || outcomes[0].PreviousScore != previous || outcomes[0].NewScore != 90 {
		t.Errorf("unexpected outcome: %+v", outcomes[0])
	}

	stored, _ := repo.GetByID(context.Background(), "app-1")
	if stored.ReanalyzedAt == nil {
		t.Error("reanalyzedAt not stamped")
	}
}

type countingStore struct {
	saves int
	keys  []string
}

func (s *countingStore) Save(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error) {
	s.saves++
	s.keys = append(s.keys, storageKey)
	n, err := io.Copy(io.Discard, r)
	return n, err
}

func (s *countingStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	return nil, errors.New("not stored")
}

func TestReanalyzeJobExtractsEachResumeOnce(t *testing.T) {
	svc, _, _, _ := setupService(t, testJob(), testApplication("Go and SQL work"))
	oracle := &stubScorer{result: matching.AnalysisResult{OverallMatchScore: 85}}
	store := &countingStore{}
	svc.Oracle = oracle
	svc.Store = store

	outcomes, err := svc.ReanalyzeJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("ReanalyzeJob: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(outcomes))
	}
	if oracle.calls != 1 {
		t.Errorf("scorer called %d times, want 1", oracle.calls)
	}
	// The text extracted for the skip check is the text that gets scored.
	if oracle.gotResume != "Go and SQL work" {
		t.Errorf("scorer got resume %q", oracle.gotResume)
	}
	// One extracted-text copy per application, not one per extraction.
	if store.saves != 1 {
		t.Errorf("extracted copy saved %d times, want 1", store.saves)
	}
	if len(store.keys) != 1 || store.keys[0] != "applications/app-1/resume.extracted.txt" {
		t.Errorf("unexpected store keys: %v", store.keys)
	}
}

func TestReanalyzeJobUnknownJob(t *testing.T) {
	svc, _, _, _ := setupService(t, testJob(), Application{})
	if _, err := svc.ReanalyzeJob(context.Background(), "ghost"); !errors.Is(err, jobs.ErrNotFound) {
		t.Fatalf("expected jobs.ErrNotFound, got %v", err)
	}
}

func TestUpdateStatusRejectedDraftsFeedback(t *testing.T) {
	app := testApplication("resume")
	analysis := matching.AnalysisResult{
		OverallMatchScore: 45,
		MissingSkills:     []matching.MissingSkill{{SkillName: "Kubernetes", ImportanceWeight: 70, ImprovementSuggestion: "Learn k8s"}},
		ImprovementAreas:  []string{"Cloud operations"},
	}
	svc, repo, _, notifRepo := setupService(t, testJob(), app)
	if err := repo.SaveAnalysis(context.Background(), "app-1", analysis, time.Now().UTC(), false); err != nil {
		t.Fatalf("seed analysis: %v", err)
	}
	svc.LLM = staticCompletion{resp: "Thank you for applying. Unfortunately..."}

	feedback, err := svc.UpdateStatus(context.Background(), "app-1", StatusRejected, "not enough ops experience")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if feedback == "" {
		t.Fatal("expected drafted feedback")
	}

	stored, _ := repo.GetByID(context.Background(), "app-1")
	if stored.Status != StatusRejected || stored.Notes != "not enough ops experience" {
		t.Errorf("status/notes not persisted: %+v", stored)
	}
	if stored.RejectionFeedback == nil || *stored.RejectionFeedback != feedback {
		t.Error("rejection feedback not persisted")
	}
	if stored.AcceptanceFeedback != nil {
		t.Error("acceptance feedback set on rejection")
	}

	notifs, _ := notifRepo.ListByUser(context.Background(), "user-1", 0, 0)
	if len(notifs) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifs))
	}
	n := notifs[0]
	if n.Status != StatusRejected || n.Type != notifications.TypeStatus || n.Read {
		t.Errorf("unexpected notification: %+v", n)
	}
	if n.JobTitle != "Backend Developer" || n.Company != "Acme" {
		t.Errorf("notification missing job fields: %+v", n)
	}
}

func TestUpdateStatusShortlistedNotifiesAccepted(t *testing.T) {
	svc, repo, _, notifRepo := setupService(t, testJob(), testApplication("resume"))
	svc.LLM = staticCompletion{resp: "Congratulations, you've been shortlisted."}

	feedback, err := svc.UpdateStatus(context.Background(), "app-1", StatusShortlisted, "great interview")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if feedback == "" {
		t.Fatal("expected drafted feedback")
	}

	stored, _ := repo.GetByID(context.Background(), "app-1")
	if stored.AcceptanceFeedback == nil || *stored.AcceptanceFeedback != feedback {
		t.Error("acceptance feedback not persisted")
	}

	notifs, _ := notifRepo.ListByUser(context.Background(), "user-1", 0, 0)
	if len(notifs) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifs))
	}
	if notifs[0].Status != "accepted" {
		t.Errorf("notification status = %q, want accepted", notifs[0].Status)
	}
}

func TestUpdateStatusOracleFailureKeepsStatus(t *testing.T) {
	svc, repo, _, notifRepo := setupService(t, testJob(), testApplication("resume"))
	svc.LLM = staticCompletion{err: errors.New("quota exceeded")}

	feedback, err := svc.UpdateStatus(context.Background(), "app-1", StatusRejected, "notes")
	if err != nil {
		t.Fatalf("status update must survive oracle failure, got %v", err)
	}
	if feedback != "" {
		t.Errorf("feedback = %q, want empty", feedback)
	}

	stored, _ := repo.GetByID(context.Background(), "app-1")
	if stored.Status != StatusRejected {
		t.Errorf("status = %q, want rejected", stored.Status)
	}
	if stored.RejectionFeedback != nil {
		t.Error("feedback should remain unset after oracle failure")
	}

	// notification still goes out
	notifs, _ := notifRepo.ListByUser(context.Background(), "user-1", 0, 0)
	if len(notifs) != 1 {
		t.Errorf("got %d notifications, want 1", len(notifs))
	}
}

func TestUpdateStatusReviewedNoFeedback(t *testing.T) {
	svc, repo, _, notifRepo := setupService(t, testJob(), testApplication("resume"))
	svc.LLM = staticCompletion{resp: "should never be used"}

	feedback, err := svc.UpdateStatus(context.Background(), "app-1", StatusReviewed, "looks ok")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if feedback != "" {
		t.Errorf("feedback = %q, want empty for reviewed", feedback)
	}

	stored, _ := repo.GetByID(context.Background(), "app-1")
	if stored.RejectionFeedback != nil || stored.AcceptanceFeedback != nil {
		t.Error("no feedback should be drafted for reviewed")
	}

	notifs, _ := notifRepo.ListByUser(context.Background(), "user-1", 0, 0)
	if len(notifs) != 1 || notifs[0].Status != StatusReviewed {
		t.Errorf("expected a reviewed notification, got %+v", notifs)
	}
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	svc, _, _, _ := setupService(t, testJob(), testApplication("resume"))
	if _, err := svc.UpdateStatus(context.Background(), "app-1", "archived", ""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatusRegeneratesFeedback(t *testing.T) {
	svc, repo, _, _ := setupService(t, testJob(), testApplication("resume"))
	svc.LLM = staticCompletion{resp: "first draft"}
	if _, err := svc.UpdateStatus(context.Background(), "app-1", StatusRejected, "n1"); err != nil {
		t.Fatalf("first UpdateStatus: %v", err)
	}

	svc.LLM = staticCompletion{resp: "second draft"}
	feedback, err := svc.UpdateStatus(context.Background(), "app-1", StatusRejected, "n2")
	if err != nil {
		t.Fatalf("second UpdateStatus: %v", err)
	}
	if feedback != "second draft" {
		t.Errorf("feedback = %q, want regenerated draft", feedback)
	}
	stored, _ := repo.GetByID(context.Background(), "app-1")
	if stored.RejectionFeedback == nil || *stored.RejectionFeedback != "second draft" {
		t.Error("feedback not overwritten on repeated transition")
	}
}

func TestGetFeedbackRejectedView(t *testing.T) {
	svc, repo, _, _ := setupService(t, testJob(), testApplication("resume"))
	analysis := matching.AnalysisResult{
		OverallMatchScore: 52,
		MissingSkills:     []matching.MissingSkill{{SkillName: "SQL", ImportanceWeight: 60, ImprovementSuggestion: "Practice SQL"}},
		ImprovementAreas:  []string{"Databases"},
		Strengths:         []string{"Go"},
	}
	if err := repo.SaveAnalysis(context.Background(), "app-1", analysis, time.Now().UTC(), false); err != nil {
		t.Fatalf("seed analysis: %v", err)
	}
	svc.LLM = staticCompletion{resp: "Sorry, but..."}
	if _, err := svc.UpdateStatus(context.Background(), "app-1", StatusRejected, "notes"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	view, err := svc.GetFeedback(context.Background(), "app-1")
	if err != nil {
		t.Fatalf("GetFeedback: %v", err)
	}
	if view.Status != StatusRejected || view.Feedback == "" {
		t.Errorf("unexpected view: %+v", view)
	}
	if view.MatchScore == nil || *view.MatchScore != 52 {
		t.Error("match score missing from rejected view")
	}
	if len(view.MissingSkills) != 1 || len(view.ImprovementAreas) != 1 {
		t.Error("skill-gap details missing from rejected view")
	}
	if view.Strengths != nil {
		t.Error("strengths should not appear in rejected view")
	}
}

func TestGetFeedbackPendingViewHasNoFeedback(t *testing.T) {
	svc, _, _, _ := setupService(t, testJob(), testApplication("resume"))

	view, err := svc.GetFeedback(context.Background(), "app-1")
	if err != nil {
		t.Fatalf("GetFeedback: %v", err)
	}
	if view.Status != StatusPending {
		t.Errorf("status = %q, want pending", view.Status)
	}
	if view.Feedback != "" || view.MatchScore != nil {
		t.Errorf("pending view should carry no feedback: %+v", view)
	}
}
