package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"jobmatch-backend/internal/matching"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoSaveAnalysisStampsAnalyzedAt(t *testing.T) {
	repo, mock := newMockRepo(t)

	result := matching.AnalysisResult{OverallMatchScore: 81}
	analyzedAt := time.Now().UTC()

	mock.ExpectExec("UPDATE applications").
		WithArgs(sqlmock.AnyArg(), 81, false, analyzedAt, "app-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveAnalysis(context.Background(), "app-1", result, analyzedAt, false); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSaveAnalysisReanalysisFlag(t *testing.T) {
	repo, mock := newMockRepo(t)

	analyzedAt := time.Now().UTC()
	mock.ExpectExec("UPDATE applications").
		WithArgs(sqlmock.AnyArg(), 63, true, analyzedAt, "app-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveAnalysis(context.Background(), "app-1", matching.AnalysisResult{OverallMatchScore: 63}, analyzedAt, true)
	if err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}
}

func TestPGRepoUpdateStatusNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE applications").
		WithArgs("rejected", "notes", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateStatus(context.Background(), "ghost", "rejected", "notes"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetByIDDecodesAnalysis(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	columns := []string{
		"id", "job_id", "applicant_id", "applicant_name", "applicant_email",
		"job_title", "company_name", "resume_data", "status", "notes",
		"match_score", "analysis", "rejection_feedback", "acceptance_feedback",
		"analyzed_at", "reanalyzed_at", "created_at", "updated_at",
	}
	rows := sqlmock.NewRows(columns).AddRow(
		"app-1", "job-1", "user-1", "Jane", "jane@example.com",
		"Backend Developer", "Acme", "resume text", "pending", "",
		77, `{"overall_match_score":77,"skill_matches":[],"missing_skills":[],"strengths":[],"improvement_areas":[],"detailed_feedback":"ok"}`,
		nil, nil, now, nil, now, now,
	)

	mock.ExpectQuery("SELECT").WithArgs("app-1").WillReturnRows(rows)

	app, err := repo.GetByID(context.Background(), "app-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if app.MatchScore == nil || *app.MatchScore != 77 {
		t.Errorf("match score = %v, want 77", app.MatchScore)
	}
	if app.Analysis == nil || app.Analysis.OverallMatchScore != 77 {
		t.Errorf("analysis not decoded: %+v", app.Analysis)
	}
	if app.AnalyzedAt == nil || app.ReanalyzedAt != nil {
		t.Errorf("timestamps wrong: analyzedAt=%v reanalyzedAt=%v", app.AnalyzedAt, app.ReanalyzedAt)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
