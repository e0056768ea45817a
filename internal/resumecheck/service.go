package resumecheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"jobmatch-backend/internal/extract"
	"jobmatch-backend/internal/llm"
	"jobmatch-backend/internal/shared/telemetry"
)

// Sentinel errors the HTTP layer maps to status codes.
var (
	ErrNoText      = errors.New("could not extract text from resume or resume has insufficient content")
	ErrUnavailable = errors.New("resume check oracle unavailable")
)

// minResumeTextLen rejects resumes whose extracted text is too short to
// analyze meaningfully.
const minResumeTextLen = 50

// Service runs standalone resume checks: an ATS score against a pasted job
// description, improvement suggestions, and skill recommendations. Unlike
// the application analysis pipeline, nothing is persisted; the check is a
// pure request/response service on top of the oracle.
type Service struct {
	LLM llm.Client
}

// Check analyzes a resume, optionally against a job description. The main
// analysis requires the oracle; the structured extras (skill ratings,
// recommendations) degrade to deterministic fallbacks when the oracle's
// output cannot be parsed.
func (s *Service) Check(ctx context.Context, resumeData, jobDescription, analysisType string) (CheckResult, error) {
	resumeText, err := extract.FromResumeData(resumeData)
	if err != nil || len(strings.TrimSpace(resumeText)) < minResumeTextLen {
		return CheckResult{}, ErrNoText
	}
	if s.LLM == nil {
		return CheckResult{}, ErrUnavailable
	}
	if analysisType == "" {
		analysisType = AnalysisQuick
	}

	role := detectJobRole(jobDescription)

	analysis, err := s.LLM.Complete(ctx, checkPrompt(resumeText, jobDescription, analysisType, role))
	if err != nil {
		return CheckResult{}, fmt.Errorf("resume check: %w", err)
	}

	return CheckResult{
		ATSScore:        extractATSScore(analysis),
		SkillMatches:    s.skillMatches(ctx, resumeText, jobDescription, role),
		Suggestions:     extractSuggestions(analysis),
		Recommendations: s.Recommend(ctx, resumeText, jobDescription),
		FullAnalysis:    analysis,
		JobRole:         role,
		JobDescription:  jobDescription,
	}, nil
}

// skillMatches asks the oracle for structured skill ratings and falls back
// to keyword scanning when the response cannot be parsed.
func (s *Service) skillMatches(ctx context.Context, resumeText, jobDescription, role string) []SkillRating {
	prompt := skillExtractPrompt(resumeText)
	if strings.TrimSpace(jobDescription) != "" {
		prompt = skillMatchPrompt(resumeText, jobDescription, role)
	}

	response, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		telemetry.Warn("resumecheck.skills.oracle_failed", map[string]any{"error": err.Error()})
		return fallbackSkillRatings(resumeText, jobDescription)
	}

	ratings, err := parseSkillRatings(response)
	if err != nil {
		telemetry.Warn("resumecheck.skills.parse_failed", map[string]any{"error": err.Error()})
		return fallbackSkillRatings(resumeText, jobDescription)
	}
	return ratings
}

func parseSkillRatings(response string) ([]SkillRating, error) {
	raw, err := extractJSONArray(response)
	if err != nil {
		return nil, err
	}
	var ratings []SkillRating
	if err := json.Unmarshal(raw, &ratings); err != nil {
		return nil, fmt.Errorf("decode skill ratings: %w", err)
	}
	if len(ratings) == 0 {
		return nil, errors.New("empty skill ratings")
	}

	sort.SliceStable(ratings, func(i, j int) bool {
		if ratings[i].JobMatch != ratings[j].JobMatch {
			return ratings[i].JobMatch
		}
		return ratings[i].Score > ratings[j].Score
	})
	if len(ratings) > 5 {
		ratings = ratings[:5]
	}
	return ratings, nil
}

// Recommend produces skill development recommendations. It never fails: any
// oracle or parse problem yields the canned defaults.
func (s *Service) Recommend(ctx context.Context, resumeText, jobDescription string) []Recommendation {
	if s.LLM == nil {
		return defaultRecommendations()
	}

	response, err := s.LLM.Complete(ctx, recommendationsPrompt(resumeText, jobDescription))
	if err != nil {
		telemetry.Warn("resumecheck.recommendations.oracle_failed", map[string]any{"error": err.Error()})
		return defaultRecommendations()
	}

	recommendations, err := parseRecommendations(response)
	if err != nil {
		telemetry.Warn("resumecheck.recommendations.parse_failed", map[string]any{"error": err.Error()})
		return defaultRecommendations()
	}
	return recommendations
}

func parseRecommendations(response string) ([]Recommendation, error) {
	raw, err := extractJSONArray(response)
	if err != nil {
		return nil, err
	}
	var recommendations []Recommendation
	if err := json.Unmarshal(raw, &recommendations); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	if len(recommendations) == 0 {
		return nil, errors.New("empty recommendations")
	}
	for _, rec := range recommendations {
		if rec.Skill == "" || rec.Why == "" || len(rec.Courses) == 0 {
			return nil, errors.New("incomplete recommendation entry")
		}
	}
	return recommendations, nil
}
