package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"jobmatch-backend/internal/llm"
)

// Scorer produces a structured match result for a resume against a job's
// requirements. Implementations: OracleScorer (primary) and FallbackScorer
// (deterministic).
type Scorer interface {
	Score(ctx context.Context, resumeText, jobDescription string, skills []Skill) (AnalysisResult, error)
}

// OracleScorer delegates scoring to the text-completion oracle and
// post-processes the raw overall score with the normalization curve.
// Any failure (transport, unparseable output, schema mismatch) is returned
// as an error so the caller can fall back.
type OracleScorer struct {
	LLM llm.Client
}

// Score runs a single oracle round trip and parses the JSON result.
func (s OracleScorer) Score(ctx context.Context, resumeText, jobDescription string, skills []Skill) (AnalysisResult, error) {
	if s.LLM == nil {
		return AnalysisResult{}, fmt.Errorf("oracle scorer: no llm client")
	}

	response, err := s.LLM.Complete(ctx, scoringPrompt(resumeText, jobDescription, skills))
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("oracle scorer: %w", err)
	}

	raw, err := extractJSON(response)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("oracle scorer: %w", err)
	}
	if err := validateResultSchema(raw); err != nil {
		return AnalysisResult{}, fmt.Errorf("oracle scorer: %w", err)
	}

	var result AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return AnalysisResult{}, fmt.Errorf("oracle scorer: decode result: %w", err)
	}

	result.OverallMatchScore = clampScore(result.OverallMatchScore)
	if result.SkillMatches == nil {
		result.SkillMatches = []SkillMatch{}
	}
	if result.MissingSkills == nil {
		result.MissingSkills = []MissingSkill{}
	}

	score, note := Normalize(result.OverallMatchScore)
	result.OverallMatchScore = score
	if note != "" {
		result.ScoreNote = note
	}
	return result, nil
}

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	braceSpanRe  = regexp.MustCompile(`(?s)(\{.*\})`)
)

// extractJSON pulls a JSON object out of an oracle response. Order of
// attempts: fenced ```json block, direct parse of the whole response, first
// {...} span.
func extractJSON(response string) (json.RawMessage, error) {
	if m := fencedJSONRe.FindStringSubmatch(response); m != nil {
		candidate := strings.TrimSpace(m[1])
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	trimmed := strings.TrimSpace(response)
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	if m := braceSpanRe.FindStringSubmatch(response); m != nil {
		if json.Valid([]byte(m[1])) {
			return json.RawMessage(m[1]), nil
		}
	}

	return nil, fmt.Errorf("no JSON object in oracle response")
}

// validateResultSchema checks the parsed oracle output for the required
// top-level keys before it is trusted as an AnalysisResult. The oracle is
// not asked for score_note, so it is not required here.
func validateResultSchema(raw json.RawMessage) error {
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("schema: not a JSON object: %w", err)
	}

	required := []string{
		"overall_match_score",
		"skill_matches",
		"missing_skills",
		"strengths",
		"improvement_areas",
		"detailed_feedback",
	}
	var missing []string
	for _, key := range required {
		if _, ok := parsed[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema: missing required keys: %s", strings.Join(missing, ", "))
	}

	var score float64
	if err := json.Unmarshal(parsed["overall_match_score"], &score); err != nil {
		return fmt.Errorf("schema: overall_match_score is not a number: %w", err)
	}
	return nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
