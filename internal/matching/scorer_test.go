package matching

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type staticOracle struct {
	resp string
	err  error
}

func (s staticOracle) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return s.resp, s.err
}

const validOracleJSON = `{
	"overall_match_score": 85,
	"skill_matches": [{"skill_name": "Go", "importance_weight": 100, "match_score": 90, "evidence": "Go services"}],
	"missing_skills": [],
	"strengths": ["Strong Go background"],
	"improvement_areas": ["Cloud experience"],
	"detailed_feedback": "Good fit overall."
}`

func TestOracleScorerParsesDirectJSON(t *testing.T) {
	scorer := OracleScorer{LLM: staticOracle{resp: validOracleJSON}}
	result, err := scorer.Score(context.Background(), "resume", "jd", []Skill{{Name: "Go", Weight: 100}})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if result.OverallMatchScore != 85 {
		t.Errorf("score = %d, want 85 (no adjustment at or above 75)", result.OverallMatchScore)
	}
	if result.ScoreNote != "" {
		t.Errorf("expected no score note, got %q", result.ScoreNote)
	}
}

func TestOracleScorerParsesFencedJSON(t *testing.T) {
	resp := "Here is the analysis:\n```json\n" + validOracleJSON + "\n```\nHope that helps."
	scorer := OracleScorer{LLM: staticOracle{resp: resp}}
	result, err := scorer.Score(context.Background(), "resume", "jd", nil)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if result.OverallMatchScore != 85 {
		t.Errorf("score = %d, want 85", result.OverallMatchScore)
	}
}

func TestOracleScorerParsesBraceSpan(t *testing.T) {
	resp := "The result is " + validOracleJSON + " as requested."
	scorer := OracleScorer{LLM: staticOracle{resp: resp}}
	if _, err := scorer.Score(context.Background(), "resume", "jd", nil); err != nil {
		t.Fatalf("Score: %v", err)
	}
}

func TestOracleScorerNormalizesLowScore(t *testing.T) {
	resp := strings.Replace(validOracleJSON, `"overall_match_score": 85`, `"overall_match_score": 60`, 1)
	scorer := OracleScorer{LLM: staticOracle{resp: resp}}
	result, err := scorer.Score(context.Background(), "resume", "jd", nil)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// 60 + (75-60)*0.4 = 66
	if result.OverallMatchScore != 66 {
		t.Errorf("score = %d, want 66 after normalization", result.OverallMatchScore)
	}
	if result.ScoreNote == "" {
		t.Error("expected score note disclosing the adjustment")
	}
}

func TestOracleScorerRejectsNonJSON(t *testing.T) {
	scorer := OracleScorer{LLM: staticOracle{resp: "I could not produce an analysis."}}
	if _, err := scorer.Score(context.Background(), "resume", "jd", nil); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestOracleScorerRejectsMissingKeys(t *testing.T) {
	scorer := OracleScorer{LLM: staticOracle{resp: `{"overall_match_score": 80}`}}
	_, err := scorer.Score(context.Background(), "resume", "jd", nil)
	if err == nil {
		t.Fatal("expected schema error for missing keys")
	}
	if !strings.Contains(err.Error(), "missing required keys") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOracleScorerPropagatesClientError(t *testing.T) {
	wantErr := errors.New("quota exceeded")
	scorer := OracleScorer{LLM: staticOracle{err: wantErr}}
	_, err := scorer.Score(context.Background(), "resume", "jd", nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
}

func TestExtractJSONPrefersFencedBlock(t *testing.T) {
	resp := "{\"stray\": true}\n```json\n{\"fenced\": true}\n```"
	raw, err := extractJSON(resp)
	if err != nil {
		t.Fatalf("extractJSON: %v", err)
	}
	if !strings.Contains(string(raw), "fenced") {
		t.Errorf("expected fenced block to win, got %s", raw)
	}
}

func TestValidateResultSchemaRejectsNonNumericScore(t *testing.T) {
	raw := strings.Replace(validOracleJSON, `"overall_match_score": 85`, `"overall_match_score": "high"`, 1)
	if err := validateResultSchema([]byte(raw)); err == nil {
		t.Fatal("expected error for non-numeric score")
	}
}
