package matching

// Skill is a job requirement with an importance percentage. Weights are
// independent; they need not sum to 100 across a job's skill list.
type Skill struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// SkillMatch records evidence that a candidate possesses a required skill.
type SkillMatch struct {
	SkillName        string `json:"skill_name"`
	ImportanceWeight int    `json:"importance_weight"`
	MatchScore       int    `json:"match_score"`
	Evidence         string `json:"evidence"`
}

// MissingSkill records a required skill with no supporting evidence.
type MissingSkill struct {
	SkillName             string `json:"skill_name"`
	ImportanceWeight      int    `json:"importance_weight"`
	ImprovementSuggestion string `json:"improvement_suggestion"`
}

// AnalysisResult is the canonical output of a resume-to-job analysis.
// OverallMatchScore is always present and in [0,100]; every scoring path,
// including total failure, produces one of these.
type AnalysisResult struct {
	OverallMatchScore int            `json:"overall_match_score"`
	SkillMatches      []SkillMatch   `json:"skill_matches"`
	MissingSkills     []MissingSkill `json:"missing_skills"`
	Strengths         []string       `json:"strengths"`
	ImprovementAreas  []string       `json:"improvement_areas"`
	DetailedFeedback  string         `json:"detailed_feedback"`
	ScoreNote         string         `json:"score_note,omitempty"`
}

// NoTextResult is the neutral default used when resume text could not be
// extracted; the scorer is never consulted in that case.
func NoTextResult() AnalysisResult {
	return AnalysisResult{
		OverallMatchScore: 70,
		SkillMatches:      []SkillMatch{},
		MissingSkills:     []MissingSkill{},
		Strengths:         []string{"Unable to determine specific strengths due to resume processing issues"},
		ImprovementAreas:  []string{"Please ensure your resume is properly formatted"},
		DetailedFeedback: "We couldn't analyze your resume in detail, but we've assigned a provisional score. " +
			"Please ensure your resume is in a standard format (PDF, DOCX) for better results.",
	}
}

// LastResortResult is the fixed result returned when every scoring path,
// fallback included, has failed. The engine never returns "no result".
func LastResortResult() AnalysisResult {
	return AnalysisResult{
		OverallMatchScore: 75,
		SkillMatches:      []SkillMatch{},
		MissingSkills:     []MissingSkill{},
		Strengths:         []string{"Technical background present but couldn't analyze details"},
		ImprovementAreas:  []string{"Consider formatting resume for better parsing"},
		DetailedFeedback: "We encountered an issue analyzing your resume in detail, but your background appears relevant. " +
			"For more accurate matching, ensure your resume clearly lists your technical skills and experience.",
	}
}
