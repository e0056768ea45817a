package resumecheck

// SkillRating is one skill surfaced by the resume check, scored 70-95 by
// how prominently it appears. JobMatch marks skills the job description
// asks for.
type SkillRating struct {
	Skill    string `json:"skill"`
	Score    int    `json:"score"`
	JobMatch bool   `json:"jobMatch"`
}

// Course points at a learning resource for a recommended skill.
type Course struct {
	Title    string `json:"title"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Recommendation suggests a skill the candidate should develop, with
// courses to learn it.
type Recommendation struct {
	Skill   string   `json:"skill"`
	Why     string   `json:"why"`
	Courses []Course `json:"courses"`
}

// CheckResult is the full output of a standalone resume check.
type CheckResult struct {
	ATSScore        int              `json:"atsScore"`
	SkillMatches    []SkillRating    `json:"skillMatches"`
	Suggestions     []string         `json:"suggestions"`
	Recommendations []Recommendation `json:"skillRecommendations"`
	FullAnalysis    string           `json:"fullAnalysis"`
	JobRole         string           `json:"jobRole"`
	JobDescription  string           `json:"jobDescription"`
}

// Analysis depth requested by the caller. Anything unrecognized falls
// through to the ATS-optimization prompt.
const (
	AnalysisQuick    = "quick"
	AnalysisDetailed = "detailed"
	AnalysisOptimize = "optimize"
)
