package matching

import (
	"context"
	"fmt"
	"strings"
)

const fallbackScoreNote = "Score was calculated using our fallback algorithm. " +
	"This provides a reasonable estimate but may be less precise than our AI-powered analysis."

const (
	exactMatchScore   = 90
	relatedMatchScore = 70
	zeroWeightScore   = 70
	evidenceWindow    = 50
)

// FallbackScorer is the deterministic keyword-based strategy used whenever
// the oracle strategy fails or is unavailable. Same inputs always yield the
// same score and the same matched/missing partition.
type FallbackScorer struct{}

// Score matches each required skill against the resume text by
// case-insensitive substring search, weighting exact name hits above
// related-technology hits.
func (FallbackScorer) Score(ctx context.Context, resumeText, jobDescription string, skills []Skill) (AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return AnalysisResult{}, err
	}
	_ = jobDescription

	resumeLower := strings.ToLower(resumeText)

	var (
		skillMatches  []SkillMatch
		missingSkills []MissingSkill
		totalScore    float64
		totalWeight   int
	)

	for _, skill := range skills {
		totalWeight += skill.Weight

		nameLower := strings.ToLower(skill.Name)
		keywords := append([]string{nameLower}, relatedKeywords[nameLower]...)

		var score int
		var evidence string
		for _, keyword := range keywords {
			idx := strings.Index(resumeLower, keyword)
			if idx < 0 {
				continue
			}
			window := contextWindow(resumeText, idx, len(keyword))
			if keyword == nameLower {
				score = exactMatchScore
				evidence = fmt.Sprintf("Direct mention of %s in context: '...%s...'", skill.Name, window)
				break
			}
			score = relatedMatchScore
			evidence = fmt.Sprintf("Related technology found (%s) in context: '...%s...'", keyword, window)
		}

		totalScore += float64(score) * float64(skill.Weight) / 100

		if score > 0 {
			skillMatches = append(skillMatches, SkillMatch{
				SkillName:        skill.Name,
				ImportanceWeight: skill.Weight,
				MatchScore:       score,
				Evidence:         evidence,
			})
		} else {
			missingSkills = append(missingSkills, MissingSkill{
				SkillName:             skill.Name,
				ImportanceWeight:      skill.Weight,
				ImprovementSuggestion: fmt.Sprintf("Consider adding experience with %s to your resume.", skill.Name),
			})
		}
	}

	overall := zeroWeightScore
	if totalWeight > 0 {
		overall = int(totalScore / (float64(totalWeight) / 100))
	}

	result := AnalysisResult{
		OverallMatchScore: overall,
		SkillMatches:      emptyIfNilMatches(skillMatches),
		MissingSkills:     emptyIfNilMissing(missingSkills),
		Strengths:         fallbackStrengths(skillMatches),
		ImprovementAreas:  fallbackImprovementAreas(missingSkills),
		DetailedFeedback:  fallbackFeedback(skillMatches, missingSkills),
		ScoreNote:         fallbackScoreNote,
	}
	return result, nil
}

// contextWindow returns the surrounding text for an evidence excerpt, with
// newlines flattened.
func contextWindow(text string, idx, keywordLen int) string {
	start := idx - evidenceWindow
	if start < 0 {
		start = 0
	}
	end := idx + keywordLen + evidenceWindow
	if end > len(text) {
		end = len(text)
	}
	window := strings.ReplaceAll(text[start:end], "\n", " ")
	return strings.TrimSpace(window)
}

func fallbackStrengths(matches []SkillMatch) []string {
	if len(matches) == 0 {
		return []string{"Technical background present but couldn't analyze details"}
	}
	strengths := make([]string, 0, 3)
	for _, m := range matches {
		if len(strengths) == 3 {
			break
		}
		strengths = append(strengths, fmt.Sprintf("Strong background in %s", m.SkillName))
	}
	return strengths
}

func fallbackImprovementAreas(missing []MissingSkill) []string {
	areas := make([]string, 0, 3)
	for _, m := range missing {
		if len(areas) == 3 {
			break
		}
		areas = append(areas, fmt.Sprintf("Develop skills in %s", m.SkillName))
	}
	if len(areas) == 0 {
		return []string{"Consider enhancing your resume with more specific accomplishments"}
	}
	return areas
}

func fallbackFeedback(matches []SkillMatch, missing []MissingSkill) string {
	if len(missing) == 0 {
		return "Your resume shows a good match for this position. Consider highlighting specific achievements to stand out further."
	}

	matchedNames := make([]string, 0, 2)
	for _, m := range matches {
		if len(matchedNames) == 2 {
			break
		}
		matchedNames = append(matchedNames, m.SkillName)
	}
	missingNames := make([]string, 0, len(missing))
	for _, m := range missing {
		missingNames = append(missingNames, m.SkillName)
	}

	return fmt.Sprintf("Your resume shows strength in %s but could benefit from adding experience with %s.",
		strings.Join(matchedNames, ", "), strings.Join(missingNames, ", "))
}

func emptyIfNilMatches(matches []SkillMatch) []SkillMatch {
	if matches == nil {
		return []SkillMatch{}
	}
	return matches
}

func emptyIfNilMissing(missing []MissingSkill) []MissingSkill {
	if missing == nil {
		return []MissingSkill{}
	}
	return missing
}
