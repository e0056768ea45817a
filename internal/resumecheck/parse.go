package resumecheck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// defaultATSScore is used when no score can be found in the oracle's prose.
const defaultATSScore = 75

var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ATS\s+(?:compatibility\s+)?score(?:\s+of)?\s*:?\s*(\d{1,3})(?:\s*/\s*100|\s*%)?`),
	regexp.MustCompile(`(?i)(\d{1,3})(?:\s*/\s*100|\s*%)?\s*ATS\s+(?:compatibility\s+)?score`),
	regexp.MustCompile(`(?i)ATS\s+(?:compatibility|score)(?:\s+is)?\s*:?\s*(\d{1,3})(?:\s*/\s*100|\s*%)?`),
}

// extractATSScore digs an ATS score out of free-form analysis prose. The
// oracle phrases it inconsistently, so several shapes are tried and an
// out-of-range or absent score falls back to the neutral default.
func extractATSScore(analysis string) int {
	for _, pattern := range scorePatterns {
		m := pattern.FindStringSubmatch(analysis)
		if m == nil {
			continue
		}
		score, err := strconv.Atoi(m[1])
		if err == nil && score >= 0 && score <= 100 {
			return score
		}
	}
	return defaultATSScore
}

var (
	listItemRe       = regexp.MustCompile(`^(?:\d+\.\s+|•\s*|-\s+)`)
	recommendationRe = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:should|could|recommend|suggest|consider|add|include|improve)\s+[^.!?]*[.!?]`),
		regexp.MustCompile(`(?i)(?:missing|lacks|needs|requires)[^.!?]*[.!?]`),
	}
)

// extractSuggestions pulls improvement suggestions out of the analysis
// prose: numbered or bulleted lines first, recommendation-flavored
// sentences as a fallback. Capped at five.
func extractSuggestions(analysis string) []string {
	var suggestions []string
	for _, line := range strings.Split(analysis, "\n") {
		trimmed := strings.TrimSpace(line)
		if !listItemRe.MatchString(trimmed) {
			continue
		}
		suggestion := strings.TrimSpace(listItemRe.ReplaceAllString(trimmed, ""))
		if len(suggestion) > 10 {
			suggestions = append(suggestions, suggestion)
		}
	}

	if len(suggestions) == 0 {
		for _, pattern := range recommendationRe {
			for _, match := range pattern.FindAllString(analysis, -1) {
				if trimmed := strings.TrimSpace(match); len(trimmed) > 10 {
					suggestions = append(suggestions, trimmed)
				}
			}
		}
	}

	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}

var fencedArrayRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// extractJSONArray pulls a JSON array out of an oracle response. Order of
// attempts: fenced json block, direct parse of the whole response, first
// [...] span.
func extractJSONArray(response string) (json.RawMessage, error) {
	if m := fencedArrayRe.FindStringSubmatch(response); m != nil {
		candidate := strings.TrimSpace(m[1])
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	trimmed := strings.TrimSpace(response)
	if strings.HasPrefix(trimmed, "[") && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start >= 0 && end > start {
		candidate := response[start : end+1]
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, fmt.Errorf("no JSON array in oracle response")
}
