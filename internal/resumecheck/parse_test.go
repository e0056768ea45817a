package resumecheck

import (
	"strings"
	"testing"
)

func TestExtractATSScoreVariants(t *testing.T) {
	cases := []struct {
		analysis string
		want     int
	}{
		{"Overall ATS score: 82/100", 82},
		{"The resume earns an ATS compatibility score of 64.", 64},
		{"I'd give this a 91% ATS score.", 91},
		{"ATS score is 77", 77},
		{"A fine resume with no numbers at all.", 75},
		{"ATS score: 250/100 is nonsense", 75},
	}
	for _, tc := range cases {
		if got := extractATSScore(tc.analysis); got != tc.want {
			t.Errorf("extractATSScore(%q) = %d, want %d", tc.analysis, got, tc.want)
		}
	}
}

func TestExtractSuggestionsFromNumberedList(t *testing.T) {
	analysis := `Strengths noted above.
1. Add quantified achievements to your experience section.
2. Move the skills section above education.
- Include a short professional summary.
3. ok`

	got := extractSuggestions(analysis)
	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want 3: %v", len(got), got)
	}
	if got[0] != "Add quantified achievements to your experience section." {
		t.Errorf("unexpected first suggestion: %q", got[0])
	}
}

func TestExtractSuggestionsFallsBackToRecommendationSentences(t *testing.T) {
	analysis := "The resume lacks measurable outcomes in every role. You should consider adding a portfolio link."
	got := extractSuggestions(analysis)
	if len(got) == 0 {
		t.Fatal("expected suggestions from recommendation-flavored prose")
	}
	for _, s := range got {
		if len(s) <= 10 {
			t.Errorf("suggestion too short: %q", s)
		}
	}
}

func TestExtractSuggestionsCappedAtFive(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 8; i++ {
		b.WriteString("1. This is a perfectly reasonable suggestion line.\n")
	}
	if got := extractSuggestions(b.String()); len(got) != 5 {
		t.Fatalf("got %d suggestions, want cap of 5", len(got))
	}
}

func TestExtractJSONArrayFencedBlock(t *testing.T) {
	response := "Here you go:\n```json\n[{\"skill\": \"Go\", \"score\": 90}]\n```\nDone."
	raw, err := extractJSONArray(response)
	if err != nil {
		t.Fatalf("extractJSONArray: %v", err)
	}
	if !strings.Contains(string(raw), `"Go"`) {
		t.Errorf("unexpected extraction: %s", raw)
	}
}

func TestExtractJSONArrayBareSpan(t *testing.T) {
	response := `The skills are [{"skill": "SQL", "score": 80}] as requested.`
	raw, err := extractJSONArray(response)
	if err != nil {
		t.Fatalf("extractJSONArray: %v", err)
	}
	if string(raw) != `[{"skill": "SQL", "score": 80}]` {
		t.Errorf("unexpected extraction: %s", raw)
	}
}

func TestExtractJSONArrayRejectsProse(t *testing.T) {
	if _, err := extractJSONArray("no structured data here"); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestDetectJobRole(t *testing.T) {
	cases := []struct {
		description string
		want        string
	}{
		{"Looking for a cloud architect with AWS depth", "cloud engineer"},
		{"React developer for our web team", "frontend developer"},
		{"Server-side engineer, Go and Postgres", "backend developer"},
		{"Machine learning role in the analytics org", "data scientist"},
		{"Knitting instructor", "general"},
		{"", "general"},
	}
	for _, tc := range cases {
		if got := detectJobRole(tc.description); got != tc.want {
			t.Errorf("detectJobRole(%q) = %q, want %q", tc.description, got, tc.want)
		}
	}
}

func TestFallbackSkillRatingsDeterministicAndRanked(t *testing.T) {
	resume := "Built services in Python with Docker, some React on the side."
	job := "Python developer, Docker experience required"

	first := fallbackSkillRatings(resume, job)
	if len(first) == 0 {
		t.Fatal("expected skill ratings from keyword scan")
	}
	if !first[0].JobMatch {
		t.Errorf("job-matched skills should rank first: %+v", first)
	}
	for _, r := range first {
		if r.JobMatch && r.Score != fallbackJobMatchScore {
			t.Errorf("job-match score = %d, want %d", r.Score, fallbackJobMatchScore)
		}
		if !r.JobMatch && r.Score != fallbackOtherScore {
			t.Errorf("non-match score = %d, want %d", r.Score, fallbackOtherScore)
		}
	}

	again := fallbackSkillRatings(resume, job)
	if len(again) != len(first) {
		t.Fatalf("fallback ratings changed between runs")
	}
	for i := range first {
		if first[i] != again[i] {
			t.Fatalf("fallback ratings changed between runs: %+v vs %+v", first[i], again[i])
		}
	}
}
