package resumecheck

import (
	"regexp"
	"sort"
	"strings"
)

// commonSkills is the keyword list scanned when the oracle's structured
// skill extraction fails. Static configuration.
var commonSkills = []string{
	"HTML", "CSS", "JavaScript", "TypeScript", "Python", "Java", "C#", "SQL",
	"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Git", "Jenkins",
	"Figma", "Sketch", "Adobe XD", "Photoshop", "Illustrator",
	"User Research", "Wireframing", "Prototyping", "UI Design", "UX Design",
}

const (
	fallbackJobMatchScore = 88
	fallbackOtherScore    = 76
)

// fallbackSkillRatings scans the resume for well-known skills by
// word-boundary match. Skills that also appear in the job description are
// ranked first and scored higher. Deterministic: same inputs, same output.
func fallbackSkillRatings(resumeText, jobDescription string) []SkillRating {
	jobLower := strings.ToLower(jobDescription)

	var ratings []SkillRating
	for _, skill := range commonSkills {
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
		if !pattern.MatchString(resumeText) {
			continue
		}
		inJob := jobLower != "" && strings.Contains(jobLower, strings.ToLower(skill))
		score := fallbackOtherScore
		if inJob {
			score = fallbackJobMatchScore
		}
		ratings = append(ratings, SkillRating{Skill: skill, Score: score, JobMatch: inJob})
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
	return ratings
}

// defaultRecommendations is the canned advice returned when the oracle
// cannot produce structured skill recommendations.
func defaultRecommendations() []Recommendation {
	return []Recommendation{
		{
			Skill: "Resume Formatting",
			Why:   "ATS systems need to properly parse your resume",
			Courses: []Course{
				{Title: "ATS-Friendly Resume Building", Platform: "LinkedIn Learning", URL: "https://www.linkedin.com/learning/"},
				{Title: "Resume Writing for Tech Professionals", Platform: "Udemy", URL: "https://www.udemy.com/"},
			},
		},
		{
			Skill: "Job-Specific Keywords",
			Why:   "Incorporate relevant keywords from job descriptions",
			Courses: []Course{
				{Title: "Keyword Optimization for Job Applications", Platform: "Coursera", URL: "https://www.coursera.org/"},
				{Title: "SEO Principles for Job Seekers", Platform: "Udemy", URL: "https://www.udemy.com/"},
			},
		},
		{
			Skill: "Technical Skill Development",
			Why:   "Keep your technical skills current and relevant",
			Courses: []Course{
				{Title: "Full Stack Web Development", Platform: "Udemy", URL: "https://www.udemy.com/"},
				{Title: "Cloud Certification Paths", Platform: "A Cloud Guru", URL: "https://acloudguru.com/"},
			},
		},
	}
}
