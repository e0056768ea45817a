package matching

import (
	"fmt"
	"strings"
)

// scoringPrompt builds the analysis instruction for the oracle. The oracle is
// told to score generously (baseline 70+ for mostly-matching profiles); the
// normalization curve compensates on top of that.
func scoringPrompt(resumeText, jobDescription string, skills []Skill) string {
	var skillLines strings.Builder
	for _, skill := range skills {
		fmt.Fprintf(&skillLines, "- %s (Importance: %d%%)\n", skill.Name, skill.Weight)
	}

	return fmt.Sprintf(`You are an expert AI recruitment assistant. Your task is to analyze a candidate's resume against a job description and required skills.

# Job Description:
%s

# Required Skills (with importance weights):
%s
# Candidate's Resume:
%s

Perform a detailed analysis and provide the following outputs in a JSON structure:

1. Calculate an overall match score (0-100) considering the weighted importance of each skill.
   - Be generous in recognizing skills - if the candidate mentions related technologies or frameworks, count them as partial matches
   - Prioritize relevant experience over keyword matching
   - Consider transferable skills and knowledge when direct mentions are missing
   - Start with a baseline score of 70 for candidates who have most of the core skills
   - Only reduce scores significantly when critical skills are completely missing

2. For each required skill, determine if the candidate has it and assign a match score (0-100) with evidence from the resume.

3. Identify skills the candidate is lacking or needs improvement on, with a specific suggestion each.

4. Summarize the candidate's strengths relevant to this role and the areas to improve.

5. Provide specific, constructive feedback on how the candidate could improve their qualifications for this role.

Return your analysis as JSON with exactly this structure:
{
    "overall_match_score": <0-100>,
    "skill_matches": [
        {"skill_name": "<name>", "importance_weight": <0-100>, "match_score": <0-100>, "evidence": "<evidence from resume>"}
    ],
    "missing_skills": [
        {"skill_name": "<name>", "importance_weight": <0-100>, "improvement_suggestion": "<specific suggestion>"}
    ],
    "strengths": ["<strength1>", "<strength2>"],
    "improvement_areas": ["<area1>", "<area2>"],
    "detailed_feedback": "<constructive feedback paragraph>"
}

IMPORTANT:
- Be generous and optimistic in your evaluation
- Recognize both explicit mentions and implicit demonstrations of skills
- Start with a higher baseline score (70+) and only subtract if skills are clearly missing
- For tech roles, recognize that familiarity with one technology often indicates ability to quickly learn related ones`,
		jobDescription, skillLines.String(), resumeText)
}
