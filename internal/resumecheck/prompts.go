package resumecheck

import "fmt"

func checkPrompt(resumeText, jobDescription, analysisType, role string) string {
	prefix := rolePromptPrefix(role)
	switch analysisType {
	case AnalysisQuick:
		return fmt.Sprintf(`%sYou are ResumeChecker, an expert in resume analysis. Provide a quick scan of the following resume:

1. Identify the most suitable profession for this resume.
2. List 3 key strengths of the resume.
3. Suggest 2 quick improvements.
4. Give an overall ATS score out of 100. Make sure to evaluate properly and VARY the score based on the resume quality, avoid giving the same score to all resumes.

Resume text: %s
Job description (if provided): %s`, prefix, resumeText, jobDescription)
	case AnalysisDetailed:
		return fmt.Sprintf(`%sYou are ResumeChecker, an expert in resume analysis. Provide a detailed analysis of the following resume:

1. Identify the most suitable profession for this resume.
2. List 5 strengths of the resume.
3. Suggest 3-5 areas for improvement with specific recommendations.
4. Rate the following aspects out of 10: Impact, Brevity, Style, Structure, Skills.
5. Provide a brief review of each major section (e.g., Summary, Experience, Education).
6. Give an overall ATS score out of 100 with a breakdown of the scoring. Make sure to evaluate properly and VARY the score based on the resume quality, avoid giving the same score to all resumes.

Resume text: %s
Job description (if provided): %s`, prefix, resumeText, jobDescription)
	default:
		return fmt.Sprintf(`%sYou are ResumeChecker, an expert in ATS optimization. Analyze the following resume and provide optimization suggestions:

1. Identify keywords from the job description that should be included in the resume.
2. Suggest reformatting or restructuring to improve ATS readability.
3. Recommend changes to improve keyword density without keyword stuffing.
4. Provide 3-5 bullet points on how to tailor this resume for the specific job description.
5. Give an ATS compatibility score out of 100 and explain how to improve it. Make sure to evaluate properly and VARY the score based on the resume quality, avoid giving the same score to all resumes.

Resume text: %s
Job description: %s`, prefix, resumeText, jobDescription)
	}
}

func skillExtractPrompt(resumeText string) string {
	return fmt.Sprintf(`Analyze this resume and extract all technical skills mentioned.
Return ONLY a JSON array of skill objects in this format:
[
    {"skill": "Skill Name", "score": 85},
    {"skill": "Another Skill", "score": 78}
]

The score should be between 70-95 based on how prominently the skill appears in the resume.
Limit to the top 5-7 most relevant skills.

Resume text: %s`, resumeText)
}

func skillMatchPrompt(resumeText, jobDescription, role string) string {
	return fmt.Sprintf(`You are an expert ATS (Applicant Tracking System) analyzer.

First, extract all technical skills from this job description for a %s position.

Then, analyze the resume and identify which skills from the job description are present in the resume.
Also identify additional relevant skills in the resume that might be valuable for this position.

Return ONLY a JSON array of skill objects in this format:
[
    {"skill": "Skill Name", "score": 88, "jobMatch": true},
    {"skill": "Another Skill", "score": 75, "jobMatch": false}
]

Rules:
- The "score" should be between 70-95
- Give higher scores (85-95) to skills that match the job requirements
- Give lower scores (70-84) to skills that are in the resume but not specifically mentioned in the job
- The "jobMatch" boolean should be true if the skill is mentioned in the job description
- Focus only on the most relevant 5-7 skills for this specific job role
- Prioritize skills that are actually in the resume, don't make them up

Job description: %s

Resume text: %s`, role, jobDescription, resumeText)
}

func recommendationsPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are a career advisor specializing in tech careers. Based on the following resume and job description,
suggest 3-5 skills the candidate should develop to improve their career prospects.

For each skill:
1. Name the skill
2. Explain why it's important (1-2 sentences)
3. Suggest 2 specific courses or resources to learn this skill

Format your response as a JSON array with this structure:
[
    {
        "skill": "Skill Name",
        "why": "Brief explanation of importance",
        "courses": [
            { "title": "Course Title 1", "platform": "Platform Name", "url": "course_url" },
            { "title": "Course Title 2", "platform": "Platform Name", "url": "course_url" }
        ]
    }
]

Resume text: %s
Job description (if provided): %s`, resumeText, jobDescription)
}
