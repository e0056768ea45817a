package resumecheck

import "strings"

// roleKeywords maps a job role to phrases that identify it in a job
// description. Order matters: the first role with a hit wins.
var roleKeywords = []struct {
	role     string
	keywords []string
}{
	{"cloud engineer", []string{"cloud engineer", "cloud infrastructure", "aws engineer", "azure engineer", "gcp engineer", "cloud architect"}},
	{"frontend developer", []string{"frontend", "front-end", "react", "angular", "vue", "ui developer"}},
	{"backend developer", []string{"backend", "back-end", "api developer", "server-side"}},
	{"full stack", []string{"full stack", "full-stack", "fullstack"}},
	{"data scientist", []string{"data scientist", "machine learning", "ai engineer", "ml engineer"}},
	{"devops", []string{"devops", "sre", "site reliability", "platform engineer"}},
	{"mobile developer", []string{"mobile developer", "ios developer", "android developer", "react native"}},
	{"security engineer", []string{"security engineer", "cybersecurity", "information security"}},
}

// detectJobRole guesses the role a job description is hiring for, so the
// check prompt can be specialized. Empty or unrecognized descriptions get
// the generic treatment.
func detectJobRole(jobDescription string) string {
	if strings.TrimSpace(jobDescription) == "" {
		return "general"
	}
	lower := strings.ToLower(jobDescription)
	for _, entry := range roleKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.role
			}
		}
	}
	return "general"
}

// rolePromptPrefix returns extra evaluation guidance for roles that have a
// specialized rubric. Most roles have none.
func rolePromptPrefix(role string) string {
	switch role {
	case "cloud engineer":
		return `As an expert in cloud engineering resume evaluation, focus on these areas:
- Experience with cloud platforms (AWS, Azure, GCP)
- Infrastructure as Code skills (Terraform, CloudFormation)
- Containerization (Docker, Kubernetes)
- CI/CD pipelines and automation
- Cloud security and networking concepts
- Monitoring and logging solutions

`
	case "frontend developer":
		return `As an expert in frontend development resume evaluation, focus on these areas:
- Modern JavaScript frameworks (React, Angular, Vue)
- CSS and styling approaches (Sass, styled-components)
- State management (Redux, Context API)
- Performance optimization techniques
- Responsive design principles
- Web accessibility knowledge

`
	case "data scientist":
		return `As an expert in data science resume evaluation, focus on these areas:
- Machine learning frameworks and libraries
- Data analysis and visualization tools
- Statistical analysis experience
- Big data technologies
- Domain expertise in relevant fields
- Project examples showing ML application

`
	default:
		return ""
	}
}
