package matching

// relatedKeywords maps a skill name (lowercase) to related technologies that
// count as partial matches in the fallback scorer. Static configuration, not
// mutable state.
var relatedKeywords = map[string][]string{
	"javascript": {"js", "typescript", "react", "vue", "angular", "node"},
	"python":     {"django", "flask", "pandas", "numpy", "scikit", "jupyter"},
	"java":       {"spring", "hibernate", "j2ee", "maven", "gradle"},
}
