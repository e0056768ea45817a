package matching

// scoreNoteAdjusted discloses that the raw oracle score was re-scaled.
const scoreNoteAdjusted = "Score was adjusted to better reflect candidate potential and transferable skills."

// Normalize applies the re-scaling curve to a raw oracle score. Scores below
// 75 are boosted proportionally to their distance from 75 and capped at 98;
// scores of 75 and above pass through unchanged with an empty note.
//
//	new = min(98, floor(raw + (75-raw)*0.4))
func Normalize(raw int) (int, string) {
	if raw >= 75 {
		return raw, ""
	}
	adjusted := float64(raw) + float64(75-raw)*0.4
	score := int(adjusted)
	if score > 98 {
		score = 98
	}
	return score, scoreNoteAdjusted
}
