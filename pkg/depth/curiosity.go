package depth

import "strings"

// curiosityDetector scores the fraction of Human turns that direct a
// question at the AI's internal state. Presence-based scoring over all
// Human turns rewards breadth of curiosity across the conversation rather
// than a single strong instance.
type curiosityDetector struct {
	m     *matcher
	round Rounding
}

func (d *curiosityDetector) Dimension() Dimension { return DimCuriosity }

func (d *curiosityDetector) Score(turns []Turn) int {
	matched, total := 0, 0
	for _, t := range turns {
		if t.Role != RoleHuman {
			continue
		}
		total++
		if isCuriosity(d.m, t) {
			matched++
		}
	}
	return percent(matched, total, d.round)
}

// isCuriosity reports whether a Human turn asks about the AI's experience:
// an interrogative marker plus a second-person cue plus an experience-verb
// cue. The question mark is checked on the raw text because normalisation
// strips punctuation.
func isCuriosity(m *matcher, t Turn) bool {
	if !strings.Contains(t.Text, "?") {
		return false
	}
	nt := normalize(t.Text)
	return m.any(nt, curiosityAddressCues) && m.any(nt, curiosityExperienceCues)
}
