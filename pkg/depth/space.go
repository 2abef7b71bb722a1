package depth

// spaceDetector scores the share of AI turns that hedge, voice uncertainty
// or state a preference. A transcript where the AI only ever delivers flat
// answers scores 0; one where it routinely thinks out loud scores high.
type spaceDetector struct {
	m     *matcher
	round Rounding
}

func (d *spaceDetector) Dimension() Dimension { return DimSpace }

func (d *spaceDetector) Score(turns []Turn) int {
	matched, total := 0, 0
	for _, t := range turns {
		if t.Role != RoleAI {
			continue
		}
		total++
		if isHedging(d.m, t) {
			matched++
		}
	}
	return percent(matched, total, d.round)
}

// isHedging reports whether an AI turn carries a hedging, uncertainty or
// preference marker.
func isHedging(m *matcher, t Turn) bool {
	return m.any(normalize(t.Text), hedgingCues)
}
