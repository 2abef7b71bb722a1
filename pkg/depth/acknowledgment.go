package depth

// acknowledgmentDetector scores how often the Human engages with what the
// AI shares about itself. Only AI turns with first-person experiential
// content qualify for the denominator; each counts as acknowledged when
// the immediately following turn is a Human turn carrying a responsive
// marker. An AI turn at the end of the transcript qualifies but can never
// be acknowledged.
type acknowledgmentDetector struct {
	m     *matcher
	round Rounding
}

func (d *acknowledgmentDetector) Dimension() Dimension { return DimAcknowledgment }

func (d *acknowledgmentDetector) Score(turns []Turn) int {
	qualifying, acknowledged := 0, 0
	for i, t := range turns {
		if t.Role != RoleAI || !isExperiential(d.m, t) {
			continue
		}
		qualifying++
		if i+1 < len(turns) && turns[i+1].Role == RoleHuman && isResponsive(d.m, turns[i+1]) {
			acknowledged++
		}
	}
	return percent(acknowledged, qualifying, d.round)
}

// isExperiential reports whether an AI turn shares first-person inner
// state rather than plain information.
func isExperiential(m *matcher, t Turn) bool {
	return m.any(normalize(t.Text), experientialCues)
}

// isResponsive reports whether a Human turn engages with what preceded it
// instead of switching topic.
func isResponsive(m *matcher, t Turn) bool {
	return m.any(normalize(t.Text), responsiveCues)
}
