package depth

// continuityDetector scores the share of Human turns that reach back to
// earlier conversation. Backward references in AI turns deliberately do
// not count; assistants recap by habit, so only the Human's callbacks say
// something about investment in the shared history.
type continuityDetector struct {
	m     *matcher
	round Rounding
}

func (d *continuityDetector) Dimension() Dimension { return DimContinuity }

func (d *continuityDetector) Score(turns []Turn) int {
	matched, total := 0, 0
	for _, t := range turns {
		if t.Role != RoleHuman {
			continue
		}
		total++
		if isContinuity(d.m, t) {
			matched++
		}
	}
	return percent(matched, total, d.round)
}

// isContinuity reports whether a Human turn references earlier exchanges.
func isContinuity(m *matcher, t Turn) bool {
	return m.any(normalize(t.Text), continuityCues)
}
