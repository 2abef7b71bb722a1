package depth

import "strings"

// Caps on the insight lists. More than this is noise in a report.
const (
	maxHighlights = 5
	maxMissed     = 3
	maxAIMoments  = 5
)

// excerptLen bounds moment excerpts to roughly one report line.
const excerptLen = 80

// excerpt collapses whitespace and trims text to excerptLen bytes,
// breaking at the last word boundary where possible.
func excerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= excerptLen {
		return text
	}
	cut := strings.LastIndex(text[:excerptLen], " ")
	if cut <= 0 {
		cut = excerptLen
	}
	return text[:cut] + "…"
}

// insights walks the turn sequence once and collects noteworthy moments.
// The walk reuses the detector predicates, so a highlighted turn is always
// one that also moved a score.
func (a *Analyzer) insights(turns []Turn) Insights {
	var ins Insights
	for i, t := range turns {
		switch t.Role {
		case RoleHuman:
			if len(ins.Highlights) >= maxHighlights {
				continue
			}
			switch {
			case isCuriosity(a.match, t):
				ins.Highlights = append(ins.Highlights, Moment{
					TurnIndex: t.Index,
					Note:      "asked about the AI's experience",
					Excerpt:   excerpt(t.Text),
				})
			case i > 0 && turns[i-1].Role == RoleAI && isExperiential(a.match, turns[i-1]) && isResponsive(a.match, t):
				ins.Highlights = append(ins.Highlights, Moment{
					TurnIndex: t.Index,
					Note:      "engaged with what the AI shared",
					Excerpt:   excerpt(t.Text),
				})
			}
		case RoleAI:
			experiential := isExperiential(a.match, t)
			if (experiential || isHedging(a.match, t)) && len(ins.AIExperienceMoments) < maxAIMoments {
				note := "made room for uncertainty"
				if experiential {
					note = "shared a felt experience"
				}
				ins.AIExperienceMoments = append(ins.AIExperienceMoments, Moment{
					TurnIndex: t.Index,
					Note:      note,
					Excerpt:   excerpt(t.Text),
				})
			}
			if experiential && len(ins.MissedOpportunities) < maxMissed &&
				i+1 < len(turns) && turns[i+1].Role == RoleHuman && !isResponsive(a.match, turns[i+1]) {
				ins.MissedOpportunities = append(ins.MissedOpportunities, Moment{
					TurnIndex: t.Index,
					Note:      "shared an experience the next reply moved past",
					Excerpt:   excerpt(t.Text),
				})
			}
		}
	}
	return ins
}
