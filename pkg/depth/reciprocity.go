package depth

// reciprocityDetector measures distributional balance instead of cue
// presence. Word volume and turn counts per side each contribute a
// min/max ratio in [0, 1]; the score is the equal-weight mean of the two,
// scaled to 0..100. Swapping every Human turn for an AI turn and vice
// versa leaves the score unchanged.
type reciprocityDetector struct {
	round Rounding
}

func (d *reciprocityDetector) Dimension() Dimension { return DimReciprocity }

func (d *reciprocityDetector) Score(turns []Turn) int {
	st := statsFor(turns)
	if st.HumanWords == 0 || st.AIWords == 0 {
		return 0
	}
	// Non-zero words on both sides imply at least one turn per side.
	wordBalance := ratio(st.HumanWords, st.AIWords)
	turnBalance := ratio(st.HumanTurns, st.AITurns)
	return d.round.apply(100 * (wordBalance + turnBalance) / 2)
}

// ratio returns min(a,b)/max(a,b). Callers guarantee max(a,b) > 0.
func ratio(a, b int) float64 {
	if a > b {
		a, b = b, a
	}
	return float64(a) / float64(b)
}
