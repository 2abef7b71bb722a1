package depth

import "math"

// Rounding selects how fractional percentages become integer scores.
// Half-up is the default; half-even and truncate are offered because the
// conversion rule is a policy point, not a hidden assumption.
type Rounding string

const (
	// RoundHalfUp rounds .5 away from zero. The default.
	RoundHalfUp Rounding = "half-up"

	// RoundHalfEven rounds .5 to the nearest even integer.
	RoundHalfEven Rounding = "half-even"

	// RoundTruncate drops the fractional part, mirroring tools that floor.
	RoundTruncate Rounding = "truncate"
)

// IsValid reports whether r is a recognised rounding policy.
func (r Rounding) IsValid() bool {
	switch r {
	case RoundHalfUp, RoundHalfEven, RoundTruncate:
		return true
	}
	return false
}

// apply converts x to an integer score under the policy, clamped to [0,100].
func (r Rounding) apply(x float64) int {
	var v int
	switch r {
	case RoundHalfEven:
		v = int(math.RoundToEven(x))
	case RoundTruncate:
		v = int(math.Trunc(x))
	default:
		v = int(math.Floor(x + 0.5))
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// percent converts a matched/total fraction to a 0–100 integer score.
// A non-positive total yields 0, which keeps every detector total on
// transcripts with no applicable turns.
func percent(matched, total int, r Rounding) int {
	if total <= 0 {
		return 0
	}
	return r.apply(100 * float64(matched) / float64(total))
}

// aggregate combines the five dimension scores into the overall score:
// the unweighted arithmetic mean, converted by the same rounding policy
// and labelled by the shared thresholds.
func aggregate(scores map[Dimension]Score, r Rounding) Score {
	if len(scores) == 0 {
		return scoreOf(0)
	}
	sum := 0
	for _, d := range Dimensions {
		sum += scores[d].Value
	}
	return scoreOf(r.apply(float64(sum) / float64(len(Dimensions))))
}
