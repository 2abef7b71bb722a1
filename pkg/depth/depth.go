// Package depth scores human/AI conversation transcripts along five
// independent dimensions of relational depth and aggregates them into a
// single connection score.
//
// The pipeline is Parse -> detectors -> aggregate. Every stage is total
// and deterministic: malformed input degrades to an empty turn sequence,
// transcripts with no applicable turns score 0 and running the same text
// twice yields identical results. The only error an [Analyzer] ever
// returns is context cancellation.
package depth

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Detector scores a single dimension over a parsed turn sequence.
// Implementations must be total and deterministic, must treat the turn
// slice as read-only and must not observe another detector's output, so
// the analyzer is free to run them concurrently.
type Detector interface {
	// Dimension identifies which dimension the detector scores.
	Dimension() Dimension

	// Score returns the dimension score in 0..100. Transcripts with no
	// applicable turns score 0.
	Score(turns []Turn) int
}

// Compile-time interface checks for the built-in detectors.
var (
	_ Detector = (*curiosityDetector)(nil)
	_ Detector = (*acknowledgmentDetector)(nil)
	_ Detector = (*spaceDetector)(nil)
	_ Detector = (*continuityDetector)(nil)
	_ Detector = (*reciprocityDetector)(nil)
)

// Analyzer parses transcripts and scores them. The zero value is not
// usable; construct one with [NewAnalyzer]. An Analyzer is immutable after
// construction and safe for concurrent use.
type Analyzer struct {
	round     Rounding
	match     *matcher
	detectors []Detector
}

// Option configures an [Analyzer].
type Option func(*Analyzer)

// WithRounding selects how fractional percentages become integer scores.
// Invalid policies are ignored and the half-up default is kept.
func WithRounding(r Rounding) Option {
	return func(a *Analyzer) {
		if r.IsValid() {
			a.round = r
		}
	}
}

// WithFuzzyMatching enables Jaro-Winkler fallback matching for cue words,
// so that near spellings such as "experiance" still register. threshold is
// the minimum similarity in (0, 1]; values outside that range fall back to
// the default 0.85. Disabled by default to keep scores bit-stable across
// runs of the exact same text.
func WithFuzzyMatching(threshold float64) Option {
	return func(a *Analyzer) {
		a.match.fuzzy = true
		if threshold > 0 && threshold <= 1 {
			a.match.threshold = threshold
		}
	}
}

// NewAnalyzer builds an Analyzer with the full detector set.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		round: RoundHalfUp,
		match: &matcher{threshold: defaultFuzzyThreshold},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.detectors = []Detector{
		&curiosityDetector{m: a.match, round: a.round},
		&acknowledgmentDetector{m: a.match, round: a.round},
		&spaceDetector{m: a.match, round: a.round},
		&continuityDetector{m: a.match, round: a.round},
		&reciprocityDetector{round: a.round},
	}
	return a
}

// Analyze parses raw transcript text and scores it along every dimension.
// Detectors run concurrently over the shared turn slice. The returned
// error is non-nil only when ctx is cancelled before scoring completes;
// unparseable input is not an error and yields an all-zero analysis.
func (a *Analyzer) Analyze(ctx context.Context, raw string) (*Analysis, error) {
	turns := Parse(raw)

	results := make([]int, len(a.detectors))
	g, gctx := errgroup.WithContext(ctx)
	for i, det := range a.detectors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = det.Score(turns)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scores := make(map[Dimension]Score, len(a.detectors))
	for i, det := range a.detectors {
		scores[det.Dimension()] = scoreOf(results[i])
	}

	return &Analysis{
		Turns:    turns,
		Scores:   scores,
		Overall:  aggregate(scores, a.round),
		Stats:    statsFor(turns),
		Insights: a.insights(turns),
	}, nil
}
