package report

import (
	"encoding/json"
	"io"

	"github.com/MrWong99/rapport/pkg/depth"
)

// Result is the wire shape of one analysis. Every machine-readable surface
// emits this same document.
type Result struct {
	Overall    Score      `json:"overall"`
	Dimensions []DimScore `json:"dimensions"`
	Stats      Stats      `json:"stats"`
	Insights   *Insights  `json:"insights,omitempty"`
}

// Score carries a numeric score with its label.
type Score struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// DimScore is one dimension's score. Dimensions are emitted as an ordered
// list rather than a map so the document is stable across runs.
type DimScore struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Score
}

// Stats mirrors the analysis turn and word totals.
type Stats struct {
	Turns      int `json:"turns"`
	HumanTurns int `json:"human_turns"`
	AITurns    int `json:"ai_turns"`
	HumanWords int `json:"human_words"`
	AIWords    int `json:"ai_words"`
}

// Moment is one noteworthy turn. Turn is zero-based, matching the parsed
// turn sequence.
type Moment struct {
	Turn    int    `json:"turn"`
	Note    string `json:"note"`
	Excerpt string `json:"excerpt"`
}

// Insights groups the noteworthy-turn lists. Absent lists are omitted.
type Insights struct {
	Highlights          []Moment `json:"highlights,omitempty"`
	MissedOpportunities []Moment `json:"missed_opportunities,omitempty"`
	AIExperienceMoments []Moment `json:"ai_experience_moments,omitempty"`
}

// FromAnalysis converts an analysis into its wire shape.
func FromAnalysis(a *depth.Analysis) Result {
	res := Result{
		Overall: scoreDTO(a.Overall),
		Stats: Stats{
			Turns:      a.Stats.Turns,
			HumanTurns: a.Stats.HumanTurns,
			AITurns:    a.Stats.AITurns,
			HumanWords: a.Stats.HumanWords,
			AIWords:    a.Stats.AIWords,
		},
	}
	for _, dim := range depth.Dimensions {
		res.Dimensions = append(res.Dimensions, DimScore{
			Name:  string(dim),
			Title: dim.Title(),
			Score: scoreDTO(a.Scores[dim]),
		})
	}
	ins := Insights{
		Highlights:          momentDTOs(a.Insights.Highlights),
		MissedOpportunities: momentDTOs(a.Insights.MissedOpportunities),
		AIExperienceMoments: momentDTOs(a.Insights.AIExperienceMoments),
	}
	if len(ins.Highlights)+len(ins.MissedOpportunities)+len(ins.AIExperienceMoments) > 0 {
		res.Insights = &ins
	}
	return res
}

func scoreDTO(s depth.Score) Score {
	return Score{Value: s.Value, Label: string(s.Label)}
}

func momentDTOs(ms []depth.Moment) []Moment {
	out := make([]Moment, 0, len(ms))
	for _, m := range ms {
		out = append(out, Moment{Turn: m.TurnIndex, Note: m.Note, Excerpt: m.Excerpt})
	}
	return out
}

// WriteJSON writes the indented JSON document for one analysis to w.
func WriteJSON(w io.Writer, a *depth.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FromAnalysis(a))
}
