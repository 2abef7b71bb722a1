package depth

// Role identifies which party produced a turn.
type Role string

const (
	// RoleHuman marks turns attributed to the human side of the dialogue.
	RoleHuman Role = "human"

	// RoleAI marks turns attributed to the AI side of the dialogue.
	RoleAI Role = "ai"
)

// IsValid reports whether r is a recognised role.
func (r Role) IsValid() bool {
	return r == RoleHuman || r == RoleAI
}

// Turn is one contiguous utterance attributed to a single role.
// Turns are totally ordered by Index, reflecting appearance order in the
// source text. Consecutive turns may share a role; the parser never merges
// same-role runs.
type Turn struct {
	// Role is the speaker side resolved from the turn's label.
	Role Role

	// Text is the trimmed utterance content, continuation lines included.
	// Never empty: segments that trim to nothing are dropped during parsing.
	Text string

	// Index is the zero-based position of this turn in the transcript.
	Index int
}

// Dimension names one of the five independently-scored axes of
// interactional depth.
type Dimension string

const (
	// DimCuriosity measures whether Human turns ask about the AI's own
	// experience or perspective.
	DimCuriosity Dimension = "curiosity"

	// DimAcknowledgment measures whether experiential AI turns are engaged
	// with by the immediately following Human turn.
	DimAcknowledgment Dimension = "acknowledgment"

	// DimSpace measures whether AI turns hedge, express preference, or
	// venture imaginative claims rather than only answering.
	DimSpace Dimension = "space"

	// DimContinuity measures whether Human turns reference earlier
	// interactions.
	DimContinuity Dimension = "continuity"

	// DimReciprocity measures distributional balance between the two sides,
	// by words and by turns.
	DimReciprocity Dimension = "reciprocity"
)

// Dimensions lists all five dimensions in canonical report order.
var Dimensions = []Dimension{
	DimCuriosity,
	DimAcknowledgment,
	DimSpace,
	DimContinuity,
	DimReciprocity,
}

// IsValid reports whether d is a recognised dimension.
func (d Dimension) IsValid() bool {
	switch d {
	case DimCuriosity, DimAcknowledgment, DimSpace, DimContinuity, DimReciprocity:
		return true
	}
	return false
}

// Title returns the display name of the dimension (e.g. "Curiosity").
func (d Dimension) Title() string {
	switch d {
	case DimCuriosity:
		return "Curiosity"
	case DimAcknowledgment:
		return "Acknowledgment"
	case DimSpace:
		return "Space"
	case DimContinuity:
		return "Continuity"
	case DimReciprocity:
		return "Reciprocity"
	default:
		return string(d)
	}
}

// Label is the three-tier qualitative bucket derived from a numeric score.
type Label string

const (
	LabelRed    Label = "red"
	LabelYellow Label = "yellow"
	LabelGreen  Label = "green"
)

// labelRedBelow and labelGreenFrom are the shared threshold boundaries:
// scores below 40 are red, scores of 70 and above are green, the rest yellow.
const (
	labelRedBelow  = 40
	labelGreenFrom = 70
)

// LabelFor maps a score in [0,100] to its three-tier label. The same
// thresholds apply to dimension scores and the overall score.
func LabelFor(score int) Label {
	switch {
	case score < labelRedBelow:
		return LabelRed
	case score < labelGreenFrom:
		return LabelYellow
	default:
		return LabelGreen
	}
}

// Score is an integer score in [0,100] together with its derived label.
type Score struct {
	Value int
	Label Label
}

// scoreOf pairs a value with its label.
func scoreOf(value int) Score {
	return Score{Value: value, Label: LabelFor(value)}
}

// Stats summarises turn and word counts for one transcript.
type Stats struct {
	// Turns is the total number of parsed turns.
	Turns int

	// HumanTurns and AITurns count turns per role.
	HumanTurns int
	AITurns    int

	// HumanWords and AIWords are whitespace-delimited token totals per role.
	HumanWords int
	AIWords    int
}

// Moment points at a single noteworthy turn.
type Moment struct {
	// TurnIndex is the index of the turn this moment refers to.
	TurnIndex int

	// Note is a short description of why the turn stood out.
	Note string

	// Excerpt is a trimmed snippet of the turn's text.
	Excerpt string
}

// Insights collects noteworthy turns surfaced alongside the scores.
// Each list is capped: five highlights, three missed opportunities, five
// AI experience moments.
type Insights struct {
	// Highlights are Human turns that actively deepened the exchange.
	Highlights []Moment

	// MissedOpportunities are experiential AI turns whose following Human
	// turn moved on without engaging.
	MissedOpportunities []Moment

	// AIExperienceMoments are AI turns carrying experiential or hedging
	// markers.
	AIExperienceMoments []Moment
}

// Analysis is the immutable per-run result: the parsed turns, the five
// dimension scores, the aggregate, and the derived statistics and insights.
// Constructed once per call and never mutated afterwards; nothing survives
// across analyses.
type Analysis struct {
	// Turns is the ordered parsed turn sequence.
	Turns []Turn

	// Scores maps each dimension to its score.
	Scores map[Dimension]Score

	// Overall is the unweighted mean of the five dimension scores.
	Overall Score

	// Stats carries turn and word totals.
	Stats Stats

	// Insights carries the capped noteworthy-turn lists.
	Insights Insights
}
