package depth

import (
	"regexp"
	"strings"
)

// turnStart matches a line that opens a new turn: optional leading
// whitespace, a recognised role label, optional whitespace, a colon, then
// the first line of the turn's text. Any colon-containing line that does
// not match a known label is treated as continuation text, not a boundary.
var turnStart = regexp.MustCompile(`(?i)^\s*(human|user|you|ai|assistant|claude|gpt|clio|bot)\s*:\s*(.*)$`)

// roleForLabel resolves a matched label (any case) to its role.
var roleForLabel = map[string]Role{
	"human":     RoleHuman,
	"user":      RoleHuman,
	"you":       RoleHuman,
	"ai":        RoleAI,
	"assistant": RoleAI,
	"claude":    RoleAI,
	"gpt":       RoleAI,
	"clio":      RoleAI,
	"bot":       RoleAI,
}

// Parse splits raw transcript text into an ordered sequence of attributed
// turns.
//
// The scan is line-based: a line matching a recognised "Label:" prefix
// starts a new turn, and every following line up to the next match accretes
// onto that turn's text. Lines before the first label are preamble and are
// discarded. A turn whose accumulated text trims to nothing is dropped
// rather than kept as a degenerate entry, so indices stay contiguous.
//
// Text with no recognised label anywhere yields an empty, non-nil slice.
// Parse never fails; downstream scoring treats an empty sequence as a
// valid zero-signal transcript.
func Parse(raw string) []Turn {
	turns := []Turn{}

	var (
		open bool
		role Role
		buf  []string
	)

	flush := func() {
		if !open {
			return
		}
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		if text != "" {
			turns = append(turns, Turn{Role: role, Text: text, Index: len(turns)})
		}
		open = false
		buf = buf[:0]
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if m := turnStart.FindStringSubmatch(line); m != nil {
			flush()
			open = true
			role = roleForLabel[strings.ToLower(m[1])]
			buf = append(buf, m[2])
			continue
		}

		if open {
			buf = append(buf, line)
		}
	}
	flush()

	return turns
}

// countWords returns the whitespace-delimited token count of s.
func countWords(s string) int {
	return len(strings.Fields(s))
}

// statsFor derives turn and word totals from a parsed turn sequence.
func statsFor(turns []Turn) Stats {
	st := Stats{Turns: len(turns)}
	for _, t := range turns {
		switch t.Role {
		case RoleHuman:
			st.HumanTurns++
			st.HumanWords += countWords(t.Text)
		case RoleAI:
			st.AITurns++
			st.AIWords += countWords(t.Text)
		}
	}
	return st
}
