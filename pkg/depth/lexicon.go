package depth

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/unicode/norm"
)

// ─────────────────────────────────────────────────────────────────────────────
// Cue tables
// ─────────────────────────────────────────────────────────────────────────────
//
// Cues are plain immutable data, written in natural spelling and rewritten
// into canonical matching form (NFKC, lower case, punctuation stripped) at
// package init. Single-word cues match whole tokens; multi-word cues match
// as boundary-padded substrings of the normalised text. Keeping the tables
// here, away from the detectors, lets them be tested on their own.

// curiosityAddressCues is the second-person half of the curiosity cue.
var curiosityAddressCues = normalizeCues([]string{
	"you", "your", "yours", "yourself",
})

// curiosityExperienceCues is the experience-verb half of the curiosity cue.
// A Human turn counts as curious when it carries a question mark plus one
// cue from each half.
var curiosityExperienceCues = normalizeCues([]string{
	"feel", "feels", "feeling", "felt",
	"think", "thinks", "thinking", "thought",
	"experience", "experiences", "experienced",
	"prefer", "prefers", "preferred",
	"like", "enjoy", "enjoys", "find", "want", "wants",
	"perspective", "opinion", "view", "matters",
	"curious", "excited", "interested",
})

// responsiveCues mark a Human turn that engages with what the AI just
// shared rather than issuing an unrelated new command.
var responsiveCues = normalizeCues([]string{
	"that's interesting", "that is interesting", "really interesting",
	"that's cool", "that's beautiful", "that's thoughtful",
	"makes sense", "i see", "i understand", "i hear you",
	"thank you for", "i appreciate", "wow",
	"i didn't know", "i hadn't thought", "i never thought",
	"that matters", "i'm glad", "i think that",
	"good to know", "tell me more",
})

// experientialCues mark an AI turn that expresses a first-person
// subjective or experiential claim.
var experientialCues = normalizeCues([]string{
	"i feel", "i felt", "i think", "i find", "i wonder",
	"i enjoy", "i love", "i appreciate", "i notice", "i experience",
	"i'm excited", "i am excited", "i'm curious", "i am curious",
	"i'm happy", "i'm grateful", "i'm uncertain",
	"excites me", "interests me", "moves me", "matters to me",
	"it feels", "feels meaningful", "feels different", "feels important",
	"meaningful to me", "special to me", "important to me",
})

// hedgingCues mark an AI turn that hedges, states a preference, or
// ventures an imaginative claim instead of only answering.
var hedgingCues = normalizeCues([]string{
	"i think", "i'm not sure", "i am not sure", "not sure",
	"not fully sure", "i don't know", "i wonder",
	"maybe", "perhaps", "might", "uncertain",
	"my guess", "i guess", "i imagine", "if i imagine",
	"i'd prefer", "i prefer", "i'd want", "i'd like",
	"honestly", "it seems", "seems like", "hard to say",
})

// continuityCues mark a Human turn that references earlier interaction.
var continuityCues = normalizeCues([]string{
	"last time", "you said", "you mentioned", "you told me",
	"remember when", "earlier", "earlier you",
	"we talked about", "we discussed", "you've been",
	"our conversation", "yesterday", "previously",
})

// ─────────────────────────────────────────────────────────────────────────────
// Normalisation
// ─────────────────────────────────────────────────────────────────────────────

// normText is a turn's text prepared for cue matching.
type normText struct {
	// text is the canonical form: NFKC, lower case, punctuation replaced by
	// spaces, whitespace collapsed.
	text string

	// tokens is text split on spaces, in order.
	tokens []string

	// set holds tokens for O(1) single-word lookups.
	set map[string]struct{}
}

// normalize rewrites s into canonical matching form. NFKC folds compatibility
// variants (full-width forms, ligatures) so cue tables need only ASCII
// spellings.
func normalize(s string) normText {
	s = strings.ToLower(norm.NFKC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	tokens := strings.Fields(b.String())
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return normText{
		text:   strings.Join(tokens, " "),
		tokens: tokens,
		set:    set,
	}
}

// normalizeCues canonicalises a cue table, dropping entries that normalise
// to nothing.
func normalizeCues(cues []string) []string {
	out := make([]string, 0, len(cues))
	for _, c := range cues {
		if n := normalize(c).text; n != "" {
			out = append(out, n)
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Matcher
// ─────────────────────────────────────────────────────────────────────────────

// matcher checks normalised text against cue tables. The zero value matches
// exactly; enabling fuzzy adds a Jaro-Winkler fallback so near-miss spellings
// ("experiance", "intresting") still register. Read-only after construction,
// safe for concurrent use.
type matcher struct {
	fuzzy     bool
	threshold float64
}

// defaultFuzzyThreshold is the minimum Jaro-Winkler score for a fuzzy cue
// hit.
const defaultFuzzyThreshold = 0.85

// any reports whether t matches at least one cue in cues.
func (m *matcher) any(t normText, cues []string) bool {
	for _, cue := range cues {
		if m.match(t, cue) {
			return true
		}
	}
	return false
}

// match reports whether t matches a single cue. Multi-word cues match as
// boundary-padded substrings; single words as whole tokens. With fuzzy
// enabled, a sliding token window of the cue's width is compared by
// Jaro-Winkler as a fallback.
func (m *matcher) match(t normText, cue string) bool {
	width := strings.Count(cue, " ") + 1

	if width == 1 {
		if _, ok := t.set[cue]; ok {
			return true
		}
		if !m.fuzzy {
			return false
		}
		for _, tok := range t.tokens {
			if matchr.JaroWinkler(tok, cue, false) >= m.threshold {
				return true
			}
		}
		return false
	}

	if strings.Contains(" "+t.text+" ", " "+cue+" ") {
		return true
	}
	if !m.fuzzy || len(t.tokens) < width {
		return false
	}
	for i := 0; i+width <= len(t.tokens); i++ {
		window := strings.Join(t.tokens[i:i+width], " ")
		if matchr.JaroWinkler(window, cue, false) >= m.threshold {
			return true
		}
	}
	return false
}
