package depth

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases and strips punctuation", in: "What's it LIKE?", want: "what s it like"},
		{name: "collapses whitespace", in: "  spaced \t out \n text ", want: "spaced out text"},
		{name: "folds compatibility forms", in: "Ｈｅｌｌｏ ｗｏｒｌｄ", want: "hello world"},
		{name: "keeps digits", in: "turn 42!", want: "turn 42"},
		{name: "empty", in: "", want: ""},
		{name: "only punctuation", in: "?!...", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalize(tt.in).text; got != tt.want {
				t.Errorf("normalize(%q).text = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeCuesFoldsApostrophes(t *testing.T) {
	t.Parallel()

	got := normalizeCues([]string{"I'm glad", "  ", "WOW"})
	want := []string{"i m glad", "wow"}
	if len(got) != len(want) {
		t.Fatalf("normalizeCues() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("normalizeCues()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMatcherExact(t *testing.T) {
	t.Parallel()

	m := &matcher{}
	tests := []struct {
		name string
		text string
		cue  string
		want bool
	}{
		{name: "single word as whole token", text: "do you mind", cue: "you", want: true},
		{name: "single word not inside longer token", text: "the young man left", cue: "you", want: false},
		{name: "phrase at boundary", text: "well i see what you mean", cue: "i see", want: true},
		{name: "phrase not inside longer phrase", text: "i seem to recall", cue: "i see", want: false},
		{name: "phrase with folded apostrophe", text: "i m glad you came", cue: "i m glad", want: true},
		{name: "phrase at start of text", text: "makes sense to me", cue: "makes sense", want: true},
		{name: "phrase at end of text", text: "that really makes sense", cue: "makes sense", want: true},
		{name: "absent cue", text: "do the task", cue: "i wonder", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := m.match(normalize(tt.text), cueForm(tt.cue)); got != tt.want {
				t.Errorf("match(%q, %q) = %v, want %v", tt.text, tt.cue, got, tt.want)
			}
		})
	}
}

// cueForm canonicalises a test cue the same way the tables are at init.
func cueForm(cue string) string {
	return normalize(cue).text
}

func TestMatcherFuzzy(t *testing.T) {
	t.Parallel()

	m := &matcher{fuzzy: true, threshold: defaultFuzzyThreshold}

	if !m.match(normalize("tell me about your experiance"), "experience") {
		t.Error("fuzzy matcher rejected a near spelling of a single-word cue")
	}
	if m.match(normalize("i had a banana"), "experience") {
		t.Error("fuzzy matcher accepted an unrelated token")
	}
	if !m.match(normalize("that is realy interesting"), "really interesting") {
		t.Error("fuzzy matcher rejected a near spelling inside a phrase cue")
	}

	strict := &matcher{fuzzy: true, threshold: 0.99}
	if strict.match(normalize("tell me about your experiance"), "experience") {
		t.Error("fuzzy matcher ignored a raised threshold")
	}
	if !strict.match(normalize("tell me about your experience"), "experience") {
		t.Error("exact token hits must not depend on the fuzzy threshold")
	}
}

func TestCueTablesAreCanonical(t *testing.T) {
	t.Parallel()

	tables := map[string][]string{
		"curiosityAddress":    curiosityAddressCues,
		"curiosityExperience": curiosityExperienceCues,
		"responsive":          responsiveCues,
		"experiential":        experientialCues,
		"hedging":             hedgingCues,
		"continuity":          continuityCues,
	}
	for name, cues := range tables {
		if len(cues) == 0 {
			t.Errorf("cue table %s is empty", name)
			continue
		}
		for _, c := range cues {
			if c == "" {
				t.Errorf("cue table %s holds an empty cue", name)
			}
			if want := normalize(c).text; c != want {
				t.Errorf("cue table %s holds non-canonical cue %q, want %q", name, c, want)
			}
		}
	}
}
