package depth_test

import (
	"reflect"
	"testing"

	"github.com/MrWong99/rapport/pkg/depth"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []depth.Turn
	}{
		{
			name: "empty input",
			raw:  "",
			want: []depth.Turn{},
		},
		{
			name: "prose without labels",
			raw:  "meeting notes from tuesday\nnothing was decided",
			want: []depth.Turn{},
		},
		{
			name: "single exchange",
			raw:  "Human: hi there\nAI: hello",
			want: []depth.Turn{
				{Role: depth.RoleHuman, Text: "hi there", Index: 0},
				{Role: depth.RoleAI, Text: "hello", Index: 1},
			},
		},
		{
			name: "all role labels resolve",
			raw: "Human: a\nUser: b\nYou: c\n" +
				"AI: d\nAssistant: e\nClaude: f\nGPT: g\nClio: h\nBot: i",
			want: []depth.Turn{
				{Role: depth.RoleHuman, Text: "a", Index: 0},
				{Role: depth.RoleHuman, Text: "b", Index: 1},
				{Role: depth.RoleHuman, Text: "c", Index: 2},
				{Role: depth.RoleAI, Text: "d", Index: 3},
				{Role: depth.RoleAI, Text: "e", Index: 4},
				{Role: depth.RoleAI, Text: "f", Index: 5},
				{Role: depth.RoleAI, Text: "g", Index: 6},
				{Role: depth.RoleAI, Text: "h", Index: 7},
				{Role: depth.RoleAI, Text: "i", Index: 8},
			},
		},
		{
			name: "labels are case-insensitive",
			raw:  "HUMAN: shout\nclaude: reply",
			want: []depth.Turn{
				{Role: depth.RoleHuman, Text: "shout", Index: 0},
				{Role: depth.RoleAI, Text: "reply", Index: 1},
			},
		},
		{
			name: "indented label and spaced colon",
			raw:  "  You : question\n\tAssistant\t: answer",
			want: []depth.Turn{
				{Role: depth.RoleHuman, Text: "question", Index: 0},
				{Role: depth.RoleAI, Text: "answer", Index: 1},
			},
		},
		{
			name: "continuation lines accrete",
			raw:  "AI: first line\nsecond line\n\nthird after a blank\nHuman: ok",
			want: []depth.Turn{
				{Role: depth.RoleAI, Text: "first line\nsecond line\n\nthird after a blank", Index: 0},
				{Role: depth.RoleHuman, Text: "ok", Index: 1},
			},
		},
		{
			name: "unrecognised label is continuation text",
			raw:  "AI: result follows\nStatus: complete\nHuman: thanks",
			want: []depth.Turn{
				{Role: depth.RoleAI, Text: "result follows\nStatus: complete", Index: 0},
				{Role: depth.RoleHuman, Text: "thanks", Index: 1},
			},
		},
		{
			name: "preamble before first label is dropped",
			raw:  "Exported 2026-01-04\nSession 12\nHuman: begin",
			want: []depth.Turn{
				{Role: depth.RoleHuman, Text: "begin", Index: 0},
			},
		},
		{
			name: "empty turns are dropped and indices stay contiguous",
			raw:  "Human:\nAI:   \n\nHuman: still here",
			want: []depth.Turn{
				{Role: depth.RoleHuman, Text: "still here", Index: 0},
			},
		},
		{
			name: "windows line endings",
			raw:  "Human: one\r\nAI: two\r\n",
			want: []depth.Turn{
				{Role: depth.RoleHuman, Text: "one", Index: 0},
				{Role: depth.RoleAI, Text: "two", Index: 1},
			},
		},
		{
			name: "consecutive same-role turns stay separate",
			raw:  "Human: first thought\nHuman: second thought\nAI: reply",
			want: []depth.Turn{
				{Role: depth.RoleHuman, Text: "first thought", Index: 0},
				{Role: depth.RoleHuman, Text: "second thought", Index: 1},
				{Role: depth.RoleAI, Text: "reply", Index: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := depth.Parse(tt.raw)
			if got == nil {
				t.Fatal("Parse() returned nil, want non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
