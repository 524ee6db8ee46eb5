package extract

import (
	"reflect"
	"testing"
)

func TestSplitIntoSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: []string(nil),
		},
		{
			name: "single sentence",
			text: "The pipeline was shut down.",
			want: []string{"The pipeline was shut down."},
		},
		{
			name: "multiple sentences",
			text: "Prices rose. Traders panicked! Who approved this?",
			want: []string{
				"Prices rose.",
				"Traders panicked!",
				"Who approved this?",
			},
		},
		{
			name: "sentences with empty lines",
			text: "First finding.\n\nSecond finding.\n\nThird finding.",
			want: []string{
				"First finding.",
				"Second finding.",
				"Third finding.",
			},
		},
		{
			name: "multi-line sentence",
			text: "The ministry announced\nan export ban effective\nimmediately.",
			want: []string{"The ministry announced an export ban effective immediately."},
		},
		{
			name: "text with no punctuation",
			text: "Just raw notes without punctuation\nMore notes here",
			want: []string{"Just raw notes without punctuation More notes here"},
		},
		{
			name: "numeric listing does not split",
			text: "1. First point continues here.",
			want: []string{"1. First point continues here."},
		},
		{
			name: "closing quote stays attached",
			text: `The witness said "it was deliberate." Another account differs.`,
			want: []string{
				`The witness said "it was deliberate."`,
				"Another account differs.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitIntoSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitIntoSentences() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSplitLineIntoSentences(t *testing.T) {
	got := splitLineIntoSentences("Really?! Yes. (Allegedly.)")
	want := []string{"Really?!", "Yes.", "(Allegedly.)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitLineIntoSentences() = %#v, want %#v", got, want)
	}
}

func TestNormalizeNodeID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"price_spike", "price_spike"},
		{"Price Spike", "price_spike"},
		{"  Export Ban!  ", "export_ban"},
		{"a--b__c", "a_b_c"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := normalizeNodeID(tt.input); got != tt.want {
			t.Errorf("normalizeNodeID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeNodeType(t *testing.T) {
	if got := normalizeNodeType("ACTOR"); got != "actor" {
		t.Errorf("normalizeNodeType(ACTOR) = %q", got)
	}
	if got := normalizeNodeType("something_else"); got != "event" {
		t.Errorf("unknown type should default to event, got %q", got)
	}
}
