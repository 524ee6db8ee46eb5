package util

import "testing"

func TestSanitizePostgresText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "clean", input: "price spike in LNG markets", want: "price spike in LNG markets"},
		{name: "null bytes", input: "broken\x00record", want: "brokenrecord"},
		{name: "invalid utf8", input: "caf\xc3\x28", want: "caf("},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePostgresText(tt.input); got != tt.want {
				t.Errorf("SanitizePostgresText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	got := CollapseWhitespace("  pipeline \n sabotage\treport ")
	want := "pipeline sabotage report"
	if got != want {
		t.Errorf("CollapseWhitespace = %q, want %q", got, want)
	}
}
