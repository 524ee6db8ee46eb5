package ai

import "testing"

type testEvidence struct {
	Label      string `json:"label"`
	Confidence int    `json:"confidence"`
}

func TestUnmarshalFlexible(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    testEvidence
		wantErr bool
	}{
		{
			name:  "standard json",
			input: `{"label": "price spike", "confidence": 80}`,
			want:  testEvidence{Label: "price spike", Confidence: 80},
		},
		{
			name:  "double encoded",
			input: `"{\"label\": \"price spike\", \"confidence\": 80}"`,
			want:  testEvidence{Label: "price spike", Confidence: 80},
		},
		{
			name:  "unquoted keys repaired",
			input: `{label: "price spike", confidence: 80}`,
			want:  testEvidence{Label: "price spike", Confidence: 80},
		},
		{
			name:  "trailing comma repaired",
			input: `{"label": "price spike", "confidence": 80,}`,
			want:  testEvidence{Label: "price spike", Confidence: 80},
		},
		{
			name:  "duplicate leading brace",
			input: `{{"label": "price spike", "confidence": 80}`,
			want:  testEvidence{Label: "price spike", Confidence: 80},
		},
		{
			name:  "surrounding whitespace",
			input: "\n  {\"label\": \"price spike\", \"confidence\": 80}  \n",
			want:  testEvidence{Label: "price spike", Confidence: 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got testEvidence
			err := UnmarshalFlexible(tt.input, &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalFlexible error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("UnmarshalFlexible = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema(&testEvidence{})
	if schema == nil {
		t.Fatal("GenerateSchema returned nil")
	}
}

func TestStripDuplicateLeadingBrace(t *testing.T) {
	if got := stripDuplicateLeadingBrace(`{"a": 1}`); got != `{"a": 1}` {
		t.Errorf("single brace altered: %q", got)
	}
	if got := stripDuplicateLeadingBrace(`{ {"a": 1}`); got != `{"a": 1}` {
		t.Errorf("duplicate brace not stripped: %q", got)
	}
}
