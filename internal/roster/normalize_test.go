package roster

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases",
			input: "John Doe",
			want:  "john doe",
		},
		{
			name:  "trims whitespace",
			input: "  John Doe  ",
			want:  "john doe",
		},
		{
			name:  "collapses inner whitespace",
			input: "John\t  Doe",
			want:  "john doe",
		},
		{
			name:  "strips diacritics",
			input: "Sergio Llúll",
			want:  "sergio llull",
		},
		{
			name:  "strips mixed diacritics",
			input: "Édgar Vicedo Señí",
			want:  "edgar vicedo seni",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  "",
		},
		{
			name:  "already normalized",
			input: "jane roe",
			want:  "jane roe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNameIsIdempotent(t *testing.T) {
	inputs := []string{"José Ángel", "  A  B  ", "plain name"}
	for _, input := range inputs {
		once := NormalizeName(input)
		twice := NormalizeName(once)
		if once != twice {
			t.Errorf("NormalizeName not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
