package slug

import "testing"

// TestGenerate exercises the slug generator with typical category and
// article names, punctuation, transliterated letters, and edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal names ---
		{name: "single word", input: "Teknoloji", want: "teknoloji"},
		{name: "two words", input: "Yapay Zeka", want: "yapay-zeka"},
		{name: "title with year", input: "Hello World 2026", want: "hello-world-2026"},
		{name: "mixed case sentence", input: "The Quick Brown Fox", want: "the-quick-brown-fox"},

		// --- Punctuation collapses into a single hyphen ---
		{name: "punctuation marks", input: "Hello, World! How's it going?", want: "hello-world-how-s-it-going"},
		{name: "ampersand", input: "Rock & Roll", want: "rock-roll"},
		{name: "slashes and pipes", input: "Frontend/Backend | Full Stack", want: "frontend-backend-full-stack"},
		{name: "version number", input: "Version 2.0.1", want: "version-2-0-1"},
		{name: "date-like string", input: "2026-02-25", want: "2026-02-25"},

		// --- Transliteration ---
		{name: "turkish lower case", input: "çağrı öğün şüphe", want: "cagri-ogun-suphe"},
		{name: "turkish upper case", input: "ÇAĞRI ÖĞÜN ŞÜPHE", want: "cagri-ogun-suphe"},
		{name: "dotted capital i", input: "İstanbul Gezi Rehberi", want: "istanbul-gezi-rehberi"},
		{name: "dotless i", input: "Işık", want: "isik"},
		{name: "french accents", input: "Café Résumé Noël", want: "cafe-resume-noel"},
		{name: "german sharp s", input: "Straße", want: "strasse"},
		{name: "unknown script dropped", input: "Hello 世界 World", want: "hello-world"},

		// --- Whitespace ---
		{name: "leading and trailing spaces", input: "  hello world  ", want: "hello-world"},
		{name: "tabs and newlines", input: "hello\tworld\nagain", want: "hello-world-again"},

		// --- Hyphens ---
		{name: "leading hyphens", input: "---hello", want: "hello"},
		{name: "hyphens and spaces mixed", input: "  --hello -- world--  ", want: "hello-world"},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "     ", want: ""},
		{name: "only special characters", input: "!@#$%^&*()", want: ""},
		{name: "single character", input: "A", want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from its own
// output produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	inputs := []string{
		"hello-world",
		"Yapay Zeka",
		"  Şehir -- Hayatı!! ",
		"İÇERİK/Üretimi",
		"a",
		"123",
		"",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := Generate(input)
			twice := Generate(once)
			if once != twice {
				t.Errorf("Generate(Generate(%q)) = %q, want %q", input, twice, once)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"teknoloji", true},
		{"yapay-zeka", true},
		{"Yapay Zeka", false},
		{"-leading", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Valid(tt.input); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
