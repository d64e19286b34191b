package llm

import (
	"testing"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *Config
		expectError bool
	}{
		{
			name: "gemini config",
			cfg: &Config{
				Provider:     "gemini",
				GeminiAPIKey: "test-key",
			},
			expectError: false,
		},
		{
			name: "ollama config",
			cfg: &Config{
				Provider:      "ollama",
				OllamaBaseURL: "http://localhost:11434/v1",
				OllamaModel:   "llama3.1",
			},
			expectError: false,
		},
		{
			name:        "nil config uses defaults",
			cfg:         nil,
			expectError: false,
		},
		{
			name: "unsupported provider",
			cfg: &Config{
				Provider: "unsupported",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.cfg)
			if tt.expectError && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSetProvider(t *testing.T) {
	provider, err := NewProvider(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := provider.SetProvider("ollama"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if name, model := provider.CurrentProvider(); name != "ollama" || model != "llama3.1" {
		t.Errorf("expected ollama/llama3.1, got %s/%s", name, model)
	}

	if err := provider.SetProvider("claude"); err == nil {
		t.Errorf("expected error for unsupported provider")
	}
	if name, _ := provider.CurrentProvider(); name != "ollama" {
		t.Errorf("failed switch should not change provider, got %s", name)
	}
}

func TestParseFeedback(t *testing.T) {
	raw := `SCORE: 4
VERDICT: Solid answer with minor gaps.
MISSING: - The retry semantics
TIP: Review the failure path.`

	feedback := parseFeedback(raw)
	if feedback.Score == nil || *feedback.Score != 4 {
		t.Errorf("expected score 4, got %v", feedback.Score)
	}
	if feedback.Verdict != "Solid answer with minor gaps." {
		t.Errorf("unexpected verdict: %q", feedback.Verdict)
	}
	if feedback.Missing != "- The retry semantics" {
		t.Errorf("unexpected missing: %q", feedback.Missing)
	}
	if feedback.Tip != "Review the failure path." {
		t.Errorf("unexpected tip: %q", feedback.Tip)
	}
	if feedback.Raw != raw {
		t.Errorf("raw response not preserved")
	}
}

func TestParseFeedbackScoreVariants(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		score *int
	}{
		{name: "score with slash", raw: "SCORE: 4/5", score: intPtr(4)},
		{name: "lowercase prefix", raw: "score: 3", score: intPtr(3)},
		{name: "indented line", raw: "  SCORE: 5", score: intPtr(5)},
		{name: "no digits", raw: "SCORE: great", score: nil},
		{name: "missing score line", raw: "VERDICT: fine", score: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback := parseFeedback(tt.raw)
			if tt.score == nil {
				if feedback.Score != nil {
					t.Errorf("expected nil score, got %d", *feedback.Score)
				}
			} else if feedback.Score == nil || *feedback.Score != *tt.score {
				t.Errorf("expected score %d, got %v", *tt.score, feedback.Score)
			}
		})
	}
}

func TestParseRefinedQA(t *testing.T) {
	raw := `QUESTION:
What does the ease factor control?

ANSWER:
It controls how fast review intervals grow between successful recalls.`

	refined := parseRefinedQA(raw, "orig q", "orig a")
	if refined.Question != "What does the ease factor control?" {
		t.Errorf("unexpected question: %q", refined.Question)
	}
	if refined.Answer != "It controls how fast review intervals grow between successful recalls." {
		t.Errorf("unexpected answer: %q", refined.Answer)
	}
}

func TestParseRefinedQAFallsBackToOriginals(t *testing.T) {
	refined := parseRefinedQA("sorry, I cannot help with that", "orig q", "orig a")
	if refined.Question != "orig q" || refined.Answer != "orig a" {
		t.Errorf("expected originals preserved, got %q / %q", refined.Question, refined.Answer)
	}
}

func TestFormatParams(t *testing.T) {
	got := formatParams(map[string]float64{"n": 10, "k": 3, "p": 0.25})
	want := "k = 3, n = 10, p = 0.25"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func intPtr(v int) *int {
	return &v
}
