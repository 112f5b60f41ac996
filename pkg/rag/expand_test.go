package rag

import (
	"strings"
	"testing"
)

func TestExpandQuery(t *testing.T) {
	tests := []struct {
		name         string
		question     string
		wantContains []string
		wantSame     bool
	}{
		{
			name:     "empty question unchanged",
			question: "",
			wantSame: true,
		},
		{
			name:     "no trigger unchanged",
			question: "Where is the clinic located?",
			wantSame: true,
		},
		{
			name:         "pricing trigger adds synonyms",
			question:     "How much does acupuncture cost?",
			wantContains: []string{"fees", "charges"},
		},
		{
			name:         "consultation trigger adds both groups",
			question:     "What is the initial consult fee?",
			wantContains: []string{"initial consultation", "first visit", "fees"},
		},
		{
			name:         "chinese trigger adds chinese synonyms",
			question:     "初診要多少錢?",
			wantContains: []string{"費用", "收費", "評估"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandQuery(tt.question)

			if tt.wantSame {
				if got != tt.question {
					t.Errorf("ExpandQuery(%q) = %q, want unchanged", tt.question, got)
				}
				return
			}

			if !strings.HasPrefix(got, tt.question+" | ") {
				t.Errorf("expanded query does not keep the original prefix: %q", got)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("expanded query missing %q: %q", want, got)
				}
			}
		})
	}
}

func TestExpandQueryDeduplicates(t *testing.T) {
	got := ExpandQuery("consult price assessment")
	suffix := strings.TrimPrefix(got, "consult price assessment | ")
	seen := make(map[string]bool)
	for _, term := range strings.Split(suffix, " | ") {
		if seen[term] {
			t.Errorf("duplicate expansion term %q in %q", term, got)
		}
		seen[term] = true
	}
}
