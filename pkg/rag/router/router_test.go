package router

import (
	"testing"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name           string
		response       string
		wantRoute      string
		wantConfidence float64
	}{
		{
			name:           "plain json",
			response:       `{"route": "sql", "confidence": 0.85}`,
			wantRoute:      RouteSQL,
			wantConfidence: 0.85,
		},
		{
			name:           "fenced json",
			response:       "```json\n{\"route\": \"docs\", \"confidence\": 0.7}\n```",
			wantRoute:      RouteDocs,
			wantConfidence: 0.7,
		},
		{
			name:           "json with surrounding prose",
			response:       `Sure, here is the decision: {"route": "both", "confidence": 0.5} hope that helps`,
			wantRoute:      RouteBoth,
			wantConfidence: 0.5,
		},
		{
			name:           "no json at all",
			response:       "I cannot decide",
			wantRoute:      RouteBoth,
			wantConfidence: 0.0,
		},
		{
			name:           "unknown route",
			response:       `{"route": "graph", "confidence": 0.9}`,
			wantRoute:      RouteBoth,
			wantConfidence: 0.0,
		},
		{
			name:           "out of range confidence zeroed",
			response:       `{"route": "sql", "confidence": 1.7}`,
			wantRoute:      RouteSQL,
			wantConfidence: 0.0,
		},
		{
			name:           "malformed json",
			response:       `{"route": "sql", "confidence":`,
			wantRoute:      RouteBoth,
			wantConfidence: 0.0,
		},
		{
			name:           "empty response",
			response:       "",
			wantRoute:      RouteBoth,
			wantConfidence: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDecision(tt.response)

			if got.Route != tt.wantRoute {
				t.Errorf("Route = %q, want %q", got.Route, tt.wantRoute)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}
