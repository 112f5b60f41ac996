package session

import (
	"fmt"
	"sync"
	"testing"

	"clinic-concierge-be/pkg/llm"
)

func TestStoreAppendAndHistory(t *testing.T) {
	s := NewStore(12)

	if got := s.History("sess-1"); got != nil {
		t.Errorf("unknown session should have empty history, got %v", got)
	}

	s.Append("sess-1",
		llm.Message{Role: llm.RoleUser, Content: "hello"},
		llm.Message{Role: llm.RoleAssistant, Content: "hi"},
	)
	s.Append("sess-1", llm.Message{Role: llm.RoleUser, Content: "again"})

	history := s.History("sess-1")
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	if history[0].Content != "hello" || history[2].Content != "again" {
		t.Errorf("history out of order: %v", history)
	}
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	s := NewStore(0)

	s.Append("a", llm.Message{Role: llm.RoleUser, Content: "for a"})
	s.Append("b", llm.Message{Role: llm.RoleUser, Content: "for b"})

	if got := s.History("a"); len(got) != 1 || got[0].Content != "for a" {
		t.Errorf("session a history = %v", got)
	}
	if got := s.History("b"); len(got) != 1 || got[0].Content != "for b" {
		t.Errorf("session b history = %v", got)
	}
}

func TestStoreReset(t *testing.T) {
	s := NewStore(12)

	s.Append("sess-1", llm.Message{Role: llm.RoleUser, Content: "hello"})
	s.Reset("sess-1")

	if got := s.History("sess-1"); got != nil {
		t.Errorf("reset did not clear history: %v", got)
	}

	// Resetting an unknown session is a no-op.
	s.Reset("never-seen")
}

func TestStoreHistoryReturnsCopy(t *testing.T) {
	s := NewStore(12)
	s.Append("sess-1", llm.Message{Role: llm.RoleUser, Content: "original"})

	history := s.History("sess-1")
	history[0].Content = "mutated"

	if got := s.History("sess-1"); got[0].Content != "original" {
		t.Errorf("caller mutation leaked into the store: %v", got)
	}
}

func TestStoreConcurrentAppend(t *testing.T) {
	s := NewStore(12)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Append("sess-1", llm.Message{Role: llm.RoleUser, Content: fmt.Sprintf("msg-%d", n)})
		}(i)
	}
	wg.Wait()

	if got := s.History("sess-1"); len(got) != 20 {
		t.Errorf("history length = %d, want 20", len(got))
	}
}
