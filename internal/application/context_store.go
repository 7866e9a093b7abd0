package application

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/boardroom/internal/domain"
)

type HistoryEntry struct {
	Speaker string
	Message string
	Round   int
}

// ContextStore is the shared memory every judgment request sees: global
// key/value entries plus an append-only debate log. All participants get
// the same projection.
type ContextStore struct {
	mu      sync.RWMutex
	entries map[string]any
	history []HistoryEntry
	window  int
}

func NewContextStore(window int) *ContextStore {
	if window < 1 {
		window = DefaultHistoryWindow
	}

	return &ContextStore{
		entries: map[string]any{},
		window:  window,
	}
}

func (s *ContextStore) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
}

func (s *ContextStore) GetAll() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]any, len(s.entries))
	for key, value := range s.entries {
		snapshot[key] = value
	}
	return snapshot
}

func (s *ContextStore) AppendRound(speaker, message string, round int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, HistoryEntry{Speaker: speaker, Message: message, Round: round})
}

func (s *ContextStore) History() []HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *ContextStore) RenderFor(_ domain.Participant) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	b.WriteString("Global Context: ")
	b.WriteString(renderEntries(s.entries))
	b.WriteString("\n\nRecent Debate History:\n")

	start := len(s.history) - s.window
	if start < 0 {
		start = 0
	}
	for _, entry := range s.history[start:] {
		fmt.Fprintf(&b, "Round %d - %s: %s\n", entry.Round, entry.Speaker, entry.Message)
	}

	return b.String()
}

func renderEntries(entries map[string]any) string {
	encoded, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", entries)
	}
	return string(encoded)
}
