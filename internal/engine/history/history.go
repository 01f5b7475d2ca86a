package history

import "sync"

// DefaultCapacity is the snapshot limit used when none is configured. The
// stack is deliberately small: one snapshot per committed operation, evicted
// first-in-first-out.
const DefaultCapacity = 5

// Stack is a bounded stack of prior document snapshots. Pushes are
// deduplicated against the tail, so repeated commits of an unchanged
// document cost nothing. Eviction is FIFO once capacity is exceeded.
type Stack struct {
	mu        sync.Mutex
	snapshots []string
	capacity  int
}

// NewStack creates a snapshot stack with the given capacity.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack{capacity: capacity}
}

// Push records a document snapshot unless it matches the current tail.
func (s *Stack) Push(doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.snapshots); n > 0 && s.snapshots[n-1] == doc {
		return
	}
	s.snapshots = append(s.snapshots, doc)

	if len(s.snapshots) > s.capacity {
		excess := len(s.snapshots) - s.capacity
		s.snapshots = s.snapshots[excess:]
	}
}

// Undo discards the most recent snapshot and returns the one beneath it.
// It requires at least two entries; with fewer there is nothing to restore
// and ok is false.
func (s *Stack) Undo() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.snapshots) < 2 {
		return "", false
	}
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
	return s.snapshots[len(s.snapshots)-1], true
}

// Current returns the tail snapshot.
func (s *Stack) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.snapshots) == 0 {
		return "", false
	}
	return s.snapshots[len(s.snapshots)-1], true
}

// Len returns the number of stored snapshots.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

// CanUndo reports whether an Undo would restore anything.
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots) >= 2
}

// Clear drops all snapshots. Used when switching files.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = nil
}
