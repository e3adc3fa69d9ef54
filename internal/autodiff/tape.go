package autodiff

import (
	"sync"

	"github.com/google/uuid"
)

// Entry is one float operation captured on a Tape.
type Entry struct {
	Op     string      // Operation name, e.g. "float.Add".
	Inputs []uuid.UUID // Ids of the tracked float operands, in argument order.
	Output uuid.UUID   // Id of the produced tensor.
}

// Tape records float operations executed through a Backend while recording
// is on. It only keeps the operation graph; computing gradients from it is up
// to the caller.
//
// Usage:
//
//	tape := b.Tape()
//	tape.StartRecording()
//	// ... perform operations ...
//	entries := tape.Entries()
type Tape struct {
	mu        sync.Mutex
	entries   []Entry
	recording bool
}

// NewTape creates an empty tape that is not recording.
func NewTape() *Tape {
	return &Tape{entries: make([]Entry, 0, 64)}
}

// StartRecording enables operation recording.
func (t *Tape) StartRecording() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recording = true
}

// StopRecording disables operation recording.
func (t *Tape) StopRecording() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *Tape) IsRecording() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.recording
}

// Record appends e if the tape is recording.
func (t *Tape) Record(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.recording {
		t.entries = append(t.entries, e)
	}
}

// Entries returns a copy of the recorded entries in execution order.
func (t *Tape) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of recorded entries.
func (t *Tape) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Clear removes all recorded entries.
// Recording state is preserved.
func (t *Tape) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = t.entries[:0]
}
