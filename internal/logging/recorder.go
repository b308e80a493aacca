package logging

import (
	"context"
	"sync"
)

// Entry is a single recorded log call.
type Entry struct {
	Level string
	Msg   string
	Args  []any
}

// Recorder is a Logger that keeps every call in memory. It exists so tests
// can assert that an error path was observed without capturing output
// streams. Safe for concurrent use; children returned by With share the
// parent's entry list.
type Recorder struct {
	core *recorderCore
	with []any
}

type recorderCore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewRecorder() *Recorder {
	return &Recorder{core: &recorderCore{}}
}

func (r *Recorder) record(level, msg string, args ...any) {
	all := append(append([]any{}, r.with...), args...)
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	r.core.entries = append(r.core.entries, Entry{Level: level, Msg: msg, Args: all})
}

func (r *Recorder) Info(_ context.Context, msg string, args ...any) {
	r.record("INFO", msg, args...)
}

func (r *Recorder) Warn(_ context.Context, msg string, args ...any) {
	r.record("WARN", msg, args...)
}

func (r *Recorder) Error(_ context.Context, msg string, args ...any) {
	r.record("ERROR", msg, args...)
}

// With returns a child recorder sharing the same entry list.
func (r *Recorder) With(args ...any) Logger {
	return &Recorder{core: r.core, with: append(append([]any{}, r.with...), args...)}
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	return append([]Entry{}, r.core.entries...)
}

// HasError reports whether an Error entry with the given message was recorded.
func (r *Recorder) HasError(msg string) bool {
	for _, e := range r.Entries() {
		if e.Level == "ERROR" && e.Msg == msg {
			return true
		}
	}
	return false
}
