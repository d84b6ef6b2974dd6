package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

// recorder collects events delivered to a handler.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) handle(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) has(op Operation) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.Op == op {
			return true
		}
	}
	return false
}

func (r *recorder) waitFor(op Operation, d time.Duration) bool {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if r.has(op) {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return r.has(op)
}

func TestNew_WithOptions(t *testing.T) {
	w := newWatcher(t, WithDebounce(50*time.Millisecond))
	if w.debounce != 50*time.Millisecond {
		t.Errorf("debounce = %v, want 50ms", w.debounce)
	}

	w2 := newWatcher(t, WithDebounce(-1))
	if w2.debounce != 100*time.Millisecond {
		t.Errorf("negative debounce changed default: %v", w2.debounce)
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(existing, []byte("gaps = 1"), 0644); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t)
	if err := w.Watch(existing); err != nil {
		t.Errorf("Watch() error = %v", err)
	}
	if err := w.Watch(filepath.Join(tmpDir, "later.toml")); err != nil {
		t.Errorf("Watch() for non-existent file error = %v", err)
	}
	if err := w.Watch(existing); err != nil {
		t.Errorf("second Watch() error = %v", err)
	}
	if got := len(w.WatchedFiles()); got != 2 {
		t.Errorf("WatchedFiles() = %d files, want 2", got)
	}
	if w.dirs[tmpDir] != 2 {
		t.Errorf("dir refcount = %d, want 2", w.dirs[tmpDir])
	}

	if err := w.Unwatch(existing); err != nil {
		t.Errorf("Unwatch() error = %v", err)
	}
	if got := len(w.WatchedFiles()); got != 1 {
		t.Errorf("WatchedFiles() = %d files, want 1", got)
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := newWatcher(t)
	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "config.toml")); err == nil {
		t.Error("Watch() in missing directory should fail")
	}
}

func TestWatcher_Closed(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Watch("config.toml"); err != ErrClosed {
		t.Errorf("Watch() after Close = %v, want ErrClosed", err)
	}
}

func TestWatcher_DetectsModification(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t, WithDebounce(0))
	var rec recorder
	w.OnChange(rec.handle)
	if err := w.Watch(tmpFile); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(tmpFile, []byte("modified"), 0644); err != nil {
		t.Fatal(err)
	}
	if !rec.waitFor(OpWrite, time.Second) {
		t.Fatal("did not receive write event")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.events[0].Path != tmpFile {
		t.Errorf("event.Path = %q, want %q", rec.events[0].Path, tmpFile)
	}
}

func TestWatcher_DetectsCreationAndRemoval(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.toml")

	w := newWatcher(t, WithDebounce(0))
	var rec recorder
	w.OnChange(rec.handle)
	if err := w.Watch(tmpFile); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(tmpFile, []byte("created"), 0644); err != nil {
		t.Fatal(err)
	}
	if !rec.waitFor(OpCreate, time.Second) {
		t.Fatal("did not receive create event")
	}

	if err := os.Remove(tmpFile); err != nil {
		t.Fatal(err)
	}
	if !rec.waitFor(OpRemove, time.Second) {
		t.Fatal("did not receive remove event")
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	tmpDir := t.TempDir()
	watched := filepath.Join(tmpDir, "config.toml")
	sibling := filepath.Join(tmpDir, "other.toml")

	w := newWatcher(t, WithDebounce(0))
	var rec recorder
	w.OnChange(rec.handle)
	if err := w.Watch(watched); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(sibling, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.events) != 0 {
		t.Errorf("events for unwatched sibling: %v", rec.events)
	}
}

func TestWatcher_Debounce(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t, WithDebounce(100*time.Millisecond))
	var eventCount atomic.Int32
	w.OnChange(func(Event) { eventCount.Add(1) })
	if err := w.Watch(tmpFile); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(tmpFile, []byte("modified"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(400 * time.Millisecond)

	count := eventCount.Load()
	if count < 1 || count > 2 {
		t.Errorf("received %d events, expected 1-2 (debounced)", count)
	}
}

func TestQueueEventCoalescing(t *testing.T) {
	tests := []struct {
		name string
		ops  []Operation
		want Operation
	}{
		{"create then write", []Operation{OpCreate, OpWrite}, OpCreate},
		{"write then write", []Operation{OpWrite, OpWrite}, OpWrite},
		{"write then remove", []Operation{OpWrite, OpRemove}, OpRemove},
		{"remove then create", []Operation{OpRemove, OpCreate}, OpCreate},
	}

	for _, tt := range tests {
		w := &Watcher{pendingFiles: make(map[string]pendingEvent)}
		for _, op := range tt.ops {
			w.queueEvent(Event{Path: "/c.toml", Op: op, Time: time.Now()})
		}
		if got := w.pendingFiles["/c.toml"].Op; got != tt.want {
			t.Errorf("%s: pending op = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSafeCallHandlerRecovers(t *testing.T) {
	w := &Watcher{}
	w.safeCallHandler(func(Event) { panic("boom") }, Event{})
}
