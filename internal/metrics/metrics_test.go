package metrics

import (
	"sync"
	"testing"
	"time"
)

// fakeBackend is a simple in-memory Backend implementation for tests.
type fakeBackend struct {
	mu sync.Mutex

	counters   []counterCall
	durations  []durationCall
	flushCount int
}

type counterCall struct {
	name   string
	delta  float64
	labels Labels
}

type durationCall struct {
	name    string
	seconds float64
	labels  Labels
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters = append(f.counters, counterCall{name, delta, labels})
}

func (f *fakeBackend) ObserveDuration(name string, seconds float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.durations = append(f.durations, durationCall{name, seconds, labels})
}

func (f *fakeBackend) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushCount++
	return nil
}

func swapBackend(t *testing.T) *fakeBackend {
	t.Helper()
	orig := backend
	t.Cleanup(func() { backend = orig })
	fb := &fakeBackend{}
	backend = fb
	return fb
}

/*
TestRecordRun_ValidAndInvalid checks the outcome label and that each run
contributes one counter increment plus one duration observation.
*/
func TestRecordRun_ValidAndInvalid(t *testing.T) {
	fb := swapBackend(t)

	RecordRun("a.csv", true, 2*time.Second)
	RecordRun("b.csv", false, 500*time.Millisecond)

	if len(fb.counters) != 2 || len(fb.durations) != 2 {
		t.Fatalf("got %d counters, %d durations; want 2, 2", len(fb.counters), len(fb.durations))
	}
	if fb.counters[0].name != "csvlint_runs_total" || fb.counters[0].labels["status"] != "valid" {
		t.Errorf("first call = %+v", fb.counters[0])
	}
	if fb.counters[1].labels["status"] != "invalid" {
		t.Errorf("second call = %+v", fb.counters[1])
	}
	if fb.durations[0].seconds != 2.0 {
		t.Errorf("duration = %v, want 2.0", fb.durations[0].seconds)
	}
}

/*
TestRecordErrors_SkipsZero verifies zero and negative deltas are dropped so
clean runs emit no error-counter noise.
*/
func TestRecordErrors_SkipsZero(t *testing.T) {
	fb := swapBackend(t)

	RecordErrors("a.csv", "type", 0)
	RecordErrors("a.csv", "type", -1)
	RecordErrors("a.csv", "type", 3)

	if len(fb.counters) != 1 {
		t.Fatalf("got %d calls, want 1", len(fb.counters))
	}
	c := fb.counters[0]
	if c.name != "csvlint_errors_total" || c.delta != 3 || c.labels["kind"] != "type" {
		t.Errorf("call = %+v", c)
	}
}

/*
TestRecordRows verifies the disposition label.
*/
func TestRecordRows(t *testing.T) {
	fb := swapBackend(t)

	RecordRows("a.csv", "seen", 10)
	RecordRows("a.csv", "validated", 8)

	if len(fb.counters) != 2 {
		t.Fatalf("got %d calls, want 2", len(fb.counters))
	}
	if fb.counters[0].labels["kind"] != "seen" || fb.counters[1].labels["kind"] != "validated" {
		t.Errorf("calls = %+v", fb.counters)
	}
}

/*
TestSetBackend_NilKeepsCurrent verifies nil is ignored, the metrics default
is a no-op that never fails, and Flush reaches the installed backend.
*/
func TestSetBackend_NilKeepsCurrent(t *testing.T) {
	fb := swapBackend(t)

	SetBackend(nil)
	RecordRows("a.csv", "seen", 1)
	if len(fb.counters) != 1 {
		t.Fatal("SetBackend(nil) replaced the backend")
	}
	if err := Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if fb.flushCount != 1 {
		t.Fatalf("flushCount = %d, want 1", fb.flushCount)
	}
}
