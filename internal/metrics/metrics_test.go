package metrics

import (
	"errors"
	"testing"
	"time"
)

type recorded struct {
	name   string
	value  float64
	labels Labels
}

type fakeBackend struct {
	counters   []recorded
	histograms []recorded
	flushed    int
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.counters = append(f.counters, recorded{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.histograms = append(f.histograms, recorded{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.flushed++
	return nil
}

func TestRecordStep(t *testing.T) {
	fb := &fakeBackend{}
	SetBackend(fb)
	t.Cleanup(func() { SetBackend(nil) })

	RecordStep("clean", "price", nil, 2*time.Second)
	RecordStep("clean", "address", errors.New("boom"), time.Second)

	if len(fb.counters) != 2 {
		t.Fatalf("counters = %d, want 2", len(fb.counters))
	}
	if fb.counters[0].labels["status"] != "success" {
		t.Errorf("status = %s, want success", fb.counters[0].labels["status"])
	}
	if fb.counters[1].labels["status"] != "failure" {
		t.Errorf("status = %s, want failure", fb.counters[1].labels["status"])
	}
	if fb.histograms[0].name != StepDurationSeconds || fb.histograms[0].value != 2 {
		t.Errorf("histogram = %+v, want %s=2", fb.histograms[0], StepDurationSeconds)
	}
}

func TestRecordRows_SkipsZero(t *testing.T) {
	fb := &fakeBackend{}
	SetBackend(fb)
	t.Cleanup(func() { SetBackend(nil) })

	RecordRows("clean", "malformed_address", 0)
	RecordRows("clean", "processed", 10)

	if len(fb.counters) != 1 {
		t.Fatalf("counters = %d, want 1", len(fb.counters))
	}
	if fb.counters[0].labels["kind"] != "processed" || fb.counters[0].value != 10 {
		t.Errorf("counter = %+v, want processed=10", fb.counters[0])
	}
	if err := Flush(); err != nil || fb.flushed != 1 {
		t.Errorf("Flush() = %v, flushed = %d", err, fb.flushed)
	}
}

func TestDefaultBackendIsNoop(t *testing.T) {
	SetBackend(nil)
	RecordStep("clean", "x", nil, time.Millisecond)
	if err := Flush(); err != nil {
		t.Errorf("Flush() = %v, want nil", err)
	}
}
