package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
)

type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		expected string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.2, 10, "██████████"},
		{-0.1, 10, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.progress, tt.length); got != tt.expected {
			t.Errorf("progressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.expected)
		}
	}
}

func TestProgressState(t *testing.T) {
	t.Parallel()
	start := time.Unix(1000, 0)
	clock := start
	ps := NewProgressState(4)
	ps.startTime = start
	ps.now = func() time.Time { return clock }

	if ps.ETA() != 0 {
		t.Error("ETA should be unknown before the first completion")
	}
	ps.Complete()
	clock = start.Add(2 * time.Second)
	if got := ps.ETA(); got != 6*time.Second {
		t.Errorf("ETA = %v, want 6s", got)
	}
	if got := ps.Fraction(); got != 0.25 {
		t.Errorf("Fraction = %v, want 0.25", got)
	}
	if !strings.HasPrefix(ps.String(), "1/4  25.00%") {
		t.Errorf("unexpected rendering %q", ps.String())
	}

	for i := 0; i < 10; i++ {
		ps.Complete()
	}
	if ps.Completed() != 4 {
		t.Errorf("Completed = %d, want 4", ps.Completed())
	}
	if ps.ETA() != 0 {
		t.Error("ETA should be zero once everything finished")
	}
	if NewProgressState(0).Fraction() != 0 {
		t.Error("empty state should report no progress")
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta      time.Duration
		expected string
	}{
		{0, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{42 * time.Second, "42s"},
		{2 * time.Minute, "2m"},
		{150 * time.Second, "2m30s"},
		{time.Hour, "1h"},
		{75 * time.Minute, "1h15m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.expected {
			t.Errorf("FormatETA(%v) = %s; want %s", tt.eta, got, tt.expected)
		}
	}
}

// TestDisplayProgress swaps the package spinner factory and must not run in
// parallel with other tests using it.
func TestDisplayProgress(t *testing.T) {
	mock := &MockSpinner{}
	orig := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	defer func() { newSpinner = orig }()

	var out bytes.Buffer
	var wg sync.WaitGroup
	done := make(chan struct{}, 3)
	wg.Add(1)
	go DisplayProgress(&wg, done, 3, &out)
	for i := 0; i < 3; i++ {
		done <- struct{}{}
	}
	close(done)
	wg.Wait()

	mock.mu.Lock()
	defer mock.mu.Unlock()
	if !mock.started || !mock.stopped {
		t.Errorf("spinner should be started and stopped, got %+v", mock)
	}
	if !strings.Contains(out.String(), "Progress: 3/3") {
		t.Errorf("expected final progress line, got %q", out.String())
	}
}

func TestDisplayProgressNoWork(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go DisplayProgress(&wg, done, 0, &out)
	close(done)
	wg.Wait()
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestIsInteractive(t *testing.T) {
	t.Parallel()
	if IsInteractive(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
