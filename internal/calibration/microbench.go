package calibration

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bncalc/pkg/bignum"
)

const (
	// MicroBenchIterations is the number of timed repetitions per measurement.
	MicroBenchIterations = 200
	// MicroBenchTimeout bounds the whole benchmark suite.
	MicroBenchTimeout = 30 * time.Second
)

// WordWidths are the word widths compared by the benchmark.
var WordWidths = []int{8, 16, 32}

// BenchOps are the operations timed for each width. Multiplication and
// division dominate the cost of every other operation.
var BenchOps = []string{"mul", "divmod"}

// Measurement is the average cost of one operation at one word width.
type Measurement struct {
	WordBits int
	Op       string
	PerOp    time.Duration
	Err      error
}

// MicroBenchmark times BenchOps at every word width for one capacity.
type MicroBenchmark struct {
	Bits       int
	Iterations int
	Timeout    time.Duration
}

// NewMicroBenchmark creates a benchmark for bits-bit values with default
// settings.
func NewMicroBenchmark(bits int) *MicroBenchmark {
	return &MicroBenchmark{Bits: bits, Iterations: MicroBenchIterations, Timeout: MicroBenchTimeout}
}

// Run measures every (width, op) pair concurrently and returns the
// measurements ordered by width then op. A width whose layout cannot hold
// bits is reported through Measurement.Err; only context errors fail Run.
func (mb *MicroBenchmark) Run(ctx context.Context) ([]Measurement, error) {
	ctx, cancel := context.WithTimeout(ctx, mb.Timeout)
	defer cancel()

	results := make([]Measurement, 0, len(WordWidths)*len(BenchOps))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, wb := range WordWidths {
		for _, op := range BenchOps {
			g.Go(func() error {
				d, err := measure(ctx, wb, mb.Bits, op, mb.Iterations)
				if ctx.Err() != nil {
					return ctx.Err()
				}
				mu.Lock()
				results = append(results, Measurement{WordBits: wb, Op: op, PerOp: d, Err: err})
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sortMeasurements(results)
	return results, nil
}

func sortMeasurements(ms []Measurement) {
	slices.SortFunc(ms, func(a, b Measurement) int {
		if c := cmp.Compare(a.WordBits, b.WordBits); c != 0 {
			return c
		}
		return cmp.Compare(slices.Index(BenchOps, a.Op), slices.Index(BenchOps, b.Op))
	})
}

func measure(ctx context.Context, wordBits, bits int, op string, iterations int) (time.Duration, error) {
	switch wordBits {
	case 8:
		return measureWidth[uint8](ctx, bits, op, iterations)
	case 16:
		return measureWidth[uint16](ctx, bits, op, iterations)
	case 32:
		return measureWidth[uint32](ctx, bits, op, iterations)
	}
	return 0, fmt.Errorf("unsupported word width %d", wordBits)
}

// measureWidth times op on a full-width dividend and a half-width divisor
// so division exercises a realistic number of quotient digits.
func measureWidth[W bignum.Word](ctx context.Context, bits int, op string, iterations int) (time.Duration, error) {
	l, err := bignum.NewLayout[W](bits)
	if err != nil {
		return 0, err
	}
	x, err := l.FromHex(strings.Repeat("a5", l.HexDigits()/2))
	if err != nil {
		return 0, err
	}
	y, err := l.FromHex(strings.Repeat("3c", l.HexDigits()/4))
	if err != nil {
		return 0, err
	}
	z, r := l.New(), l.New()
	run := func() {
		switch op {
		case "mul":
			z.Mul(x, y)
		case "divmod":
			z.DivMod(x, y, r)
		}
	}
	if op != "mul" && op != "divmod" {
		return 0, fmt.Errorf("unsupported benchmark operation %q", op)
	}

	run()
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if i%16 == 0 && ctx.Err() != nil {
			return 0, ctx.Err()
		}
		run()
	}
	if iterations <= 0 {
		return 0, nil
	}
	return time.Since(start) / time.Duration(iterations), nil
}

// Recommend returns the word width with the lowest total cost across
// BenchOps. Widths with any failed measurement are not eligible.
func Recommend(ms []Measurement) (wordBits int, ok bool) {
	totals := make(map[int]time.Duration)
	failed := make(map[int]bool)
	for _, m := range ms {
		if m.Err != nil {
			failed[m.WordBits] = true
			continue
		}
		totals[m.WordBits] += m.PerOp
	}
	var best time.Duration
	for _, wb := range WordWidths {
		total, seen := totals[wb]
		if !seen || failed[wb] {
			continue
		}
		if !ok || total < best {
			wordBits, best, ok = wb, total, true
		}
	}
	return wordBits, ok
}
