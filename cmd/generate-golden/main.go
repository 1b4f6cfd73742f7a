// Command generate-golden writes pkg/bignum/testdata/bignum_golden.json,
// the reference results the bignum tests compare against. Expected values
// come from the math/big oracle of the verify package.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/agbru/bncalc/internal/verify"
)

// GoldenData is one case of the golden file. Values are minimal hexadecimal.
type GoldenData struct {
	WordBits int    `json:"word_bits"`
	Bits     int    `json:"bits"`
	Op       string `json:"op"`
	X        string `json:"x"`
	Y        string `json:"y,omitempty"`
	Z        string `json:"z"`
	R        string `json:"r,omitempty"`
	Overflow bool   `json:"overflow"`
}

// layouts covers every word width, including multi-word 8-bit values and a
// full-size 1024-bit layout.
var layouts = []struct{ wordBits, bits int }{
	{32, 128},
	{16, 256},
	{8, 64},
	{32, 1024},
}

// goldenOps maps the golden file names to the oracle operations.
var goldenOps = []struct{ name, oracle string }{
	{"add", "add"},
	{"sub", "sub"},
	{"mul", "mul"},
	{"divmod", "divmod"},
	{"lsh", "shl"},
	{"rsh", "shr"},
	{"and", "and"},
	{"or", "or"},
	{"xor", "xor"},
	{"exp", "pow"},
	{"sqrt", "isqrt"},
}

const casesPerOp = 6

func main() {
	outputDir := flag.String("out", "pkg/bignum/testdata", "Output directory for the golden file")
	seed := flag.Uint64("seed", 1, "Seed of the operand generator")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	oracle := verify.BigOracle{}

	var data []GoldenData
	fmt.Println("Generating golden data...")
	for _, l := range layouts {
		for _, op := range goldenOps {
			for i := range casesPerOp {
				x, y := operands(rng, op.name, l.bits, i)
				exp, err := oracle.Compute(op.oracle, args(op.name, x, y), l.bits)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error computing %s: %v\n", op.name, err)
					os.Exit(1)
				}
				data = append(data, newCase(l.wordBits, l.bits, op.name, x, y, exp))
			}
		}
		fmt.Printf("Generated %d-bit layout of %d-bit words\n", l.bits, l.wordBits)
	}

	filename := filepath.Join(*outputDir, "bignum_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully generated %d cases at %s\n", len(data), filename)
}

func args(op string, x, y *big.Int) []*big.Int {
	if op == "sqrt" {
		return []*big.Int{x}
	}
	return []*big.Int{x, y}
}

func newCase(wordBits, bits int, op string, x, y *big.Int, exp verify.Expected) GoldenData {
	c := GoldenData{
		WordBits: wordBits,
		Bits:     bits,
		Op:       op,
		X:        x.Text(16),
		Z:        exp.Outputs[0].Text(16),
		Overflow: exp.Overflow,
	}
	if op != "sqrt" {
		c.Y = y.Text(16)
	}
	if op == "divmod" {
		c.R = exp.Outputs[1].Text(16)
	}
	return c
}

// operands picks the inputs of case i. The first case of each operation is
// an edge case: the maximum value, or a power of two reaching the capacity
// for exp.
func operands(rng *rand.Rand, op string, bits, i int) (x, y *big.Int) {
	top := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits)), big.NewInt(1))
	switch op {
	case "lsh", "rsh":
		s := big.NewInt(rng.Int64N(int64(bits) + 1))
		if i == 0 {
			return top, s
		}
		return random(rng, bits), s
	case "exp":
		if i == 0 {
			return big.NewInt(2), big.NewInt(int64(bits))
		}
		base := big.NewInt(2 + rng.Int64N(1023))
		return base, big.NewInt(rng.Int64N(int64(bits) / 2))
	case "divmod":
		x = random(rng, bits)
		if i == 0 {
			x = top
		}
		for {
			y = random(rng, bits/2)
			if y.Sign() != 0 {
				return x, y
			}
		}
	}
	if i == 0 {
		return top, random(rng, bits)
	}
	return random(rng, bits), random(rng, bits)
}

// random returns a value of up to n bits whose length is itself random, so
// short operands mixed with full-width ones exercise carries across words.
func random(rng *rand.Rand, n int) *big.Int {
	length := 1 + rng.IntN(n)
	v := new(big.Int)
	for v.BitLen() < length {
		v.Lsh(v, 32).Or(v, big.NewInt(int64(rng.Uint32())))
	}
	return v.Rsh(v, uint(v.BitLen()-length))
}
