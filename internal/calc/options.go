package calc

// Format is the base of an operand or result.
type Format string

// Supported formats.
const (
	FormatHex Format = "hex"
	FormatDec Format = "dec"
)

// DefaultMaxExponent is the pow limit when none is configured.
const DefaultMaxExponent uint64 = 1 << 20

type options struct {
	strict      bool
	maxExponent uint64
	input       Format
	observer    Observer
}

// Option configures an Evaluator.
type Option func(*options)

// WithStrict makes Evaluate return an OverflowError alongside any result
// that overflowed the layout.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithMaxExponent bounds the exponent accepted by pow. Zero keeps the default.
func WithMaxExponent(n uint64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxExponent = n
		}
	}
}

// WithInput sets the base of operands that carry no 0x or 0d prefix.
func WithInput(f Format) Option {
	return func(o *options) {
		if f == FormatHex || f == FormatDec {
			o.input = f
		}
	}
}

// WithObserver registers an observer notified after every evaluation.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

func defaultOptions() options {
	return options{
		maxExponent: DefaultMaxExponent,
		input:       FormatHex,
		observer:    NoOpObserver{},
	}
}
