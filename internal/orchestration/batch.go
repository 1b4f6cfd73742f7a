package orchestration

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/bncalc/internal/calc"
	apperrors "github.com/agbru/bncalc/internal/errors"
)

// BatchItem is one request read from a batch file.
type BatchItem struct {
	// Line is the 1-based line number in the source.
	Line    int
	Request calc.Request
}

// ParseBatch reads one expression per line in the form "op operand...".
// Blank lines and lines starting with # are skipped, as is anything after a
// # on an expression line. Unknown operations and wrong operand counts are
// reported with their line number.
func ParseBatch(r io.Reader) ([]BatchItem, error) {
	var items []BatchItem
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		op, ok := calc.Lookup(strings.ToLower(fields[0]))
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("line %d", line), "unknown operation", fields[0])
		}
		if len(fields)-1 != op.Arity {
			return nil, apperrors.NewValidationError(fmt.Sprintf("line %d", line),
				fmt.Sprintf("%s takes %d operand(s), got %d", op.Name, op.Arity, len(fields)-1), text)
		}
		items = append(items, BatchItem{Line: line, Request: calc.Request{Op: op.Name, Operands: fields[1:]}})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading batch: %w", err)
	}
	return items, nil
}
