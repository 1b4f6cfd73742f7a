package orchestration

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/agbru/bncalc/internal/errors"
)

func TestParseBatch(t *testing.T) {
	t.Parallel()
	input := `# header comment
add 1 2

MUL 0d6 0d7   # trailing comment
isqrt ff
`
	items, err := ParseBatch(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	want := []struct {
		line     int
		op       string
		operands int
	}{
		{2, "add", 2},
		{4, "mul", 2},
		{5, "isqrt", 1},
	}
	for i, w := range want {
		if items[i].Line != w.line || items[i].Request.Op != w.op || len(items[i].Request.Operands) != w.operands {
			t.Errorf("item %d = %+v, want %+v", i, items[i], w)
		}
	}
}

func TestParseBatchErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"UnknownOp", "add 1 2\nfrob 1 2\n", "line 2"},
		{"TooFewOperands", "add 1\n", "line 1"},
		{"TooManyOperands", "\n\nnot 1 2\n", "line 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseBatch(strings.NewReader(tt.input))
			var v apperrors.ValidationError
			if !errors.As(err, &v) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if v.Field != tt.field {
				t.Errorf("field = %q, want %q", v.Field, tt.field)
			}
		})
	}
}

func TestParseBatchEmpty(t *testing.T) {
	t.Parallel()
	items, err := ParseBatch(strings.NewReader("# nothing\n\n"))
	if err != nil || len(items) != 0 {
		t.Errorf("expected no items, got %v, %v", items, err)
	}
}
