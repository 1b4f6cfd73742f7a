package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/bncalc/internal/calc"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	ops := calc.Names()
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _bncalc_completions bncalc", "divmod", "-word)"}},
		{"zsh", []string{"#compdef bncalc", "operations=(add", "-strict"}},
		{"fish", []string{"complete -c bncalc", "-xa 'add", "-o verify"}},
		{"powershell", []string{"Register-ArgumentCompleter", "'isqrt'", "'-op'"}},
		{"ps", []string{"$bncalcOperations"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, ops); err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
			if strings.Contains(buf.String(), "%!") {
				t.Errorf("%s script has a formatting error", tt.shell)
			}
		})
	}

	if err := GenerateCompletion(&bytes.Buffer{}, "tcsh", ops); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}
