package fuzz

import (
	"testing"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/parser"
)

// TestFuzzRegressions contains edge cases discovered while hardening the
// expression parser. Each test documents a specific edge case that
// previously caused a panic or incorrect parse.
func TestFuzzRegressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		note  string
	}{
		{
			name:  "empty IN list",
			input: "A IN ()",
			note:  "parser must not panic or loop forever on an empty value list",
		},
		{
			name:  "double AND",
			input: "A AND AND B",
			note:  "parser must error cleanly, not panic, on a duplicated keyword",
		},
		{
			name:  "trailing BETWEEN with no bounds",
			input: "A BETWEEN",
			note:  "parser must error cleanly when BETWEEN's operands are missing",
		},
		{
			name:  "bare NOT with nothing after it",
			input: "NOT",
			note:  "parser must error cleanly rather than panic when NOT has no operand",
		},
		{
			name:  "unterminated string literal",
			input: "A = 'unterminated",
			note:  "lexer must emit ILLEGAL rather than scanning past EOF",
		},
		{
			name:  "unterminated quoted identifier",
			input: "A = \"unterminated",
			note:  "lexer must emit ILLEGAL rather than scanning past EOF",
		},
		{
			name:  "BETWEEN low/high must not swallow a trailing AND clause",
			input: "A BETWEEN 1 AND 2 AND B = 3",
			note:  "BETWEEN's high bound parses at a tighter precedence than AND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("panic on %q (%s): %v", tt.input, tt.note, r)
				}
			}()
			_, _ = parser.ParseExpr(tt.input)
		})
	}
}
