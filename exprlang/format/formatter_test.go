package format

import (
	"testing"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/parser"
)

// TestRoundTrip exercises the round-trip property of spec.md §8: parsing
// a formatted expression must reproduce a structurally equivalent AST.
func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"A >= 10 AND B <= 20",
		"X IN (1, 2, 3) AND NOT Y LIKE 'foo%'",
		"AGE BETWEEN 18 AND 65",
		"FLAG IS NOT NULL",
		"(A + B) * C - 1",
		"NAME = 'O''Brien'",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			expr, err := parser.ParseExpr(input)
			if err != nil {
				t.Fatalf("ParseExpr(%q): %v", input, err)
			}
			formatted := String(expr)

			reparsed, err := parser.ParseExpr(formatted)
			if err != nil {
				t.Fatalf("ParseExpr(format(%q)=%q): %v", input, formatted, err)
			}
			reformatted := String(reparsed)
			if formatted != reformatted {
				t.Fatalf("not idempotent: %q formatted to %q, then %q", input, formatted, reformatted)
			}
		})
	}
}
