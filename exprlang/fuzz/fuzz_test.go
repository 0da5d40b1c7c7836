package fuzz

import (
	"testing"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/format"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/lexer"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/parser"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/token"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/visitor"
)

// FuzzParse checks that the parser never panics on arbitrary input, valid
// or not, and that any successfully parsed expression round-trips through
// the formatter per spec.md §8.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"A >= 10 AND B <= 20",
		"A <> B OR A != C",
		"X IN (1,2,3) AND NOT Y LIKE 'foo%'",
		"AGE BETWEEN 18 AND 65",
		"AGE NOT BETWEEN 18 AND 65",
		"FLAG IS NULL",
		"FLAG IS NOT NULL",
		"(A + B) * C - 1 / 2",
		"\"weird code\" || 'a''b'",
		"NOT A AND NOT B OR C",
		"-X + +Y",
		"A = 1",
		"A",
		"1.5e10",
		".5",
		"A IN ()",
		"A BETWEEN",
		"A LIKE",
		"(",
		")",
		"",
		"A AND AND B",
		"'unterminated",
		"\"unterminated",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("parser panicked on input %q: %v", input, r)
			}
		}()

		expr, err := parser.ParseExpr(input)
		if err != nil || expr == nil {
			return
		}

		formatted := format.String(expr)
		expr2, err := parser.ParseExpr(formatted)
		if err != nil {
			t.Errorf("round-trip failed for %q -> %q: %v", input, formatted, err)
			return
		}
		if format.String(expr2) != formatted {
			t.Errorf("format not stable for %q: %q then %q", input, formatted, format.String(expr2))
		}

		// identifiers(ast) must never fail on a well-formed AST.
		_ = visitor.Identifiers(expr)
	})
}

// FuzzLexer checks that the lexer never panics and always terminates with
// an EOF token, even on malformed input.
func FuzzLexer(f *testing.F) {
	seeds := []string{
		"A >= 10", "'unterminated", "\"unterminated", "1.2.3", "||", "!", "<>=", "",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("lexer panicked on input %q: %v", input, r)
			}
		}()

		l := lexer.New(input)
		for i := 0; i < len(input)+10; i++ {
			item := l.Next()
			if item.Type == token.EOF {
				return
			}
		}
		t.Errorf("lexer did not reach EOF on input %q", input)
	})
}
