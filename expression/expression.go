// Package expression scans CWL expression strings for $(...) parameter
// references and ${...} function bodies, and syntax-checks the embedded
// javascript. Nothing here evaluates anything.
package expression

import (
	"fmt"
	"regexp"
	"strings"

	cwl "github.com/lijiang2014/cwlparser.go"
	"github.com/robertkrimen/otto/parser"
)

// Part is one slice of an expression string: either literal text
// (Expr empty) or an embedded expression.
type Part struct {
	Raw        string
	Expr       string
	Start, End int
	// true for a ${...} block, whose Expr is a function body
	IsFuncBody bool
}

// segment of a parameter reference: .name, ["name"], ['name'] or [int]
const segmentPattern = `(\.[a-zA-Z0-9_]+|\[\"([^\"\\]|\\.)*\"\]|\['([^'\\]|\\.)*'\]|\[[0-9]+\])`

var paramRe = regexp.MustCompile(`^\(([a-zA-Z0-9_]+)` + segmentPattern + `*\)$`)

// Scan splits an expression string into literal and expression parts.
// Parentheses and braces inside an expression may nest; a backslash
// escapes the following dollar sign.
func Scan(e cwl.Expression) []*Part {
	s := string(e)
	var parts []*Part
	last := 0
	i := 0
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '$' {
			i += 2
			continue
		}
		if s[i] != '$' || i+1 >= len(s) || (s[i+1] != '(' && s[i+1] != '{') {
			i++
			continue
		}
		open, closer := byte('('), byte(')')
		if s[i+1] == '{' {
			open, closer = '{', '}'
		}
		end := matchBalanced(s, i+1, open, closer)
		if end < 0 {
			i++
			continue
		}
		if i > last {
			parts = append(parts, &Part{Raw: s[last:i], Start: last, End: i})
		}
		parts = append(parts, &Part{
			Raw:        s[i : end+1],
			Expr:       strings.TrimSpace(s[i+2 : end]),
			Start:      i,
			End:        end + 1,
			IsFuncBody: open == '{',
		})
		i = end + 1
		last = i
	}
	if last < len(s) {
		parts = append(parts, &Part{Raw: s[last:], Start: last, End: len(s)})
	}
	return parts
}

func matchBalanced(s string, start int, open, closer byte) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// IsExpression reports whether the string embeds at least one
// expression part.
func IsExpression(e cwl.Expression) bool {
	for _, part := range Scan(e) {
		if part.Expr != "" || part.IsFuncBody {
			return true
		}
	}
	return false
}

// IsParameterReference reports whether a $(...) body is a plain
// parameter reference like inputs.threads or self[0]["path"], which
// needs no javascript at all.
func IsParameterReference(expr string) bool {
	return paramRe.MatchString("(" + expr + ")")
}

// Check syntax-checks every expression part with the javascript
// parser. Parameter references are accepted without parsing.
func Check(e cwl.Expression) error {
	for _, part := range Scan(e) {
		if part.Expr == "" && !part.IsFuncBody {
			continue
		}
		if !part.IsFuncBody && IsParameterReference(part.Expr) {
			continue
		}
		src := "(" + part.Expr + ")"
		if part.IsFuncBody {
			src = "(function(){" + part.Expr + "})()"
		}
		if _, err := parser.ParseFile(nil, "", src, 0); err != nil {
			return fmt.Errorf("expression %q: %w", part.Raw, err)
		}
	}
	return nil
}
