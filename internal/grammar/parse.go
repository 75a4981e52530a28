package grammar

import (
	"strings"
	"unicode/utf8"
)

// ParseError describes a rule statement that was skipped.
type ParseError struct {
	Index     int    // 1-based position of the statement in the rule text
	Statement string // statement as written, trimmed
	Message   string
}

func (e ParseError) Error() string {
	return e.Message + ": " + e.Statement
}

// ParseRules parses rule text made of newline- or semicolon-separated
// "symbol=replacement" statements. Statements whose left-hand side is not
// exactly one symbol are skipped and reported; the rest are applied, later
// statements overriding earlier ones for the same symbol. Only the
// left-hand side is trimmed: the replacement is kept verbatim, minus the
// "\r" of a CRLF line ending.
func ParseRules(text string) (Rules, []ParseError) {
	rules := make(Rules)
	var errors []ParseError

	statements := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ';'
	})

	index := 0
	for _, raw := range statements {
		stmt := strings.TrimSpace(raw)

		// Skip blank statements and comments
		if stmt == "" || strings.HasPrefix(stmt, "#") {
			continue
		}
		index++

		lhs, rhs, ok := strings.Cut(strings.TrimSuffix(raw, "\r"), "=")
		if !ok {
			errors = append(errors, ParseError{Index: index, Statement: stmt, Message: "missing '='"})
			continue
		}

		lhs = strings.TrimSpace(lhs)
		switch utf8.RuneCountInString(lhs) {
		case 0:
			errors = append(errors, ParseError{Index: index, Statement: stmt, Message: "empty left-hand side"})
			continue
		case 1:
		default:
			errors = append(errors, ParseError{Index: index, Statement: stmt, Message: "left-hand side must be a single symbol"})
			continue
		}

		symbol, _ := utf8.DecodeRuneInString(lhs)
		rules[symbol] = rhs
	}

	return rules, errors
}
