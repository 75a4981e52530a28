// Package grammar implements the L-system rewriting engine: rule sets,
// rule-text parsing and the generation-by-generation expansion of an axiom
// into a turtle program.
package grammar

import (
	"sort"
	"strings"
)

// Rules maps a single symbol to its replacement. A symbol with no entry
// rewrites to itself.
type Rules map[rune]string

// String renders the rules as canonical rule text, sorted by symbol, in a
// form ParseRules accepts.
func (r Rules) String() string {
	keys := make([]rune, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, string(k)+"="+r[k])
	}
	return strings.Join(parts, ";")
}

// Grammar bundles an axiom with its rules and the declared alphabet.
// Variables and Constants are informational; expansion ignores them.
type Grammar struct {
	Axiom     string
	Rules     Rules
	Variables []rune
	Constants []rune
}

// Expand rewrites the grammar's axiom the given number of times.
func (g Grammar) Expand(iterations int) string {
	return Expand(g.Axiom, g.Rules, iterations)
}

// Validate reports inconsistencies between the rules, the axiom and the
// declared alphabet. An empty result means nothing looked wrong.
func (g Grammar) Validate() []string {
	var issues []string

	vars := make(map[rune]bool, len(g.Variables))
	for _, v := range g.Variables {
		vars[v] = true
	}
	consts := make(map[rune]bool, len(g.Constants))
	for _, c := range g.Constants {
		if vars[c] {
			issues = append(issues, "symbol '"+string(c)+"' is declared both variable and constant")
		}
		consts[c] = true
	}

	keys := make([]rune, 0, len(g.Rules))
	for k := range g.Rules {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, k := range keys {
		if len(vars) > 0 && !vars[k] {
			issues = append(issues, "rule for '"+string(k)+"' rewrites a symbol not declared as a variable")
		}
	}

	// Alphabet checks only make sense once the caller declared one.
	if len(vars) == 0 && len(consts) == 0 {
		return issues
	}

	seen := make(map[rune]bool)
	check := func(where, s string) {
		for _, c := range s {
			if vars[c] || consts[c] || seen[c] {
				continue
			}
			seen[c] = true
			issues = append(issues, "symbol '"+string(c)+"' in "+where+" is not in the declared alphabet")
		}
	}
	check("axiom", g.Axiom)
	for _, k := range keys {
		check("rule "+string(k), g.Rules[k])
	}

	return issues
}

// ParseSymbols turns a list such as "F, G" or "FG" into its symbols,
// dropping separators and whitespace.
func ParseSymbols(s string) []rune {
	var out []rune
	seen := make(map[rune]bool)
	for _, c := range s {
		if c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ';' {
			continue
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
