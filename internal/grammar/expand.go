package grammar

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// ProgramTooLargeError is returned by ExpandLimit when the next generation
// would exceed the caller's length limit.
type ProgramTooLargeError struct {
	Iteration int // 1-based pass that would overflow
	Length    int // symbols that pass would produce
	Limit     int
}

func (e *ProgramTooLargeError) Error() string {
	return fmt.Sprintf("program too large: iteration %d would produce %d symbols (limit %d)", e.Iteration, e.Length, e.Limit)
}

// Expand applies rules to axiom iterations times. Each pass reads only the
// complete output of the previous pass.
func Expand(axiom string, rules Rules, iterations int) string {
	s, _ := expand(axiom, rules, iterations, 0, nil)
	return s
}

// ExpandLimit is Expand with a fail-fast guard: before each pass it counts
// the symbols the pass would produce and returns *ProgramTooLargeError if
// that exceeds maxLen. maxLen <= 0 disables the guard.
func ExpandLimit(axiom string, rules Rules, iterations, maxLen int) (string, error) {
	return expand(axiom, rules, iterations, maxLen, nil)
}

// ExpandTrace is ExpandLimit that reports the symbol count after every pass.
func ExpandTrace(axiom string, rules Rules, iterations, maxLen int, trace func(iteration, length int)) (string, error) {
	return expand(axiom, rules, iterations, maxLen, trace)
}

func expand(axiom string, rules Rules, iterations, maxLen int, trace func(int, int)) (string, error) {
	current := axiom
	if len(rules) == 0 {
		// Every pass is the identity.
		if trace != nil {
			n := utf8.RuneCountInString(axiom)
			for i := 1; i <= iterations; i++ {
				trace(i, n)
			}
		}
		return current, nil
	}

	sizes := ruleSizes(rules)
	for i := 1; i <= iterations; i++ {
		next := nextLength(current, sizes)
		if maxLen > 0 && next > maxLen {
			return "", &ProgramTooLargeError{Iteration: i, Length: next, Limit: maxLen}
		}

		var b strings.Builder
		b.Grow(len(current) * 2)
		for _, c := range current {
			if repl, ok := rules[c]; ok {
				b.WriteString(repl)
			} else {
				b.WriteRune(c)
			}
		}
		current = b.String()

		if trace != nil {
			trace(i, next)
		}
	}
	return current, nil
}

// LengthOverflowError is returned by Length when the expansion has more
// symbols than an int can count.
type LengthOverflowError struct {
	Iteration int // 1-based pass whose length overflows
}

func (e *LengthOverflowError) Error() string {
	return fmt.Sprintf("program too large: iteration %d produces more than %d symbols", e.Iteration, math.MaxInt)
}

// Length returns the number of symbols Expand would produce without
// building the string. It fails with *LengthOverflowError instead of
// wrapping when the count exceeds math.MaxInt.
func Length(axiom string, rules Rules, iterations int) (int, error) {
	counts := make(map[rune]int)
	for _, c := range axiom {
		counts[c]++
	}
	if len(rules) == 0 {
		return utf8.RuneCountInString(axiom), nil
	}

	for i := 1; i <= iterations; i++ {
		next := make(map[rune]int, len(counts))
		total := 0
		for c, n := range counts {
			repl, ok := rules[c]
			if !ok {
				repl = string(c)
			}
			for _, r := range repl {
				if next[r] > math.MaxInt-n || total > math.MaxInt-n {
					return 0, &LengthOverflowError{Iteration: i}
				}
				next[r] += n
				total += n
			}
		}
		counts = next
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

func ruleSizes(rules Rules) map[rune]int {
	sizes := make(map[rune]int, len(rules))
	for k, v := range rules {
		sizes[k] = utf8.RuneCountInString(v)
	}
	return sizes
}

func nextLength(s string, sizes map[rune]int) int {
	n := 0
	for _, c := range s {
		if size, ok := sizes[c]; ok {
			n += size
		} else {
			n++
		}
	}
	return n
}
