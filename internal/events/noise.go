package events

import (
	"fmt"
	"regexp"
)

// Match modes for noise patterns.
const (
	MatchFull   = "fullmatch"
	MatchSearch = "search"
)

// NoiseFilter rejects comments that are placeholders rather than real event
// text, e.g. "SPARE" or bare numbers.
type NoiseFilter struct {
	patterns []*regexp.Regexp
}

// NewNoiseFilter compiles patterns. In MatchFull mode a pattern must match
// the whole comment; in MatchSearch mode any substring match rejects it.
func NewNoiseFilter(patterns []string, caseInsensitive bool, mode string) (*NoiseFilter, error) {
	if mode != MatchFull && mode != MatchSearch {
		return nil, fmt.Errorf("unknown match mode %q", mode)
	}

	f := &NoiseFilter{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		expr := p
		if mode == MatchFull {
			expr = `^(?:` + expr + `)$`
		}
		if caseInsensitive {
			expr = `(?i)` + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile noise pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Allowed reports whether comment matches none of the patterns.
// A nil filter allows everything.
func (f *NoiseFilter) Allowed(comment string) bool {
	if f == nil {
		return true
	}
	for _, re := range f.patterns {
		if re.MatchString(comment) {
			return false
		}
	}
	return true
}
