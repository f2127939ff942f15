// Package xsd applies XML Schema pattern facets to lexical values.
//
// A pattern facet constrains the whole lexical value: the value is valid if
// the pattern matches it from the first character to the last. Patterns given
// in the same derivation step are ORed; the steps of a type's derivation
// chain are ANDed, so a value must satisfy every step.
//
// Facets are compiled once, in the XML Schema dialect, through a shared
// regx.Cache:
//
//	v := xsd.NewValidator(nil)
//	f, err := v.Facets(
//	    []string{`[A-Z]{2}\d+`},     // base type
//	    []string{`.{4}`, `.{6}`},    // restriction: either length
//	)
//	err = f.ValidateLexical("AB12")
//
// A value that does not match is reported as *ViolationError. A match
// attempt that trips the step or backtrack limit is returned as that error
// instead, so callers can tell "invalid" from "could not decide".
package xsd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coregx/regx"
)

// dialect is the option string every facet is compiled with.
const dialect = "X"

// ViolationError reports a value that none of a step's patterns match.
type ViolationError struct {
	Value    string
	Patterns []string
}

// Error implements the error interface
func (e *ViolationError) Error() string {
	if len(e.Patterns) == 1 {
		return fmt.Sprintf("xsd: value %q does not match pattern %q", e.Value, e.Patterns[0])
	}
	quoted := make([]string, len(e.Patterns))
	for i, p := range e.Patterns {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return fmt.Sprintf("xsd: value %q does not match any pattern in set: %s", e.Value, strings.Join(quoted, ", "))
}

// IsViolation reports whether err is a *ViolationError.
func IsViolation(err error) bool {
	var ve *ViolationError
	return errors.As(err, &ve)
}

// Validator compiles pattern facets.
type Validator struct {
	cache *regx.Cache
}

// NewValidator returns a validator that compiles through cache. A nil cache
// gets a private one whose entries never expire.
func NewValidator(cache *regx.Cache) *Validator {
	if cache == nil {
		cache = regx.NewCache(0, regx.DefaultConfig())
	}
	return &Validator{cache: cache}
}

// Pattern compiles a single pattern facet.
func (v *Validator) Pattern(value string) (*Pattern, error) {
	re, err := v.cache.Get(value, dialect)
	if err != nil {
		return nil, fmt.Errorf("xsd: pattern facet %q: %w", value, err)
	}
	return &Pattern{Value: value, re: re}, nil
}

// PatternSet compiles the patterns of one derivation step.
func (v *Validator) PatternSet(values ...string) (*PatternSet, error) {
	ps := &PatternSet{Patterns: make([]*Pattern, 0, len(values))}
	for _, value := range values {
		p, err := v.Pattern(value)
		if err != nil {
			return nil, err
		}
		ps.Patterns = append(ps.Patterns, p)
	}
	return ps, nil
}

// Facets compiles a derivation chain, one slice of patterns per step.
func (v *Validator) Facets(steps ...[]string) (*Facets, error) {
	f := &Facets{Steps: make([]*PatternSet, 0, len(steps))}
	for _, values := range steps {
		ps, err := v.PatternSet(values...)
		if err != nil {
			return nil, err
		}
		f.Steps = append(f.Steps, ps)
	}
	return f, nil
}

// Pattern is one compiled pattern facet.
type Pattern struct {
	Value string
	re    *regx.Regex
}

// Name returns the facet name
func (p *Pattern) Name() string {
	return "pattern"
}

// Regex returns the compiled expression.
func (p *Pattern) Regex() *regx.Regex {
	return p.re
}

// ValidateLexical checks that the whole of lexical matches the pattern.
func (p *Pattern) ValidateLexical(lexical string) error {
	ok, err := p.re.FullMatchString(lexical)
	if err != nil {
		return fmt.Errorf("xsd: pattern %q on %q: %w", p.Value, lexical, err)
	}
	if !ok {
		return &ViolationError{Value: lexical, Patterns: []string{p.Value}}
	}
	return nil
}

// PatternSet groups the patterns of one derivation step. A value is valid if
// any pattern matches it; an empty set accepts everything.
type PatternSet struct {
	Patterns []*Pattern
}

// Name returns the facet name
func (ps *PatternSet) Name() string {
	return "pattern"
}

// ValidateLexical checks lexical against the set. If no pattern matches and
// one of them tripped a limit, that error is returned rather than a
// violation.
func (ps *PatternSet) ValidateLexical(lexical string) error {
	if len(ps.Patterns) == 0 {
		return nil
	}

	var undecided error
	for _, p := range ps.Patterns {
		err := p.ValidateLexical(lexical)
		if err == nil {
			return nil
		}
		if !IsViolation(err) && undecided == nil {
			undecided = err
		}
	}
	if undecided != nil {
		return undecided
	}

	values := make([]string, len(ps.Patterns))
	for i, p := range ps.Patterns {
		values[i] = p.Value
	}
	return &ViolationError{Value: lexical, Patterns: values}
}

// Facets is the pattern constraint of a derived type: every step must
// accept the value.
type Facets struct {
	Steps []*PatternSet
}

// ValidateLexical checks lexical against every step, stopping at the first
// failure.
func (f *Facets) ValidateLexical(lexical string) error {
	for _, step := range f.Steps {
		if err := step.ValidateLexical(lexical); err != nil {
			return err
		}
	}
	return nil
}
