// Package rule evaluates ordered sets of weighted predicates against a single
// input and folds the matches into a capped score, a leading category and an
// explanation trail.
//
// A RuleSet is built once (usually at package init) and is read-only from then
// on, so one RuleSet may be evaluated from any number of goroutines.
package rule

import (
	"errors"
	"fmt"
	"strings"
)

// MaxScore is the upper bound of every evaluated score.
const MaxScore = 100

// ErrInvalidRule is returned when a rule set is built from a malformed rule.
var ErrInvalidRule = errors.New("invalid rule")

// Rule is a single weighted predicate over an input of type T.
type Rule[T any] struct {
	// Match must be pure and total: absent or malformed fields are "no match".
	Match func(T) bool
	// Explain renders the explanation fragment for a match. Optional.
	Explain  func(T) string
	Name     string
	Category string
	Weight   int
}

// Match records one rule that fired during an evaluation.
type Match struct {
	Rule         string
	Category     string
	Explanation  string
	Contribution int
}

// RuleSet is an ordered, immutable collection of rules.
type RuleSet[T any] struct {
	name  string
	rules []Rule[T]
}

// NewRuleSet validates and copies the given rules into a new RuleSet.
// Evaluation order is the argument order.
func NewRuleSet[T any](name string, rules ...Rule[T]) (RuleSet[T], error) {
	seen := make(map[string]struct{}, len(rules))
	for i, r := range rules {
		if r.Name == "" {
			return RuleSet[T]{}, fmt.Errorf("%s: rule %d has no name: %w", name, i, ErrInvalidRule)
		}
		if _, dup := seen[r.Name]; dup {
			return RuleSet[T]{}, fmt.Errorf("%s: duplicate rule %q: %w", name, r.Name, ErrInvalidRule)
		}
		seen[r.Name] = struct{}{}
		if r.Match == nil {
			return RuleSet[T]{}, fmt.Errorf("%s: rule %q has no predicate: %w", name, r.Name, ErrInvalidRule)
		}
		if r.Weight <= 0 {
			return RuleSet[T]{}, fmt.Errorf("%s: rule %q weight must be positive, got %d: %w", name, r.Name, r.Weight, ErrInvalidRule)
		}
	}

	copied := make([]Rule[T], len(rules))
	copy(copied, rules)

	return RuleSet[T]{name: name, rules: copied}, nil
}

// MustRuleSet is like NewRuleSet but panics on an invalid rule. It is meant
// for static rule tables declared at package level.
func MustRuleSet[T any](name string, rules ...Rule[T]) RuleSet[T] {
	rs, err := NewRuleSet(name, rules...)
	if err != nil {
		panic(err)
	}
	return rs
}

// Name returns the rule set name.
func (s RuleSet[T]) Name() string { return s.name }

// Len returns the number of rules.
func (s RuleSet[T]) Len() int { return len(s.rules) }

// Rules returns a copy of the rules in evaluation order.
func (s RuleSet[T]) Rules() []Rule[T] {
	out := make([]Rule[T], len(s.rules))
	copy(out, s.rules)
	return out
}

// Evaluate applies every rule to input in order. The outcome category is the
// category of the first rule that fired, or baseline when none did; later
// matches still add to the score.
func (s RuleSet[T]) Evaluate(input T, baseline string) Outcome {
	acc := accumulator{}
	for _, r := range s.rules {
		if !r.Match(input) {
			continue
		}
		m := Match{
			Rule:         r.Name,
			Category:     r.Category,
			Contribution: r.Weight,
		}
		if r.Explain != nil {
			m.Explanation = r.Explain(input)
		}
		acc.apply(m)
	}
	return acc.outcome(baseline)
}

// accumulator is the fold state of a single evaluation.
type accumulator struct {
	category string
	matches  []Match
	raw      int
	locked   bool
}

func (a *accumulator) apply(m Match) {
	a.raw += m.Contribution
	if !a.locked && m.Category != "" {
		a.category = m.Category
		a.locked = true
	}
	a.matches = append(a.matches, m)
}

func (a *accumulator) outcome(baseline string) Outcome {
	category := a.category
	if !a.locked {
		category = baseline
	}
	matches := a.matches
	if matches == nil {
		matches = make([]Match, 0)
	}
	return Outcome{
		RawScore: a.raw,
		Score:    Clamp(a.raw),
		Category: category,
		Matches:  matches,
	}
}

// Outcome is the result of evaluating a RuleSet against one input.
type Outcome struct {
	Category string
	Matches  []Match
	RawScore int
	Score    int
}

// Matched reports whether any rule fired.
func (o Outcome) Matched() bool { return len(o.Matches) > 0 }

// RuleNames returns the names of the rules that fired, in evaluation order.
func (o Outcome) RuleNames() []string {
	names := make([]string, 0, len(o.Matches))
	for _, m := range o.Matches {
		names = append(names, m.Rule)
	}
	return names
}

// Fragments returns the non-empty explanation fragments in evaluation order.
func (o Outcome) Fragments() []string {
	fragments := make([]string, 0, len(o.Matches))
	for _, m := range o.Matches {
		if m.Explanation != "" {
			fragments = append(fragments, m.Explanation)
		}
	}
	return fragments
}

// Explanation joins the fragments with single spaces.
func (o Outcome) Explanation() string {
	return strings.TrimSpace(strings.Join(o.Fragments(), " "))
}

// Clamp bounds score to [0, MaxScore].
func Clamp(score int) int {
	switch {
	case score < 0:
		return 0
	case score > MaxScore:
		return MaxScore
	default:
		return score
	}
}
