// Package classifier maps text to a label using a prioritized table of
// regular-expression rules.
package classifier

import (
	"fmt"
	"regexp"
	"sort"
)

// Rule maps a pattern to a label. Higher priority wins; equal priorities
// resolve in table order.
type Rule struct {
	Pattern  string
	Label    string
	Priority int
}

// Result describes how a text was classified.
type Result struct {
	Label    string `json:"label"`
	Priority int    `json:"priority"`
	Pattern  string `json:"pattern,omitempty"`
	Matched  bool   `json:"matched"`
}

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Classifier evaluates rules in priority order.
type Classifier struct {
	rules    []compiledRule
	fallback string
}

// New compiles the rule table. Patterns are compiled case-insensitively.
func New(rules []Rule, fallback string) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		if r.Label == "" {
			return nil, fmt.Errorf("rule %d has no label", i)
		}
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling rule %d (%s): %w", i, r.Label, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, re: re})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})

	return &Classifier{rules: compiled, fallback: fallback}, nil
}

// MustNew is New for static tables; it panics on a bad pattern.
func MustNew(rules []Rule, fallback string) *Classifier {
	c, err := New(rules, fallback)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the first matching rule by priority, or the fallback label.
func (c *Classifier) Classify(text string) Result {
	for _, r := range c.rules {
		if r.re.MatchString(text) {
			return Result{Label: r.Label, Priority: r.Priority, Pattern: r.Pattern, Matched: true}
		}
	}
	return Result{Label: c.fallback}
}

// Matches reports whether any rule matches text.
func (c *Classifier) Matches(text string) bool {
	return c.Classify(text).Matched
}

// Labels returns the distinct labels in evaluation order.
func (c *Classifier) Labels() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range c.rules {
		if _, ok := seen[r.Label]; ok {
			continue
		}
		seen[r.Label] = struct{}{}
		out = append(out, r.Label)
	}
	return out
}
