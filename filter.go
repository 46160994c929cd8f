package filemagic

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// LabelFilter decides whether a classified label is acceptable.
// Patterns are globs where '*' stays within one path segment of the label,
// so "image/*" matches "image/png" and "application/x-*" matches
// "application/x-msdownload". "**" matches any label.
type LabelFilter struct {
	allowed []labelPattern
	blocked []labelPattern
}

type labelPattern struct {
	raw string
	g   glob.Glob
}

// NewLabelFilter compiles allow and block patterns.
// An empty allow list accepts every label that is not blocked.
func NewLabelFilter(allowed, blocked []string) (*LabelFilter, error) {
	f := &LabelFilter{}

	var err error
	if f.allowed, err = compileLabelPatterns(allowed); err != nil {
		return nil, err
	}
	if f.blocked, err = compileLabelPatterns(blocked); err != nil {
		return nil, err
	}
	return f, nil
}

// SplitPatterns splits a comma-separated pattern list, dropping empty items.
func SplitPatterns(list string) []string {
	if list == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func compileLabelPatterns(patterns []string) ([]labelPattern, error) {
	out := make([]labelPattern, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p), '/')
		if err != nil {
			return nil, fmt.Errorf("%w: label pattern %q: %v", ErrInvalidConfig, p, err)
		}
		out = append(out, labelPattern{raw: p, g: g})
	}
	return out, nil
}

// Check returns a *PolicyError if label is blocked or not in the allow list.
// A nil filter accepts everything.
func (f *LabelFilter) Check(label string) error {
	if f == nil {
		return nil
	}

	l := strings.ToLower(label)
	for _, p := range f.blocked {
		if p.g.Match(l) {
			return &PolicyError{Label: label, Reason: "blocked by " + p.raw}
		}
	}

	if len(f.allowed) == 0 {
		return nil
	}
	for _, p := range f.allowed {
		if p.g.Match(l) {
			return nil
		}
	}
	return &PolicyError{Label: label, Reason: "not in allowed labels"}
}

// Allowed reports whether Check accepts label.
func (f *LabelFilter) Allowed(label string) bool {
	return f.Check(label) == nil
}
