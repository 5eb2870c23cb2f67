package auth

import (
	"strings"

	"github.com/pkg/errors"
)

// An exclusion rule is either an exact path (ends with '/') or a prefix
// wildcard (ends with '*'). Rules are independent: no rule may contradict
// another for the same path, so evaluation order is not observable.
type exclusionRule struct {
	text     string
	wildcard bool
}

// Exclusions is the set of path patterns that do not require authentication.
// It is built once at startup and never mutated afterwards.
type Exclusions struct {
	rules []exclusionRule
}

// ParseExclusions validates and compiles configured exclusion patterns.
// Every pattern must end with '/' or '*'; anything else is a config error.
func ParseExclusions(patterns []string) (*Exclusions, error) {
	rules := make([]exclusionRule, 0, len(patterns))
	for _, pattern := range patterns {
		switch {
		case pattern == "":
			return nil, errors.New("empty exclusion pattern")
		case strings.HasSuffix(pattern, "/"):
			rules = append(rules, exclusionRule{text: pattern})
		case strings.HasSuffix(pattern, "*"):
			rules = append(rules, exclusionRule{text: pattern, wildcard: true})
		default:
			return nil, errors.Errorf("exclusion pattern %q must end with '/' or '*'", pattern)
		}
	}

	return &Exclusions{rules: rules}, nil
}

// RequiresAuth reports whether the path is subject to authentication.
// An empty path or an empty rule set conservatively requires auth. The path
// is made slash-tolerant by appending a trailing '/' before matching; the
// first matching rule excludes the path.
func (e *Exclusions) RequiresAuth(path string) bool {
	if path == "" || e == nil || len(e.rules) == 0 {
		return true
	}

	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	for _, rule := range e.rules {
		if rule.wildcard {
			prefix := rule.text[:len(rule.text)-1]
			if strings.HasPrefix(path, prefix) {
				return false
			}

			continue
		}

		if path == rule.text {
			return false
		}
	}

	return true
}
