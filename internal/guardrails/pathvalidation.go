// Package guardrails keeps cawebenv from clearing or writing directories it
// does not own.
package guardrails

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrForbiddenPath = errors.New("path is forbidden")

// A forbidden rule: either exact path or prefix path.
type forbiddenRule struct {
	Path   string // normalized absolute path
	Exact  bool   // forbid ONLY this exact path
	Prefix bool   // forbid this path AND any child paths
}

var forbiddenRules = buildRules(userHome())

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func buildRules(home string) []forbiddenRule {
	raw := []forbiddenRule{
		{Path: "/", Exact: true},

		// --- LINUX & MACOS SYSTEM DIRECTORIES ---
		{Path: "/bin", Prefix: true},
		{Path: "/sbin", Prefix: true},
		{Path: "/lib", Prefix: true},
		{Path: "/lib64", Prefix: true},
		{Path: "/usr", Prefix: true},
		{Path: "/etc", Prefix: true},
		{Path: "/dev", Prefix: true},
		{Path: "/proc", Prefix: true},
		{Path: "/sys", Prefix: true},
		{Path: "/boot", Prefix: true},
		{Path: "/System", Prefix: true},
		{Path: "/Library", Prefix: true},
		{Path: "/Applications", Prefix: true},
	}

	if home != "" {
		expand := func(p string) string {
			return filepath.Join(home, strings.TrimPrefix(p, "~/"))
		}
		raw = append(raw,
			forbiddenRule{Path: home, Exact: true},

			// --- USER-SENSITIVE PATHS ---
			forbiddenRule{Path: expand("~/.ssh"), Prefix: true},
			forbiddenRule{Path: expand("~/.gnupg"), Prefix: true},
			forbiddenRule{Path: expand("~/.aws"), Prefix: true},
			forbiddenRule{Path: expand("~/.docker"), Prefix: true},
			forbiddenRule{Path: expand("~/.kube"), Prefix: true},
			forbiddenRule{Path: expand("~/.config/gh"), Prefix: true},
			forbiddenRule{Path: expand("~/Library"), Prefix: true},
		)
	}

	rules := make([]forbiddenRule, 0, len(raw))
	for _, r := range raw {
		r.Path = filepath.Clean(r.Path)
		rules = append(rules, r)
	}
	return rules
}

// IsForbidden reports whether path is a system or user-sensitive location.
func IsForbidden(path string) bool {
	return isForbidden(forbiddenRules, path)
}

func isForbidden(rules []forbiddenRule, path string) bool {
	p := filepath.Clean(path)
	for _, rule := range rules {
		if rule.Exact && p == rule.Path {
			return true
		}
		if rule.Prefix && IsUnderPrefix(rule.Path, p) {
			return true
		}
	}
	return false
}

// IsUnderPrefix reports whether path is base or lies below it. The check is
// lexical: neither path has to exist.
func IsUnderPrefix(base, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// CheckDestination returns ErrForbiddenPath unless path may be cleared and
// rewritten: absolute, strictly below root when root is set, and outside
// every forbidden location.
func CheckDestination(root, path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%w: %s is not absolute", ErrForbiddenPath, path)
	}
	if root != "" {
		if filepath.Clean(root) == filepath.Clean(path) || !IsUnderPrefix(root, path) {
			return fmt.Errorf("%w: %s is outside %s", ErrForbiddenPath, path, root)
		}
	}
	if IsForbidden(path) {
		return fmt.Errorf("%w: %s", ErrForbiddenPath, path)
	}
	return nil
}
