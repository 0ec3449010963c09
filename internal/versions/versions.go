// Package versions classifies the version strings users pass for WordPress,
// PHP and the CAWeb theme.
package versions

import (
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

// IsValidVersion ensures only digits and dots, and no empty segments like "1..2".
func IsValidVersion(v string) bool {
	if v == "" {
		return false
	}
	parts := strings.Split(v, ".")
	for _, p := range parts {
		if p == "" {
			return false
		}
		for _, r := range p {
			if !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}

// StripLetters drops every ASCII letter of v.
func StripLetters(v string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return -1
		}
		return r
	}, v)
}

// IsReleaseTag reports whether v names a release rather than a branch.
// "1.2.3", "v1.2.3" and "1.5.7.1" are tags; "2.0.0-rc.1" is a tag as long
// as it is valid semver; "main" or "feature/x" are branches.
func IsReleaseTag(v string) bool {
	v = strings.TrimSpace(v)
	if IsValidVersion(StripLetters(v)) {
		return true
	}
	if !strings.ContainsAny(v, "0123456789") {
		return false
	}
	_, err := semver.StrictNewVersion(strings.TrimPrefix(v, "v"))
	return err == nil
}

// IsPHPVersion accepts "major.minor" and "major.minor.patch" PHP versions.
func IsPHPVersion(v string) bool {
	if strings.Count(v, ".") < 1 || !IsValidVersion(v) {
		return false
	}
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return false
	}
	return parsed.Major() >= 5
}

// Compare returns 1 if a > b, -1 if a < b, 0 if equal. Unparsable inputs
// compare as equal.
func Compare(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA != nil || errB != nil {
		return 0
	}
	return va.Compare(vb)
}
