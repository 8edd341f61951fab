package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// extractVersion applies pattern to candidate and returns the first
// captured version fragment ("3" or "3.11"), or ok=false if absent.
func extractVersion(candidate string, pattern *regexp.Regexp) (string, bool) {
	m := pattern.FindStringSubmatch(candidate)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// padVersion turns a bare "3" or "3.11" fragment into a parseable
// semver string, since Masterminds/semver requires at least major.minor.
func padVersion(fragment string) string {
	parts := strings.Split(fragment, ".")
	switch len(parts) {
	case 1:
		return parts[0] + ".0.0"
	case 2:
		return parts[0] + "." + parts[1] + ".0"
	default:
		return fragment
	}
}

// versionCompat implements the link scorer's version-compatibility
// rule: major must always match; a found fragment with only a major
// component is then compatible regardless of the requested minor
// ("generic major"), otherwise minor must match too.
func versionCompat(requested, found string) (compatible bool, reason string, err error) {
	reqVer, err := semver.NewVersion(padVersion(requested))
	if err != nil {
		return false, "", fmt.Errorf("requested version %q does not parse: %w", requested, err)
	}
	foundVer, err := semver.NewVersion(padVersion(found))
	if err != nil {
		return false, "", fmt.Errorf("found version %q does not parse: %w", found, err)
	}

	if reqVer.Major() != foundVer.Major() {
		return false, "major mismatch", nil
	}

	if !strings.Contains(found, ".") {
		return true, "generic major version " + found, nil
	}

	if reqVer.Minor() == foundVer.Minor() {
		return true, "major and minor match", nil
	}
	return false, "minor mismatch", nil
}
