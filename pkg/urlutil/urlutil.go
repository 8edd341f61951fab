// Package urlutil implements the canonical-URL and filename-derivation
// rules the crawl engine and validators depend on for deduplication.
package urlutil

import (
	"net/url"
	"strings"
)

// replacedFilenameChars are the characters DeriveFilename swaps for '_'.
const replacedFilenameChars = "/?:-"

// Canonicalize reduces a URL to "scheme://host/path", dropping the query
// string and fragment and upgrading http to https. It does NOT strip a
// trailing slash: "/docs/" and "/docs" are distinct pages to this crawler,
// since documentation sites routinely serve different content at each.
//
// Properties:
//   - Pure: no state, no memory
//   - Deterministic: same input always produces same output
//   - Idempotent: Canonicalize(Canonicalize(u)) == Canonicalize(u)
func Canonicalize(u url.URL) url.URL {
	canonical := u

	canonical.Scheme = lowerASCII(canonical.Scheme)
	canonical.Host = lowerASCII(canonical.Host)
	if canonical.Scheme == "http" {
		canonical.Scheme = "https"
	}

	canonical.Fragment = ""
	canonical.RawFragment = ""
	canonical.RawQuery = ""
	canonical.ForceQuery = false
	canonical.User = nil

	return canonical
}

// EnsureScheme prepends "https://" to raw if it has no scheme at all.
// It is applied once, to the seed URL, before any other processing; a
// bare host like "docs.example.com/guide" is accepted the same way a
// user would type it into a browser's address bar.
func EnsureScheme(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}

// Absolutize resolves href against base, returning the absolute URL a
// browser would navigate to for that anchor. A malformed href is
// reported back to the caller rather than silently dropped so the
// caller can decide whether that's worth logging.
func Absolutize(base url.URL, href string) (url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return url.URL{}, err
	}
	return *base.ResolveReference(ref), nil
}

// DeriveFilename turns a canonical URL into the on-disk Markdown
// filename: host+path with '/', '?', ':', '-' replaced by '_', suffixed
// ".md". It is intentionally not hash-based: a human should be able to
// glance at a collection directory and recognize the page it holds.
func DeriveFilename(u url.URL) string {
	raw := u.Host + u.Path
	var b strings.Builder
	b.Grow(len(raw) + 3)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if strings.IndexByte(replacedFilenameChars, c) >= 0 {
			b.WriteByte('_')
			continue
		}
		b.WriteByte(c)
	}
	b.WriteString(".md")
	return b.String()
}

// lowerASCII converts ASCII characters to lowercase without allocating
// unless the string actually contains uppercase characters.
func lowerASCII(s string) string {
	needsLower := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
