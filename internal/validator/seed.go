package validator

import (
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rohmanhakim/docscrawler/internal/config"
)

// docsKeywordPattern builds a case-insensitive alternation of the
// configured docs keywords, used to scan fetched HTML for a title or
// heading match in step 3 of ValidateSeed.
func docsKeywordPattern(keywords []string) *regexp.Regexp {
	escaped := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(escaped, "|"))
}

var titleTagPattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
var h1TagPattern = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
var preTagPattern = regexp.MustCompile(`(?is)<pre[^>]*>`)

// ValidateSeed decides whether a seed URL is plausibly documentation
// before a crawl is allowed to start. It tries two free, URL-only
// shortcuts before falling back to a single network probe.
func ValidateSeed(httpClient *http.Client, seed url.URL, userAgent string, cfg config.ValidatorConfig) (bool, string) {
	hostLabel := firstHostLabel(seed.Host)
	for _, kw := range cfg.DocsKeywords {
		if strings.EqualFold(hostLabel, kw) || strings.Contains(strings.ToLower(hostLabel), strings.ToLower(kw)) {
			return true, "host label matches a docs keyword: " + hostLabel
		}
	}

	lowerPath := strings.ToLower(seed.Path)
	for _, kw := range cfg.DocsKeywords {
		marker := "/" + strings.ToLower(kw) + "/"
		if strings.HasPrefix(lowerPath, marker) || lowerPath == strings.TrimSuffix(marker, "/") {
			return true, "path begins with docs keyword segment: " + kw
		}
	}

	return probeSeed(httpClient, seed, userAgent, cfg)
}

func probeSeed(httpClient *http.Client, seed url.URL, userAgent string, cfg config.ValidatorConfig) (bool, string) {
	req, err := http.NewRequest(http.MethodGet, seed.String(), nil)
	if err != nil {
		return false, "validation error: " + err.Error()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return false, "validation error: " + err.Error()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return false, "validation error: " + err.Error()
	}
	html := string(body)

	keywordPattern := docsKeywordPattern(cfg.DocsKeywords)
	points := 0

	if title := titleTagPattern.FindStringSubmatch(html); title != nil && keywordPattern.MatchString(title[1]) {
		points++
	}
	if h1 := h1TagPattern.FindStringSubmatch(html); h1 != nil && keywordPattern.MatchString(h1[1]) {
		points++
	}
	if preTagPattern.MatchString(html) {
		points++
	}
	if !containsAny(html, cfg.SeedCommercialPhrases) {
		points++
	}

	if points >= 2 {
		return true, "probe awarded sufficient points"
	}
	return false, "probe did not find enough documentation signals"
}

func firstHostLabel(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) == 0 {
		return host
	}
	return labels[0]
}

func containsAny(haystack string, needles []string) bool {
	lower := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// DefaultProbeTimeout is a 10-second timeout value for the network
// probe. ValidateSeed does not apply it: the probe is bounded only by
// the Timeout of the http.Client the caller passes in.
const DefaultProbeTimeout = 10 * time.Second
