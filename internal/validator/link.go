package validator

import (
	"fmt"
	"path"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/rohmanhakim/docscrawler/internal/config"
)

// ScoreLink decides whether a discovered link is worth enqueueing. It
// never errors: every dimension either contributes, penalizes, or
// abstains, and the breakdown explains which happened.
func ScoreLink(base, candidate string, cfg config.ValidatorConfig) *ScoreBreakdown {
	b := newBreakdown(cfg.LinkThreshold)

	baseHost, baseErr := hostOf(base)
	candHost, candPath, candScheme, candErr := hostPathScheme(candidate)
	if baseErr != nil || candErr != nil {
		return b.shortCircuit("could not parse URL", false)
	}

	scoreProtocol(b, candScheme, cfg)
	scoreHost(b, baseHost, candHost, cfg)
	scorePathPrefix(b, candPath, cfg)
	scoreExtension(b, candPath, cfg)
	scoreSegments(b, candPath, cfg)
	scoreVersion(b, candidate, cfg)

	return b.finalize()
}

func scoreProtocol(b *ScoreBreakdown, scheme string, cfg config.ValidatorConfig) {
	for _, forbidden := range cfg.ForbiddenProtocols {
		if strings.EqualFold(scheme, forbidden) {
			b.add("protocol forbidden: "+scheme, cfg.LinkPenalties["protocol"])
			return
		}
	}
	b.add("protocol allowed", cfg.LinkWeights["protocol"])
}

func scoreHost(b *ScoreBreakdown, baseHost, candHost string, cfg config.ValidatorConfig) {
	if strings.EqualFold(baseHost, candHost) {
		b.add("host matches base", cfg.LinkWeights["host"])
		return
	}
	allowed := cfg.AllowedDomainSet()
	if _, ok := allowed[strings.ToLower(candHost)]; ok {
		b.add("host in allowed-domain set", cfg.LinkWeights["host"])
		return
	}
	b.add("host not base or allowed: "+candHost, cfg.LinkPenalties["host"])
}

func scorePathPrefix(b *ScoreBreakdown, candPath string, cfg config.ValidatorConfig) {
	for _, root := range cfg.AllowedRootPaths {
		if candPath == root {
			b.add("path is allowed root", cfg.LinkWeights["path_prefix"])
			return
		}
	}
	for _, prefix := range cfg.AllowedPathPrefixes {
		marker := "/" + strings.Trim(prefix, "/")
		if candPath == marker || strings.HasPrefix(candPath, marker+"/") {
			b.add("path matches allowed prefix: "+prefix, cfg.LinkWeights["path_prefix"])
			return
		}
	}

	if ratio, prefix := bestFuzzyPrefixMatch(candPath, cfg.AllowedPathPrefixes); ratio >= cfg.FuzzyPrefixThreshold {
		award := (cfg.LinkWeights["path_prefix"] * 80) / 100
		b.add(fmt.Sprintf("path fuzzy-matches prefix %q at %d%%", prefix, ratio), award)
		return
	}

	b.add("path matches no allowed prefix", cfg.LinkPenalties["path_prefix"])
}

// bestFuzzyPrefixMatch returns the highest Levenshtein similarity ratio
// (0-100) between candPath and any configured "/<prefix>/" string.
func bestFuzzyPrefixMatch(candPath string, prefixes []string) (int, string) {
	bestRatio, bestPrefix := 0, ""
	for _, prefix := range prefixes {
		marker := "/" + strings.Trim(prefix, "/") + "/"
		ratio := int(levenshtein.Similarity(candPath, marker, nil) * 100)
		if ratio > bestRatio {
			bestRatio, bestPrefix = ratio, prefix
		}
	}
	return bestRatio, bestPrefix
}

func scoreExtension(b *ScoreBreakdown, candPath string, cfg config.ValidatorConfig) {
	ext := strings.ToLower(path.Ext(candPath))
	if ext == "" {
		b.add("bare path, no extension", cfg.LinkWeights["extension"])
		return
	}
	for _, forbidden := range cfg.ForbiddenExtensions {
		if ext == strings.ToLower(forbidden) {
			b.add("forbidden extension: "+ext, cfg.LinkPenalties["extension"])
			return
		}
	}
	b.add("extension allowed: "+ext, cfg.LinkWeights["extension"])
}

// scoreSegments checks candPath for any forbidden segment as a
// substring of the whole lowercased path, not an exact path-segment
// match: "/shopping-cart/item" must be caught by a forbidden segment
// of "cart" the same way the original scorer's substring scan catches it.
func scoreSegments(b *ScoreBreakdown, candPath string, cfg config.ValidatorConfig) {
	lowerPath := strings.ToLower(candPath)
	for _, forbidden := range cfg.ForbiddenSegments {
		if strings.Contains(lowerPath, strings.ToLower(forbidden)) {
			b.add("forbidden path segment: "+forbidden, cfg.LinkPenalties["segments"])
			return
		}
	}
	b.add("no forbidden path segments", cfg.LinkWeights["segments"])
}

func scoreVersion(b *ScoreBreakdown, candidate string, cfg config.ValidatorConfig) {
	if cfg.RequestedVersion == "" {
		return
	}
	found, ok := extractVersion(candidate, cfg.VersionPattern())
	if !ok {
		return
	}
	compatible, reason, err := versionCompat(cfg.RequestedVersion, found)
	if err != nil {
		b.shortCircuit("version does not parse: "+err.Error(), false)
		return
	}
	if compatible {
		b.add("version compatible: "+reason, cfg.LinkWeights["version"])
	}
}
