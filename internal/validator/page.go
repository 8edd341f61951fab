package validator

import (
	"regexp"
	"strings"

	"github.com/rohmanhakim/docscrawler/internal/config"
	"github.com/rohmanhakim/docscrawler/internal/extractor"
)

const minMarkdownLength = 100

var notFoundTitlePattern = regexp.MustCompile(`(?i)404|not found|página não encontrada`)

var fencedCodeBlockPattern = regexp.MustCompile("(?s)```.*?```")

// ScorePage decides whether an extracted page is worth keeping.
// Two short-circuit rejections run before any additive scoring.
func ScorePage(page extractor.PageData, cfg config.ValidatorConfig) *ScoreBreakdown {
	b := newBreakdown(cfg.PageThreshold)

	if notFoundTitlePattern.MatchString(page.Title) {
		return b.shortCircuit("title indicates a not-found page", false)
	}
	if len(page.Markdown) < minMarkdownLength {
		return b.shortCircuit("markdown too short", false)
	}

	if containsAny(page.Markdown, cfg.PageCommercialPhrases) {
		b.add("contains commercial phrase", cfg.PagePenalties["commercial_phrase"])
	}

	hasHeading := strings.Contains(page.Markdown, "#")
	hasFencedBlock := fencedCodeBlockPattern.MatchString(page.Markdown)
	if hasHeading || hasFencedBlock {
		b.add("has heading or fenced code block", cfg.PageWeights["structure_with_code"])
	} else {
		b.add("plain prose, no structure", cfg.PageWeights["structure_plain"])
	}

	length := len(page.Markdown)
	switch {
	case length >= 300:
		b.add("length >= 300", cfg.PageWeights["length_high"])
	case length >= 150:
		b.add("length >= 150", cfg.PageWeights["length_mid"])
	default:
		b.add("length below 150", cfg.PageWeights["length_low"])
	}

	if strings.Contains(page.Markdown, "`") || hasFencedBlock {
		b.add("markdown formatting present", cfg.PageWeights["markdown_formatting"])
	}

	return b.finalize()
}
