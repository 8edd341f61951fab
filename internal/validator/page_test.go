package validator_test

import (
	"strings"
	"testing"

	"github.com/rohmanhakim/docscrawler/internal/config"
	"github.com/rohmanhakim/docscrawler/internal/extractor"
	"github.com/rohmanhakim/docscrawler/internal/validator"
)

func TestScorePage_NotFoundTitleRejected(t *testing.T) {
	cfg, _ := config.LoadValidatorConfig("")
	page := extractor.PageData{Title: "404 Not Found", Markdown: strings.Repeat("word ", 50)}
	b := validator.ScorePage(page, cfg)
	if b.Verdict || !b.ShortCircuited {
		t.Fatalf("expected short-circuited rejection, got %+v", b)
	}
}

func TestScorePage_ShortMarkdownRejected(t *testing.T) {
	cfg, _ := config.LoadValidatorConfig("")
	page := extractor.PageData{Title: "Docs", Markdown: "too short"}
	b := validator.ScorePage(page, cfg)
	if b.Verdict || !b.ShortCircuited {
		t.Fatalf("expected short-circuited rejection for thin content, got %+v", b)
	}
}

func TestScorePage_GoodDocsPageAccepted(t *testing.T) {
	cfg, _ := config.LoadValidatorConfig("")
	markdown := "# Guide\n\n" + strings.Repeat("word ", 300) + "\n\n```go\nfmt.Println(1)\n```\n"
	page := extractor.PageData{Title: "Guide", Markdown: markdown}
	b := validator.ScorePage(page, cfg)
	if !b.Verdict {
		t.Fatalf("expected acceptance, got rejection: %+v", b.Entries)
	}
}

func TestScorePage_CommercialPhrasePenalized(t *testing.T) {
	cfg, _ := config.LoadValidatorConfig("")
	markdown := "# Docs\n\n" + strings.Repeat("word ", 300) + "\n\ncarrinho de compras\n```\ncode\n```\n"
	page := extractor.PageData{Title: "Docs", Markdown: markdown}
	b := validator.ScorePage(page, cfg)

	found := false
	for _, e := range b.Entries {
		if e.Delta < 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a negative entry for commercial phrase, got %+v", b.Entries)
	}
}
