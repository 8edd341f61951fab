// Package extractor turns fetched HTML into PageData: a title, the main
// content rendered as Markdown, and the raw outbound links found on the
// page. Main-content isolation is delegated to go-readability rather
// than reimplemented here; extractor's own job is wiring that result
// into Markdown and harvesting links from the untouched document.
package extractor

import (
	"net/url"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/rohmanhakim/docscrawler/internal/metadata"
)

// Extractor converts a fetched page into PageData. It never returns a
// fatal error to the caller: every failure mode (malformed HTML, no
// extractable content) degrades to a PageData with empty Markdown so the
// engine can treat "page had nothing worth keeping" uniformly with "page
// scored too low to keep". Links harvested from the raw HTML are still
// returned in that case.
type Extractor struct {
	metadataSink metadata.MetadataSink
}

func New(metadataSink metadata.MetadataSink) *Extractor {
	return &Extractor{metadataSink: metadataSink}
}

// Extract parses rawHTML, isolates its main content, converts that
// content to Markdown, and independently harvests every <a href> found
// anywhere in the original (unfiltered) document so link discovery
// isn't limited to whatever readability decided was "main content".
func (e *Extractor) Extract(sourceURL url.URL, rawHTML []byte) PageData {
	article, err := readability.FromReader(strings.NewReader(string(rawHTML)), &sourceURL)
	if err != nil {
		e.metadataSink.RecordError(metadata.ErrorRecord{
			PackageName: "extractor",
			Action:      "Extract",
			Cause:       metadata.CauseContentInvalid,
			ErrorString: err.Error(),
			ObservedAt:  time.Now(),
			Attrs:       []metadata.Attribute{metadata.NewAttr(metadata.AttrURL, sourceURL.String())},
		})
		return PageData{Links: harvestLinks(rawHTML)}
	}

	md, convErr := convertToMarkdown(article.Content)
	if convErr != nil {
		e.metadataSink.RecordError(metadata.ErrorRecord{
			PackageName: "extractor",
			Action:      "Extract",
			Cause:       metadata.CauseContentInvalid,
			ErrorString: convErr.Error(),
			ObservedAt:  time.Now(),
			Attrs:       []metadata.Attribute{metadata.NewAttr(metadata.AttrURL, sourceURL.String())},
		})
	}

	return PageData{
		Title:    strings.TrimSpace(article.Title),
		Markdown: md,
		Links:    harvestLinks(rawHTML),
	}
}

// convertToMarkdown renders readability's extracted content HTML to
// GitHub-flavored Markdown.
func convertToMarkdown(contentHTML string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	md, err := conv.ConvertString(contentHTML)
	if err != nil {
		return "", err
	}
	return md, nil
}

// harvestLinks walks the raw HTML (not the readability-trimmed content)
// collecting every anchor href in document order, duplicates included.
// Absolutisation and canonicalisation happen downstream in the engine,
// once per discovered link, not here.
func harvestLinks(rawHTML []byte) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(rawHTML)))
	if err != nil {
		return nil
	}
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		links = append(links, strings.TrimSpace(href))
	})
	return links
}
