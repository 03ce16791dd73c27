package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gitlab.com/golang-commonmark/markdown"
	"golang.org/x/net/html"
)

var (
	// imageRef matches one Markdown image: ![alt](url).
	imageRef = regexp.MustCompile(`!\[.*?\]\((.*?)\)`)

	// embedCard matches an opening anchor tag marked as an embed card.
	embedCard = regexp.MustCompile(`(?i)<a[^>]+class\s*=\s*["']embedly-card["'][^>]*>`)

	// md renders Markdown to HTML with raw HTML passed through, so that the
	// tag stripper below sees embedded markup the way the author wrote it.
	md = markdown.New(
		markdown.HTML(true),
		markdown.Tables(true),
		markdown.Linkify(false),
		markdown.Typographer(false),
	)
)

func normalizeMarkdown(src string) Normalized {
	if strings.TrimSpace(src) == "" {
		return Normalized{}
	}
	return Normalized{
		Text:    MarkdownText(src),
		Assets:  len(imageRef.FindAllStringIndex(src, -1)),
		Entries: len(embedCard.FindAllStringIndex(src, -1)),
	}
}

// MarkdownText strips Markdown syntax and any remaining HTML tags from src,
// leaving the text a reader would read. Image alt text is kept.
func MarkdownText(src string) string {
	return HTMLText(md.RenderToString([]byte(src)))
}

// HTMLText returns the text content of an HTML fragment with every tag removed.
func HTMLText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return stripTags(fragment)
	}
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		alt, _ := img.Attr("alt")
		img.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: alt})
	})
	return doc.Text()
}

var anyTag = regexp.MustCompile(`<[^>]*>`)

// stripTags is the fallback when a fragment cannot be parsed at all.
func stripTags(s string) string {
	return anyTag.ReplaceAllString(s, "")
}
