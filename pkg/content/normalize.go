package content

import (
	"log/slog"

	"github.com/readingtime/readingtime/pkg/richtext"
)

// Normalized is the plain text of a source plus the embedded objects found in it.
type Normalized struct {
	Text    string
	Assets  int
	Entries int
}

// Normalize converts src into plain text and embedded-object counts.
// A nil source normalizes to empty content.
func Normalize(src Source) Normalized {
	switch s := src.(type) {
	case RichDocument:
		return normalizeRich(s.Doc)
	case Markdown:
		return normalizeMarkdown(s.Text)
	case Unknown:
		slog.Debug("content: unsupported field type, counting as empty", "field_type", s.FieldType)
		return Normalized{}
	default:
		return Normalized{}
	}
}

// normalizeRich counts distinct assets linked from embedded asset blocks and
// distinct entries linked from embedded entry blocks, anywhere in the tree.
func normalizeRich(doc *richtext.Node) Normalized {
	if doc == nil {
		return Normalized{}
	}
	return Normalized{
		Text:    richtext.PlainText(doc),
		Assets:  len(richtext.EntityLinks(doc, richtext.EmbeddedAssetBlock).Assets),
		Entries: len(richtext.EntityLinks(doc, richtext.EmbeddedEntryBlock).Entries),
	}
}
