package content

import (
	"encoding/json"
	"log/slog"

	"github.com/readingtime/readingtime/pkg/richtext"
)

// Host field types recognized by FromField.
const (
	FieldRichText = "RichText"
	FieldText     = "Text"
	FieldSymbol   = "Symbol"
)

// Source is a field value tagged with its content format.
type Source interface {
	// Format names the variant, e.g. "richtext".
	Format() string
	isSource()
}

// RichDocument is a structured rich-text document.
type RichDocument struct {
	Doc *richtext.Node
}

// Markdown is Markdown text, possibly with embedded HTML.
type Markdown struct {
	Text string
}

// Unknown is content of a field type the normalizer does not read.
type Unknown struct {
	FieldType string
}

func (RichDocument) Format() string { return "richtext" }
func (Markdown) Format() string     { return "markdown" }
func (Unknown) Format() string      { return "unknown" }

func (RichDocument) isSource() {}
func (Markdown) isSource()     {}
func (Unknown) isSource()      {}

// FromField builds the Source for a raw field value of the given host field
// type. Undecodable values produce an empty source of the right variant.
func FromField(fieldType string, raw json.RawMessage) Source {
	switch fieldType {
	case FieldRichText:
		doc, err := richtext.Parse(raw)
		if err != nil {
			slog.Warn("content: unreadable rich text, treating as empty", "err", err)
			return RichDocument{}
		}
		return RichDocument{Doc: doc}

	case FieldText, FieldSymbol:
		var text *string
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &text); err != nil {
				slog.Warn("content: text field value is not a string, treating as empty", "err", err)
				return Markdown{}
			}
		}
		if text == nil {
			return Markdown{}
		}
		return Markdown{Text: *text}

	default:
		return Unknown{FieldType: fieldType}
	}
}
