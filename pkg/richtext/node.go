package richtext

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node types that matter for reading time. Other types are treated by
// their block/inline category only.
const (
	Document  = "document"
	Paragraph = "paragraph"
	Text      = "text"
	Hyperlink = "hyperlink"

	EmbeddedAssetBlock  = "embedded-asset-block"
	EmbeddedEntryBlock  = "embedded-entry-block"
	EmbeddedEntryInline = "embedded-entry-inline"
)

// Link types carried in a target's sys.linkType.
const (
	LinkAsset = "Asset"
	LinkEntry = "Entry"
)

var blockTypes = map[string]bool{
	Document:                  true,
	Paragraph:                 true,
	"heading-1":               true,
	"heading-2":               true,
	"heading-3":               true,
	"heading-4":               true,
	"heading-5":               true,
	"heading-6":               true,
	"ordered-list":            true,
	"unordered-list":          true,
	"list-item":               true,
	"hr":                      true,
	"blockquote":              true,
	EmbeddedEntryBlock:        true,
	EmbeddedAssetBlock:        true,
	"embedded-resource-block": true,
	"table":                   true,
	"table-row":               true,
	"table-cell":              true,
	"table-header-cell":       true,
}

var inlineTypes = map[string]bool{
	Hyperlink:                  true,
	"entry-hyperlink":          true,
	"asset-hyperlink":          true,
	"resource-hyperlink":       true,
	EmbeddedEntryInline:        true,
	"embedded-resource-inline": true,
}

// Node is one element of a rich-text document.
type Node struct {
	NodeType string  `json:"nodeType"`
	Value    string  `json:"value,omitempty"`
	Marks    []Mark  `json:"marks,omitempty"`
	Data     Data    `json:"data"`
	Content  []*Node `json:"content,omitempty"`
}

// Mark is a text formatting mark such as bold or code.
type Mark struct {
	Type string `json:"type"`
}

// Data carries node attributes. Target stays raw so a malformed link on one
// node cannot make the whole document undecodable.
type Data struct {
	Target json.RawMessage `json:"target,omitempty"`
	URI    string          `json:"uri,omitempty"`
}

// Sys identifies a link target.
type Sys struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	LinkType string `json:"linkType"`
}

// IsBlock reports whether n is a block-level node.
func (n *Node) IsBlock() bool { return n != nil && blockTypes[n.NodeType] }

// IsInline reports whether n is an inline container node.
func (n *Node) IsInline() bool { return n != nil && inlineTypes[n.NodeType] }

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool { return n != nil && n.NodeType == Text }

// Target decodes the node's link target. ok is false when the node carries
// no target or the target is not a well-formed Link with an id.
func (n *Node) Target() (sys Sys, ok bool) {
	if n == nil || len(n.Data.Target) == 0 {
		return Sys{}, false
	}
	var link struct {
		Sys Sys `json:"sys"`
	}
	if err := json.Unmarshal(n.Data.Target, &link); err != nil {
		return Sys{}, false
	}
	if link.Sys.ID == "" || link.Sys.LinkType == "" {
		return Sys{}, false
	}
	return link.Sys, true
}

// Parse decodes a rich-text document. Empty input and JSON null yield a nil
// document and no error.
func Parse(raw []byte) (*Node, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var doc Node
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("richtext: parse document: %w", err)
	}
	return &doc, nil
}
