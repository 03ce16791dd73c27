// Package content turns a source field value into the plain text and the
// embedded-object counts the duration calculator works from.
//
// A Source is one of three variants:
//   - RichDocument: a rich-text document tree (RichText fields)
//   - Markdown: Markdown that may carry raw HTML (Text fields)
//   - Unknown: any other field type; normalizes to empty content
//
// FromField picks the variant from the host field type. Normalize never
// fails: malformed embedded references are simply not counted, and content
// that cannot be read normalizes to empty text with zero counts.
package content
