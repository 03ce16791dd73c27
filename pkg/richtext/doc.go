// Package richtext models the structured rich-text document stored in a
// RichText field: a tree of typed nodes where leaves are text runs and
// embedded-object nodes link to assets or entries by id.
//
// PlainText flattens a document the way readers see it; EntityLinks collects
// the distinct link targets carried by nodes of one type.
package richtext
