// Package models defines the data structures for the subsidy advisor engine.
package models

import (
	"encoding/json"
	"sort"
	"strings"
)

// DocumentNode is the recursive document content type: a text leaf, a named
// section map, or an ordered list. Non-text leaves from loosely typed input
// (numbers, booleans, null) are dropped during conversion, not rejected.
type DocumentNode interface {
	flattenInto(b *strings.Builder)
}

// TextNode is a text leaf.
type TextNode string

// SectionNode maps section names to nested content.
type SectionNode map[string]DocumentNode

// ListNode is an ordered sequence of nested content.
type ListNode []DocumentNode

func (n TextNode) flattenInto(b *strings.Builder) {
	if n == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(string(n))
}

func (n SectionNode) flattenInto(b *strings.Builder) {
	// Sorted key order keeps flattening deterministic, so repeated analysis
	// of the same document yields identical issue lists.
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if n[k] != nil {
			n[k].flattenInto(b)
		}
	}
}

func (n ListNode) flattenInto(b *strings.Builder) {
	for _, child := range n {
		if child != nil {
			child.flattenInto(b)
		}
	}
}

// Document is the top-level sections-map handed to the quality scorer.
type Document map[string]DocumentNode

// FlattenText returns all text content of the document joined by newlines,
// traversing sections in sorted key order.
func (d Document) FlattenText() string {
	var b strings.Builder
	SectionNode(d).flattenInto(&b)
	return b.String()
}

// Section returns the flattened text of a single named section.
func (d Document) Section(name string) string {
	node, ok := d[name]
	if !ok || node == nil {
		return ""
	}
	var b strings.Builder
	node.flattenInto(&b)
	return b.String()
}

// ParseDocumentNode converts decoded JSON (string / map / slice) into a
// DocumentNode. Unsupported leaf types are skipped.
func ParseDocumentNode(raw interface{}) DocumentNode {
	switch v := raw.(type) {
	case string:
		return TextNode(v)
	case map[string]interface{}:
		section := make(SectionNode, len(v))
		for k, child := range v {
			if node := ParseDocumentNode(child); node != nil {
				section[k] = node
			}
		}
		return section
	case []interface{}:
		list := make(ListNode, 0, len(v))
		for _, child := range v {
			if node := ParseDocumentNode(child); node != nil {
				list = append(list, node)
			}
		}
		return list
	default:
		return nil
	}
}

// ParseDocument converts a decoded JSON object into a Document.
func ParseDocument(raw map[string]interface{}) Document {
	doc := make(Document, len(raw))
	for k, v := range raw {
		if node := ParseDocumentNode(v); node != nil {
			doc[k] = node
		}
	}
	return doc
}

// UnmarshalJSON decodes arbitrary nested JSON content into a Document.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = ParseDocument(raw)
	return nil
}

// MarshalJSON encodes the document back to plain nested JSON.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(toPlain(SectionNode(d)))
}

func toPlain(n DocumentNode) interface{} {
	switch v := n.(type) {
	case TextNode:
		return string(v)
	case SectionNode:
		m := make(map[string]interface{}, len(v))
		for k, child := range v {
			m[k] = toPlain(child)
		}
		return m
	case ListNode:
		l := make([]interface{}, 0, len(v))
		for _, child := range v {
			l = append(l, toPlain(child))
		}
		return l
	default:
		return nil
	}
}
