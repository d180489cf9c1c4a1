package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_FlattenText(t *testing.T) {
	doc := Document{
		"b_second": TextNode("二番目"),
		"a_first":  TextNode("一番目"),
	}

	// Sections flatten in sorted key order, joined by newlines.
	assert.Equal(t, "一番目\n二番目", doc.FlattenText())
}

func TestDocument_FlattenNestedStructures(t *testing.T) {
	doc := Document{
		"計画": SectionNode{
			"概要": TextNode("概要の本文"),
			"詳細": ListNode{
				TextNode("項目1"),
				TextNode("項目2"),
			},
		},
	}

	text := doc.FlattenText()
	assert.Contains(t, text, "概要の本文")
	assert.Contains(t, text, "項目1")
	assert.Contains(t, text, "項目2")
}

func TestDocument_FlattenIsDeterministic(t *testing.T) {
	doc := Document{
		"c": TextNode("三"),
		"a": TextNode("一"),
		"b": TextNode("二"),
	}

	first := doc.FlattenText()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, doc.FlattenText())
	}
}

func TestDocument_Section(t *testing.T) {
	doc := Document{
		"事業計画": TextNode("計画の本文"),
	}

	assert.Equal(t, "計画の本文", doc.Section("事業計画"))
	assert.Equal(t, "", doc.Section("存在しない"))
}

func TestDocument_UnmarshalJSON(t *testing.T) {
	raw := `{
		"事業計画": "本文テキスト",
		"詳細": {
			"課題": "課題の説明",
			"項目": ["一つ目", "二つ目"]
		},
		"数値は無視": 42,
		"真偽も無視": true
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "本文テキスト", doc.Section("事業計画"))
	text := doc.FlattenText()
	assert.Contains(t, text, "課題の説明")
	assert.Contains(t, text, "一つ目")
	assert.NotContains(t, text, "42")
}

func TestParseDocumentNode_DropsUnsupportedLeaves(t *testing.T) {
	assert.Nil(t, ParseDocumentNode(3.14))
	assert.Nil(t, ParseDocumentNode(nil))
	assert.Equal(t, TextNode("text"), ParseDocumentNode("text"))
}
