package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentEq(t *testing.T) {
	t.Run("numeric attrs from json and code compare equal", func(t *testing.T) {
		a := &Document{Content: []Node{
			{Type: NodeHeading, Attrs: map[string]any{"level": float64(2)}},
		}}
		b := &Document{Content: []Node{
			{Type: NodeHeading, Attrs: map[string]any{"level": 2}},
		}}
		assert.True(t, a.Eq(b))
	})

	t.Run("string slice attrs compare equal to any slice", func(t *testing.T) {
		a := &Document{Content: []Node{
			{Type: NodeMCQ, Attrs: map[string]any{"options": []any{"A", "B"}}},
		}}
		b := &Document{Content: []Node{
			{Type: NodeMCQ, Attrs: map[string]any{"options": []string{"A", "B"}}},
		}}
		assert.True(t, a.Eq(b))
	})

	t.Run("different text is not equal", func(t *testing.T) {
		a := &Document{Content: []Node{NewParagraph("hello")}}
		b := &Document{Content: []Node{NewParagraph("world")}}
		assert.False(t, a.Eq(b))
	})

	t.Run("marks participate in comparison", func(t *testing.T) {
		a := &Document{Content: []Node{{Type: NodeParagraph, Content: []Node{NewText("x", Mark{Type: MarkBold})}}}}
		b := &Document{Content: []Node{{Type: NodeParagraph, Content: []Node{NewText("x")}}}}
		assert.False(t, a.Eq(b))
	})
}

func TestDocumentClone(t *testing.T) {
	doc := &Document{Content: []Node{
		{Type: NodeMCQ, Attrs: map[string]any{
			"id":      "q1",
			"options": []any{"A", "B"},
		}},
		NewParagraph("text"),
	}}

	clone := doc.Clone()
	require.True(t, doc.Eq(clone))

	// Мутация копии не видна оригиналу
	clone.Content[0].Attrs["id"] = "q2"
	clone.Content[0].Attrs["options"].([]any)[0] = "Z"
	clone.Content[1].Content[0].Text = "changed"

	assert.Equal(t, "q1", doc.Content[0].Attrs["id"])
	assert.Equal(t, "A", doc.Content[0].Attrs["options"].([]any)[0])
	assert.Equal(t, "text", doc.Content[1].Content[0].Text)
}

func TestSchemaValidate(t *testing.T) {
	schema := DefaultSchema()

	t.Run("valid document", func(t *testing.T) {
		doc := &Document{Content: []Node{
			NewHeading(1, "Title"),
			NewParagraph("body"),
			questionNode(QuestionAttrs{ID: "q1", Question: "?", Options: []string{"A", "B"}}),
		}}
		assert.NoError(t, schema.Validate(doc))
	})

	t.Run("unknown node type is a schema violation", func(t *testing.T) {
		doc := &Document{Content: []Node{{Type: "youtubeEmbed"}}}
		err := schema.Validate(doc)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "youtubeEmbed", schemaErr.NodeType)
	})

	t.Run("unknown attribute is a schema violation", func(t *testing.T) {
		doc := &Document{Content: []Node{
			{Type: NodeParagraph, Attrs: map[string]any{"color": "red"}},
		}}
		var schemaErr *SchemaError
		require.ErrorAs(t, schema.Validate(doc), &schemaErr)
	})

	t.Run("unknown mark is a schema violation", func(t *testing.T) {
		doc := &Document{Content: []Node{
			{Type: NodeParagraph, Content: []Node{NewText("x", Mark{Type: "underline"})}},
		}}
		var schemaErr *SchemaError
		require.ErrorAs(t, schema.Validate(doc), &schemaErr)
	})

	t.Run("block node in inline position", func(t *testing.T) {
		doc := &Document{Content: []Node{
			{Type: NodeParagraph, Content: []Node{NewParagraph("nested")}},
		}}
		var schemaErr *SchemaError
		require.ErrorAs(t, schema.Validate(doc), &schemaErr)
	})

	t.Run("question node flags", func(t *testing.T) {
		assert.True(t, schema.IsAtomic(NodeMCQ))
		assert.True(t, schema.IsIsolating(NodeMCQ))
		assert.False(t, schema.IsAtomic(NodeParagraph))
		assert.False(t, schema.IsIsolating(NodeHeading))
	})
}

func TestPlainText(t *testing.T) {
	n := Node{Type: NodeParagraph, Content: []Node{
		NewText("hello "),
		NewText("world", Mark{Type: MarkBold}),
	}}
	assert.Equal(t, "hello world", n.PlainText())
}
