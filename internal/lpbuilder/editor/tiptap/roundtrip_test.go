package tiptap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
)

const sampleJSON = `{
  "type": "doc",
  "content": [
    {"type": "heading", "attrs": {"level": 1}, "content": [{"type": "text", "text": "Lesson"}]},
    {"type": "paragraph", "content": [
      {"type": "text", "text": "plain "},
      {"type": "text", "text": "bold", "marks": [{"type": "bold"}]},
      {"type": "text", "text": "E=mc^2", "marks": [{"type": "math"}]}
    ]},
    {"type": "mcqNode", "attrs": {
      "id": "q1",
      "question": "Pick one",
      "options": ["A", "B", "C"],
      "correctAnswer": 1
    }},
    {"type": "paragraph"}
  ]
}`

func TestRoundTrip(t *testing.T) {
	schema := editor.DefaultSchema()

	t.Run("parsed document survives serialize and parse", func(t *testing.T) {
		doc, err := ParseJSON(strings.NewReader(sampleJSON), schema)
		require.NoError(t, err)

		data, err := Serialize(doc, schema)
		require.NoError(t, err)

		doc2, err := ParseJSON(bytes.NewReader(data), schema)
		require.NoError(t, err)
		assert.True(t, doc.Eq(doc2))
	})

	t.Run("document built in code survives round trip", func(t *testing.T) {
		doc := &editor.Document{Content: []editor.Node{
			editor.NewHeading(2, "Title"),
			editor.NewParagraph("body"),
			editor.NewQuestionNode(editor.QuestionAttrs{
				Question:      "?",
				Options:       []string{"A", "B"},
				CorrectAnswer: 1,
			}),
		}}

		data, err := Serialize(doc, schema)
		require.NoError(t, err)

		doc2, err := ParseJSON(bytes.NewReader(data), schema)
		require.NoError(t, err)
		assert.True(t, doc.Eq(doc2))
	})
}

func TestParseJSON(t *testing.T) {
	schema := editor.DefaultSchema()

	t.Run("question attrs are preserved", func(t *testing.T) {
		doc, err := ParseJSON(strings.NewReader(sampleJSON), schema)
		require.NoError(t, err)

		node := doc.FindQuestionNode("q1")
		require.NotNil(t, node)
		attrs, _ := editor.ReadQuestionAttrs(node)
		assert.Equal(t, "Pick one", attrs.Question)
		assert.Equal(t, []string{"A", "B", "C"}, attrs.Options)
		assert.Equal(t, 1, attrs.CorrectAnswer)
	})

	t.Run("unknown node type fails hard", func(t *testing.T) {
		input := `{"type": "doc", "content": [{"type": "videoEmbed"}]}`
		_, err := ParseJSON(strings.NewReader(input), schema)
		var schemaErr *editor.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "videoEmbed", schemaErr.NodeType)
	})

	t.Run("root must be doc", func(t *testing.T) {
		input := `{"type": "paragraph"}`
		_, err := ParseJSON(strings.NewReader(input), schema)
		var schemaErr *editor.SchemaError
		assert.ErrorAs(t, err, &schemaErr)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseJSON(strings.NewReader(`{"type": "doc"`), schema)
		assert.Error(t, err)
	})
}

func TestSerializeRejectsInvalidTree(t *testing.T) {
	schema := editor.DefaultSchema()
	doc := &editor.Document{Content: []editor.Node{{Type: "bogus"}}}
	_, err := Serialize(doc, schema)
	var schemaErr *editor.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}
