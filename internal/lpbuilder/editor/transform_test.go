package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionDoc() *Document {
	return &Document{Content: []Node{
		NewParagraph("before"),
		questionNode(QuestionAttrs{ID: "q1", Question: "?", Options: []string{"A", "B"}}),
		NewParagraph("after"),
	}}
}

func TestReplaceTextRange(t *testing.T) {
	schema := DefaultSchema()

	t.Run("insert text into paragraph", func(t *testing.T) {
		doc := &Document{Content: []Node{NewParagraph("helo")}}
		err := doc.InsertTextAt(schema, Cursor{Block: 0, Offset: 2}, "l")
		require.NoError(t, err)
		assert.Equal(t, "hello", doc.Content[0].PlainText())
		// Вставка не дробит текст на фрагменты
		assert.Len(t, doc.Content[0].Content, 1)
	})

	t.Run("delete range", func(t *testing.T) {
		doc := &Document{Content: []Node{NewParagraph("hello world")}}
		err := doc.DeleteTextRange(schema, Range{Block: 0, From: 5, To: 11})
		require.NoError(t, err)
		assert.Equal(t, "hello", doc.Content[0].PlainText())
	})

	t.Run("delete across styled segments keeps marks", func(t *testing.T) {
		doc := &Document{Content: []Node{{Type: NodeParagraph, Content: []Node{
			NewText("abc"),
			NewText("def", Mark{Type: MarkBold}),
		}}}}
		err := doc.DeleteTextRange(schema, Range{Block: 0, From: 2, To: 4})
		require.NoError(t, err)
		require.Len(t, doc.Content[0].Content, 2)
		assert.Equal(t, "ab", doc.Content[0].Content[0].Text)
		assert.Equal(t, "ef", doc.Content[0].Content[1].Text)
		assert.Equal(t, MarkBold, doc.Content[0].Content[1].Marks[0].Type)
	})

	t.Run("edit inside atomic node leaves document unchanged", func(t *testing.T) {
		doc := questionDoc()
		before := doc.Clone()
		require.NoError(t, doc.InsertTextAt(schema, Cursor{Block: 1, Offset: 0}, "x"))
		require.NoError(t, doc.DeleteTextRange(schema, Range{Block: 1, From: 0, To: 1}))
		assert.True(t, doc.Eq(before))
	})

	t.Run("out of range block", func(t *testing.T) {
		doc := NewDocument()
		err := doc.DeleteTextRange(schema, Range{Block: 5, From: 0, To: 1})
		assert.ErrorIs(t, err, ErrBlockOutOfRange)
	})

	t.Run("negative range", func(t *testing.T) {
		doc := &Document{Content: []Node{NewParagraph("x")}}
		err := doc.DeleteTextRange(schema, Range{Block: 0, From: -1, To: 0})
		assert.ErrorIs(t, err, ErrBadTextRange)
	})
}

func TestJoinBackward(t *testing.T) {
	schema := DefaultSchema()

	t.Run("merges plain paragraphs", func(t *testing.T) {
		doc := &Document{Content: []Node{NewParagraph("foo"), NewParagraph("bar")}}
		joined, err := doc.JoinBackward(schema, 1)
		require.NoError(t, err)
		assert.True(t, joined)
		require.Len(t, doc.Content, 1)
		assert.Equal(t, "foobar", doc.Content[0].PlainText())
	})

	t.Run("isolating boundary blocks the join", func(t *testing.T) {
		doc := questionDoc()
		before := doc.Clone()

		// Backspace в начале блока после ноды вопроса
		joined, err := doc.JoinBackward(schema, 2)
		require.NoError(t, err)
		assert.False(t, joined)
		assert.True(t, doc.Eq(before))

		// Delete в конце блока перед нодой вопроса
		joined, err = doc.JoinForward(schema, 0)
		require.NoError(t, err)
		assert.False(t, joined)
		assert.True(t, doc.Eq(before))
	})

	t.Run("first block has no previous", func(t *testing.T) {
		doc := NewDocument()
		_, err := doc.JoinBackward(schema, 0)
		assert.ErrorIs(t, err, ErrBlockOutOfRange)
	})
}

func TestRemoveBlock(t *testing.T) {
	t.Run("explicit removal deletes atomic node", func(t *testing.T) {
		doc := questionDoc()
		require.NoError(t, doc.RemoveBlock(1))
		assert.Len(t, doc.Content, 2)
		assert.Nil(t, doc.FindQuestionNode("q1"))
	})

	t.Run("empty document refills with paragraph", func(t *testing.T) {
		doc := &Document{Content: []Node{NewParagraph("only")}}
		require.NoError(t, doc.RemoveBlock(0))
		require.Len(t, doc.Content, 1)
		assert.Equal(t, NodeParagraph, doc.Content[0].Type)
	})
}

func TestSetBlockType(t *testing.T) {
	schema := DefaultSchema()

	t.Run("paragraph to heading keeps inline content", func(t *testing.T) {
		doc := &Document{Content: []Node{NewParagraph("title")}}
		err := doc.SetBlockType(schema, 0, NodeHeading, map[string]any{"level": float64(1)})
		require.NoError(t, err)
		assert.Equal(t, NodeHeading, doc.Content[0].Type)
		assert.Equal(t, "title", doc.Content[0].PlainText())
	})

	t.Run("atomic block is not converted", func(t *testing.T) {
		doc := questionDoc()
		before := doc.Clone()
		require.NoError(t, doc.SetBlockType(schema, 1, NodeParagraph, nil))
		assert.True(t, doc.Eq(before))
	})

	t.Run("non-block target type", func(t *testing.T) {
		doc := NewDocument()
		err := doc.SetBlockType(schema, 0, NodeText, nil)
		var schemaErr *SchemaError
		assert.ErrorAs(t, err, &schemaErr)
	})
}

func TestAppendQuestion(t *testing.T) {
	doc := NewDocument()
	doc.AppendQuestion(questionNode(QuestionAttrs{ID: "q1", Question: "?", Options: []string{"A", "B"}}))

	// После атомарной ноды всегда есть параграф для курсора
	require.Len(t, doc.Content, 3)
	assert.Equal(t, NodeMCQ, doc.Content[1].Type)
	assert.Equal(t, NodeParagraph, doc.Content[2].Type)
}
