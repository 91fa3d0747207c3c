package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionNode(t *testing.T) {
	t.Run("assigns fresh id", func(t *testing.T) {
		a := NewQuestionNode(QuestionAttrs{Question: "?", Options: []string{"A", "B"}})
		b := NewQuestionNode(QuestionAttrs{Question: "?", Options: []string{"A", "B"}})

		attrsA, ok := ReadQuestionAttrs(&a)
		require.True(t, ok)
		attrsB, _ := ReadQuestionAttrs(&b)

		assert.NotEmpty(t, attrsA.ID)
		assert.NotEqual(t, attrsA.ID, attrsB.ID)
	})

	t.Run("ignores id from input", func(t *testing.T) {
		n := NewQuestionNode(QuestionAttrs{ID: "stale", Question: "?"})
		attrs, _ := ReadQuestionAttrs(&n)
		assert.NotEqual(t, "stale", attrs.ID)
	})

	t.Run("node passes schema validation", func(t *testing.T) {
		n := NewQuestionNode(QuestionAttrs{Question: "?", Options: []string{"A", "B"}})
		doc := &Document{Content: []Node{n}}
		assert.NoError(t, DefaultSchema().Validate(doc))
	})
}

func TestReadQuestionAttrs(t *testing.T) {
	t.Run("non question node", func(t *testing.T) {
		n := NewParagraph("text")
		_, ok := ReadQuestionAttrs(&n)
		assert.False(t, ok)
	})

	t.Run("attrs survive json representation", func(t *testing.T) {
		n := Node{Type: NodeMCQ, Attrs: map[string]any{
			"id":            "q1",
			"question":      "Pick one",
			"options":       []any{"A", "B", "C"},
			"correctAnswer": float64(2),
		}}
		attrs, ok := ReadQuestionAttrs(&n)
		require.True(t, ok)
		assert.Equal(t, "q1", attrs.ID)
		assert.Equal(t, "Pick one", attrs.Question)
		assert.Equal(t, []string{"A", "B", "C"}, attrs.Options)
		assert.Equal(t, 2, attrs.CorrectAnswer)
	})
}

func TestUpdateQuestionNode(t *testing.T) {
	doc := &Document{Content: []Node{
		questionNode(QuestionAttrs{ID: "q1", Question: "old", Options: []string{"A", "B"}}),
	}}

	t.Run("updates in place preserving id", func(t *testing.T) {
		ok := doc.UpdateQuestionNode("q1", QuestionAttrs{
			ID:            "ignored",
			Question:      "new",
			Options:       []string{"X", "Y", "Z"},
			CorrectAnswer: 2,
		})
		require.True(t, ok)

		attrs, _ := ReadQuestionAttrs(doc.FindQuestionNode("q1"))
		assert.Equal(t, "q1", attrs.ID)
		assert.Equal(t, "new", attrs.Question)
		assert.Equal(t, []string{"X", "Y", "Z"}, attrs.Options)
		assert.Equal(t, 2, attrs.CorrectAnswer)
		assert.Len(t, doc.Content, 1)
	})

	t.Run("missing node", func(t *testing.T) {
		assert.False(t, doc.UpdateQuestionNode("nope", QuestionAttrs{Question: "x"}))
	})
}

func TestFilterBlankOptions(t *testing.T) {
	assert.Equal(t, []string{"A", "D"}, FilterBlankOptions([]string{"A", "", "  ", "D"}))
	assert.Empty(t, FilterBlankOptions([]string{"", "\t"}))
}

func TestQuestionIDs(t *testing.T) {
	doc := &Document{Content: []Node{
		questionNode(QuestionAttrs{ID: "q1"}),
		NewParagraph("x"),
		questionNode(QuestionAttrs{ID: "q2"}),
		questionNode(QuestionAttrs{}), // несохранённая нода без id
	}}
	assert.Equal(t, []string{"q1", "q2"}, doc.QuestionIDs())
}
