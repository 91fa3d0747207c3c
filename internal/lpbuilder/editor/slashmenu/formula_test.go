package slashmenu

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
)

type fakeConverter struct {
	latex string
	err   error
	calls int
}

func (f *fakeConverter) EnglishToLatex(_ context.Context, text string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.latex, nil
}

func TestFormulaInput(t *testing.T) {
	ctx := context.Background()
	schema := editor.DefaultSchema()

	t.Run("claims all keys while open", func(t *testing.T) {
		fi := NewFormulaInput(schema, &fakeConverter{})
		doc := &editor.Document{Content: []editor.Node{editor.NewParagraph()}}

		handled, _ := fi.HandleKey(ctx, doc, RuneKey('x'))
		assert.False(t, handled)

		fi.Open(editor.Range{Block: 0})
		handled, _ = fi.HandleKey(ctx, doc, RuneKey('x'))
		assert.True(t, handled)
		handled, _ = fi.HandleKey(ctx, doc, NamedKey(KeyArrowDown))
		assert.True(t, handled)
		assert.Equal(t, "x", fi.Text())
	})

	t.Run("submit replaces range with math marked text", func(t *testing.T) {
		conv := &fakeConverter{latex: "x^2"}
		fi := NewFormulaInput(schema, conv)
		doc := &editor.Document{Content: []editor.Node{editor.NewParagraph()}}

		fi.Open(editor.Range{Block: 0, From: 0, To: 0})
		for _, r := range "x squared" {
			fi.HandleKey(ctx, doc, RuneKey(r))
		}
		_, err := fi.HandleKey(ctx, doc, NamedKey(KeyEnter))
		require.NoError(t, err)

		assert.False(t, fi.IsOpen())
		require.Len(t, doc.Content[0].Content, 1)
		assert.Equal(t, "x^2", doc.Content[0].Content[0].Text)
		require.Len(t, doc.Content[0].Content[0].Marks, 1)
		assert.Equal(t, editor.MarkMath, doc.Content[0].Content[0].Marks[0].Type)
		assert.Equal(t, 1, conv.calls)
	})

	t.Run("converter failure keeps input open", func(t *testing.T) {
		convErr := errors.New("model unavailable")
		conv := &fakeConverter{err: convErr}
		fi := NewFormulaInput(schema, conv)
		doc := &editor.Document{Content: []editor.Node{editor.NewParagraph()}}

		fi.Open(editor.Range{Block: 0})
		fi.HandleKey(ctx, doc, RuneKey('y'))
		_, err := fi.HandleKey(ctx, doc, NamedKey(KeyEnter))
		assert.ErrorIs(t, err, convErr)

		// Ошибка наблюдаема, ввод остаётся открытым для повтора
		assert.True(t, fi.IsOpen())
		assert.ErrorIs(t, fi.LastErr(), convErr)
		assert.Equal(t, "", doc.Content[0].PlainText())

		// Повторная отправка после восстановления конвертера
		conv.err = nil
		conv.latex = "y"
		require.NoError(t, fi.Submit(ctx, doc))
		assert.False(t, fi.IsOpen())
		assert.Equal(t, "y", doc.Content[0].PlainText())
	})

	t.Run("backspace removes whole multibyte rune", func(t *testing.T) {
		fi := NewFormulaInput(schema, &fakeConverter{})
		doc := &editor.Document{Content: []editor.Node{editor.NewParagraph()}}

		fi.Open(editor.Range{Block: 0})
		fi.HandleKey(ctx, doc, RuneKey('π'))
		fi.HandleKey(ctx, doc, RuneKey('r'))
		fi.HandleKey(ctx, doc, NamedKey(KeyBackspace))
		assert.Equal(t, "π", fi.Text())
		fi.HandleKey(ctx, doc, NamedKey(KeyBackspace))
		assert.Equal(t, "", fi.Text())
	})

	t.Run("empty text is rejected locally", func(t *testing.T) {
		conv := &fakeConverter{}
		fi := NewFormulaInput(schema, conv)
		doc := &editor.Document{Content: []editor.Node{editor.NewParagraph()}}

		fi.Open(editor.Range{Block: 0})
		err := fi.Submit(ctx, doc)
		assert.ErrorIs(t, err, ErrEmptyFormulaText)
		assert.Zero(t, conv.calls)
	})

	t.Run("escape discards input", func(t *testing.T) {
		fi := NewFormulaInput(schema, &fakeConverter{})
		doc := &editor.Document{Content: []editor.Node{editor.NewParagraph()}}

		fi.Open(editor.Range{Block: 0})
		fi.HandleKey(ctx, doc, RuneKey('z'))
		fi.HandleKey(ctx, doc, NamedKey(KeyEscape))
		assert.False(t, fi.IsOpen())
		assert.Equal(t, "", doc.Content[0].PlainText())
	})
}
