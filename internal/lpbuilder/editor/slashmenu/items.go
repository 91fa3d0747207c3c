package slashmenu

import (
	"context"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
)

// Hooks - побочные эффекты пунктов меню, которые вместо прямой правки дерева
// открывают вторичный ввод (форму вопроса, строку формулы).
type Hooks struct {
	OpenQuestionForm func(ctx context.Context, c *CommandContext) error
	OpenFormulaInput func(ctx context.Context, c *CommandContext) error
}

// DefaultItems возвращает фиксированный упорядоченный набор пунктов меню.
func DefaultItems(hooks Hooks) []Item {
	return []Item{
		{
			Title:       "Text",
			Description: "Just start typing with plain text.",
			SearchTerms: []string{"p", "paragraph"},
			Command: func(_ context.Context, c *CommandContext) error {
				return c.Doc.SetBlockType(c.Schema, c.Range.Block, editor.NodeParagraph, nil)
			},
		},
		{
			Title:       "Heading 1",
			Description: "Big section heading.",
			SearchTerms: []string{"title"},
			Command: func(_ context.Context, c *CommandContext) error {
				return c.Doc.SetBlockType(c.Schema, c.Range.Block, editor.NodeHeading,
					map[string]any{"level": float64(1)})
			},
		},
		{
			Title:       "Heading 2",
			Description: "Medium section heading.",
			SearchTerms: []string{"subtitle"},
			Command: func(_ context.Context, c *CommandContext) error {
				return c.Doc.SetBlockType(c.Schema, c.Range.Block, editor.NodeHeading,
					map[string]any{"level": float64(2)})
			},
		},
		{
			Title:       "Question",
			Description: "Insert a multiple choice question.",
			SearchTerms: []string{"mcq", "quiz"},
			Command: func(ctx context.Context, c *CommandContext) error {
				if hooks.OpenQuestionForm == nil {
					return nil
				}
				return hooks.OpenQuestionForm(ctx, c)
			},
		},
		{
			Title:       "Formula",
			Description: "Convert English text to a LaTeX formula.",
			SearchTerms: []string{"latex", "math"},
			Command: func(ctx context.Context, c *CommandContext) error {
				if hooks.OpenFormulaInput == nil {
					return nil
				}
				return hooks.OpenFormulaInput(ctx, c)
			},
		},
	}
}
