package slashmenu

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
)

var ErrEmptyFormulaText = errors.New("formula text is empty")

// LatexConverter преобразует английский текст в LaTeX-разметку.
// Вызов не отменяется после отправки.
type LatexConverter interface {
	EnglishToLatex(ctx context.Context, text string) (string, error)
}

// FormulaInput - строчный ввод команды формулы. Занимает позицию курсора,
// по Enter отправляет набранный текст внешнему конвертеру и заменяет
// диапазон полученной формулой. Отказ конвертера оставляет ввод открытым
// для повтора, ошибка сохраняется для отображения.
type FormulaInput struct {
	schema    *editor.Schema
	converter LatexConverter

	open bool
	at   editor.Range
	text string
	err  error
}

// NewFormulaInput создаёт закрытый формульный ввод.
func NewFormulaInput(schema *editor.Schema, converter LatexConverter) *FormulaInput {
	return &FormulaInput{schema: schema, converter: converter}
}

func (f *FormulaInput) IsOpen() bool   { return f.open }
func (f *FormulaInput) Text() string   { return f.text }
func (f *FormulaInput) LastErr() error { return f.err }

// Open открывает ввод в указанной позиции документа.
func (f *FormulaInput) Open(at editor.Range) {
	f.open = true
	f.at = at
	f.text = ""
	f.err = nil
}

// HandleKey обрабатывает ввод, пока строка формулы открыта.
// Открытый ввод заявляет все клавиши: они не доходят до редактора.
func (f *FormulaInput) HandleKey(ctx context.Context, doc *editor.Document, k Key) (bool, error) {
	if !f.open {
		return false, nil
	}

	switch k.Name {
	case KeyEscape:
		f.close()
		return true, nil
	case KeyBackspace:
		if f.text != "" {
			_, width := utf8.DecodeLastRuneInString(f.text)
			f.text = f.text[:len(f.text)-width]
		}
		return true, nil
	case KeyEnter:
		return true, f.Submit(ctx, doc)
	}
	if k.Rune != 0 {
		f.text += string(k.Rune)
		return true, nil
	}
	return true, nil
}

// Submit отправляет набранный текст конвертеру и по успеху заменяет
// диапазон текстовой нодой с mark формулы. Отказ конвертера наблюдаем:
// ошибка возвращается и сохраняется, ввод остаётся открытым.
func (f *FormulaInput) Submit(ctx context.Context, doc *editor.Document) error {
	if f.text == "" {
		f.err = ErrEmptyFormulaText
		return ErrEmptyFormulaText
	}

	latex, err := f.converter.EnglishToLatex(ctx, f.text)
	if err != nil {
		f.err = err
		return err
	}

	replacement := []editor.Node{editor.NewText(latex, editor.Mark{Type: editor.MarkMath})}
	if err := doc.ReplaceTextRange(f.schema, f.at, replacement); err != nil {
		f.err = err
		return err
	}
	f.close()
	return nil
}

func (f *FormulaInput) close() {
	f.open = false
	f.text = ""
	f.err = nil
}
