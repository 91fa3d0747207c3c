// Пакет mcqform содержит состояние двух форм ноды вопроса:
// формы автора (создание и правка вопроса) и формы ученика (выбор ответа).
//
// Основные возможности:
//   - Снимок исходных значений и флаг dirty для формы автора.
//   - Фильтрация пустых вариантов ответа перед сохранением.
//   - Валидация отправки ответа учеником без сетевого вызова при нарушении.
package mcqform

import (
	"slices"
	"strings"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/apierrors"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
)

// Значения по умолчанию для новой формы вопроса.
var (
	defaultQuestion = "Write your question."
	defaultOptions  = []string{"A", "B", "C", "D"}
)

// EditForm - форма создания/правки вопроса. Открывается предзаполненной
// из текущих атрибутов ноды; отмена отбрасывает правки, не трогая дерево.
type EditForm struct {
	Question      string
	Options       []string
	CorrectAnswer int

	snapshot editor.QuestionAttrs
	isNew    bool
}

// NewEditForm открывает форму. nil initial означает новый вопрос:
// форма заполняется значениями по умолчанию и считается dirty.
func NewEditForm(initial *editor.QuestionAttrs) *EditForm {
	if initial == nil {
		return &EditForm{
			Question: defaultQuestion,
			Options:  slices.Clone(defaultOptions),
			isNew:    true,
			snapshot: editor.QuestionAttrs{
				Question: defaultQuestion,
				Options:  slices.Clone(defaultOptions),
			},
		}
	}
	return &EditForm{
		Question:      initial.Question,
		Options:       slices.Clone(initial.Options),
		CorrectAnswer: initial.CorrectAnswer,
		snapshot:      *initial,
	}
}

// IsNew возвращает true для вопроса без существующего идентификатора.
func (f *EditForm) IsNew() bool { return f.isNew }

// Dirty возвращает true, если любое поле отличается от снимка, сделанного
// при открытии формы. Для нового вопроса dirty истинно по умолчанию.
func (f *EditForm) Dirty() bool {
	if f.isNew {
		return true
	}
	return f.Question != f.snapshot.Question ||
		f.CorrectAnswer != f.snapshot.CorrectAnswer ||
		!slices.Equal(f.Options, f.snapshot.Options)
}

// Submit валидирует форму и собирает атрибуты для сохранения.
// Пустые после trim варианты отфильтровываются; текст вопроса обязателен.
// После успешной отправки флаг dirty сбрасывается.
func (f *EditForm) Submit() (editor.QuestionAttrs, error) {
	if strings.TrimSpace(f.Question) == "" {
		return editor.QuestionAttrs{}, apierrors.ErrQuestionTextRequired
	}

	options := editor.FilterBlankOptions(f.Options)
	correct := f.CorrectAnswer
	if correct < 0 || correct >= len(options) {
		correct = 0
	}

	attrs := editor.QuestionAttrs{
		ID:            f.snapshot.ID,
		Question:      f.Question,
		Options:       options,
		CorrectAnswer: correct,
	}

	// Поля формы нормализуются к отправленному состоянию: dirty сброшен
	f.Options = slices.Clone(options)
	f.CorrectAnswer = correct
	f.snapshot = attrs
	f.isNew = false
	return attrs, nil
}

// Cancel отбрасывает правки, возвращая поля к снимку открытия.
func (f *EditForm) Cancel() {
	f.Question = f.snapshot.Question
	f.Options = slices.Clone(f.snapshot.Options)
	f.CorrectAnswer = f.snapshot.CorrectAnswer
}
