package mcqform

import (
	"context"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/apierrors"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
)

// Тексты вердикта, отображаемые ученику после отправки ответа.
const (
	VerdictCorrect   = "Correct!"
	VerdictIncorrect = "Incorrect. Try again."
)

// AnswerSubmitter отправляет выбранный ответ на проверку.
// Корректность вычисляется на стороне хранилища вопросов.
type AnswerSubmitter interface {
	SubmitAnswer(ctx context.Context, questionID string, selectedAnswer int) (bool, error)
}

// LearnerForm - форма ученика в режиме просмотра: текст вопроса и варианты
// как одиночный выбор. Выбранный вариант и результат проверки - временное
// состояние, не входящее в сохраняемые атрибуты ноды.
type LearnerForm struct {
	attrs    editor.QuestionAttrs
	selected int
	verdict  string
}

// NewLearnerForm создаёт форму без выбранного варианта.
func NewLearnerForm(attrs editor.QuestionAttrs) *LearnerForm {
	return &LearnerForm{attrs: attrs, selected: -1}
}

// Selected возвращает индекс выбранного варианта, -1 если выбора нет.
func (f *LearnerForm) Selected() int { return f.selected }

// Verdict возвращает текст результата последней отправки.
func (f *LearnerForm) Verdict() string { return f.verdict }

// Select отмечает вариант ответа. Одновременно выбран ровно один вариант.
func (f *LearnerForm) Select(i int) error {
	if i < 0 || i >= len(f.attrs.Options) {
		return apierrors.ErrCorrectAnswerOutOfRange
	}
	f.selected = i
	return nil
}

// Clear сбрасывает только временный выбор, вердикт остаётся.
func (f *LearnerForm) Clear() {
	f.selected = -1
}

// Submit отправляет ответ на проверку. Отправка без выбранного варианта
// отклоняется локально без сетевого вызова; при выбранном варианте
// выполняется ровно один запрос, и вердикт сохраняется для отображения.
func (f *LearnerForm) Submit(ctx context.Context, submitter AnswerSubmitter) (bool, error) {
	if f.selected < 0 {
		return false, apierrors.ErrNoOptionSelected
	}

	correct, err := submitter.SubmitAnswer(ctx, f.attrs.ID, f.selected)
	if err != nil {
		return false, err
	}

	if correct {
		f.verdict = VerdictCorrect
	} else {
		f.verdict = VerdictIncorrect
	}
	return correct, nil
}
