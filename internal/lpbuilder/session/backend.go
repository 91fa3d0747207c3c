package session

import (
	"context"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
)

// Submission - отправленный учеником ответ, как он хранится на сервере.
type Submission struct {
	QuestionID     string `json:"question_id"`
	SelectedAnswer int    `json:"selected_answer"`
}

// Backend - операции сервера, потребляемые сессией редактирования.
// Транспорт абстрагирован: сессии важен только контракт операций.
type Backend interface {
	// GetLearningPage возвращает сериализованное дерево документа.
	GetLearningPage(ctx context.Context) (string, error)
	// UpsertLearningPage полностью перезаписывает сохранённую страницу.
	UpsertLearningPage(ctx context.Context, content string) error

	// UpsertQuestion создаёт или обновляет запись вопроса.
	UpsertQuestion(ctx context.Context, q editor.QuestionAttrs) error
	// DeleteQuestion удаляет запись вопроса.
	DeleteQuestion(ctx context.Context, id string) error

	// SubmitAnswer отправляет ответ и возвращает вердикт сервера.
	SubmitAnswer(ctx context.Context, questionID string, selectedAnswer int) (bool, error)
	// GetSubmissions возвращает сохранённые отправки.
	GetSubmissions(ctx context.Context) ([]Submission, error)

	// EnglishToLatex преобразует английский текст в LaTeX-разметку.
	EnglishToLatex(ctx context.Context, text string) (string, error)
}
