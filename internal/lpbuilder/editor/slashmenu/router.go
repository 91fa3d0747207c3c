package slashmenu

import (
	"context"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
)

// Имена специальных клавиш.
const (
	KeyArrowUp   = "ArrowUp"
	KeyArrowDown = "ArrowDown"
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
	KeyBackspace = "Backspace"
)

// Key - событие клавиатуры: печатный символ или специальная клавиша.
type Key struct {
	Rune rune
	Name string
}

// RuneKey возвращает событие для печатного символа.
func RuneKey(r rune) Key { return Key{Rune: r} }

// NamedKey возвращает событие специальной клавиши.
func NamedKey(name string) Key { return Key{Name: name} }

// KeyHandler обрабатывает событие клавиатуры над документом.
// Возвращает true, если событие обработано и не передаётся дальше.
type KeyHandler interface {
	HandleKey(ctx context.Context, doc *editor.Document, k Key) (bool, error)
}

// Router - упорядоченный список обработчиков ввода с коротким замыканием:
// пока открытый оверлей (меню, формульный ввод) заявляет клавишу, она не
// доходит до нижележащего редактора.
type Router struct {
	handlers []KeyHandler
}

// NewRouter создаёт маршрутизатор с обработчиками в порядке приоритета.
func NewRouter(handlers ...KeyHandler) *Router {
	return &Router{handlers: handlers}
}

// Route передаёт событие обработчикам по порядку до первого, который его заявит.
func (r *Router) Route(ctx context.Context, doc *editor.Document, k Key) (bool, error) {
	for _, h := range r.handlers {
		handled, err := h.HandleKey(ctx, doc, k)
		if handled || err != nil {
			return handled, err
		}
	}
	return false, nil
}
