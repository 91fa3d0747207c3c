// Пакет tiptap предоставляет кодек JSON-контента TipTap редактора.
// Преобразует JSON структуры TipTap в дерево документа пакета editor и обратно.
//
// В отличие от толерантного парсинга, нода неизвестного типа - жёсткая ошибка
// схемы, а не тихий пропуск: тихий пропуск ноды вопроса разорвал бы связь
// между документом и хранилищем вопросов.
package tiptap

import "github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"

// TipTapDocument представляет корневой документ TipTap.
type TipTapDocument struct {
	Type    string        `json:"type"`
	Content []editor.Node `json:"content,omitempty"`
}
