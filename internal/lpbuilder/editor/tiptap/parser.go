package tiptap

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
)

// ParseJSON парсит JSON контент TipTap редактора в структуру editor.Document.
// Принимает io.Reader с JSON данными и возвращает распарсенный документ.
// Документ, нарушающий схему, возвращает *editor.SchemaError: сессия не должна
// продолжать работу с частично загруженным деревом.
func ParseJSON(r io.Reader, schema *editor.Schema) (*editor.Document, error) {
	var tipTapDoc TipTapDocument
	if err := json.NewDecoder(r).Decode(&tipTapDoc); err != nil {
		return nil, fmt.Errorf("decode tiptap json: %w", err)
	}

	if tipTapDoc.Type != editor.NodeDoc {
		return nil, &editor.SchemaError{NodeType: tipTapDoc.Type, Reason: "root node must be doc"}
	}

	doc := &editor.Document{Content: tipTapDoc.Content}
	if doc.Content == nil {
		doc.Content = make([]editor.Node, 0)
	}

	if err := schema.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
