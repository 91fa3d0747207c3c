package tiptap

import (
	"encoding/json"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
)

// Serialize сериализует editor.Document в TipTap JSON.
// Сериализация - точная обратная операция к ParseJSON: для любого валидного
// дерева T выполняется ParseJSON(Serialize(T)).Eq(T).
func Serialize(doc *editor.Document, schema *editor.Schema) ([]byte, error) {
	if err := schema.Validate(doc); err != nil {
		return nil, err
	}

	return json.Marshal(TipTapDocument{
		Type:    editor.NodeDoc,
		Content: doc.Content,
	})
}
