// Пакет latex преобразует английский текст в LaTeX-разметку
// через локальную языковую модель Ollama.
package latex

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/apierrors"
)

const systemPrompt = "Convert the given English text to LaTeX. This is using the Mathematics extension of the tiptap editor. Write the latex directly."

// Converter генерирует LaTeX из английского текста через Ollama.
type Converter struct {
	client *api.Client
	model  string
}

// NewConverter создаёт конвертер. Адрес сервера Ollama берётся
// из окружения (OLLAMA_HOST).
func NewConverter(model string) (*Converter, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, err
	}
	return &Converter{client: client, model: model}, nil
}

// EnglishToLatex выполняет один запрос к модели без стриминга и
// возвращает сгенерированную разметку.
func (c *Converter) EnglishToLatex(ctx context.Context, text string) (string, error) {
	format := json.RawMessage(`{
        "type": "object",
        "properties": {
            "latex": {
                "type": "string"
            }
        },
        "required": [
            "latex"
        ]
    }`)

	var fullResponse strings.Builder
	var stream = false
	req := api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{
				Role:    "system",
				Content: systemPrompt,
			},
			{
				Role:    "user",
				Content: text,
			},
		},
		Format: format,
		Stream: &stream,
	}

	err := c.client.Chat(ctx, &req, func(resp api.ChatResponse) error {
		if len(resp.Message.Content) > 0 {
			fullResponse.WriteString(resp.Message.Content)
		}
		return nil
	})
	if err != nil {
		return "", apierrors.ErrLatexGeneration
	}

	var result struct {
		Latex string `json:"latex"`
	}
	if err := json.Unmarshal([]byte(fullResponse.String()), &result); err != nil {
		return "", apierrors.ErrLatexGeneration
	}
	if strings.TrimSpace(result.Latex) == "" {
		return "", apierrors.ErrLatexGeneration
	}
	return result.Latex, nil
}
