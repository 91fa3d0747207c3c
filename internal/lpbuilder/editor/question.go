package editor

import (
	"strings"

	"github.com/gofrs/uuid"
)

// QuestionAttrs - типизированное представление атрибутов ноды вопроса.
// Нода и запись в хранилище вопросов связаны полем ID: для каждой ноды
// с непустым ID после успешного сохранения должна существовать запись
// с тем же идентификатором.
type QuestionAttrs struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// NewQuestionNode создаёт новую ноду вопроса со свежим уникальным
// идентификатором. Идентификатор из attrs игнорируется: каждая вставка
// порождает новую идентичность.
func NewQuestionNode(attrs QuestionAttrs) Node {
	attrs.ID = GenID()
	return questionNode(attrs)
}

func questionNode(attrs QuestionAttrs) Node {
	n := Node{Type: NodeMCQ}
	applyQuestionAttrs(&n, attrs)
	return n
}

// GenID возвращает новый уникальный идентификатор вопроса.
func GenID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// ReadQuestionAttrs извлекает атрибуты вопроса из ноды.
// Возвращает false, если нода не является нодой вопроса.
func ReadQuestionAttrs(n *Node) (QuestionAttrs, bool) {
	if n.Type != NodeMCQ {
		return QuestionAttrs{}, false
	}
	return QuestionAttrs{
		ID:            getAttrString(n.Attrs, "id"),
		Question:      getAttrString(n.Attrs, "question"),
		Options:       getAttrStrings(n.Attrs, "options"),
		CorrectAnswer: getAttrInt(n.Attrs, "correctAnswer"),
	}, true
}

// applyQuestionAttrs записывает атрибуты вопроса в ноду в каноническом
// JSON-представлении, чтобы сериализация и десериализация давали
// структурно равные деревья.
func applyQuestionAttrs(n *Node, attrs QuestionAttrs) {
	options := make([]any, len(attrs.Options))
	for i, o := range attrs.Options {
		options[i] = o
	}
	n.Attrs = map[string]any{
		"id":            attrs.ID,
		"question":      attrs.Question,
		"options":       options,
		"correctAnswer": float64(attrs.CorrectAnswer),
	}
}

// FilterBlankOptions убирает варианты ответа, чей текст пуст после trim.
func FilterBlankOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		if strings.TrimSpace(o) != "" {
			out = append(out, o)
		}
	}
	return out
}

// FindQuestionNode ищет в документе ноду вопроса с указанным идентификатором.
func (d *Document) FindQuestionNode(id string) *Node {
	var found *Node
	d.Walk(func(n *Node) bool {
		if n.Type == NodeMCQ && getAttrString(n.Attrs, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// QuestionIDs возвращает идентификаторы всех нод вопросов документа
// в порядке обхода. Пустые идентификаторы (несохранённые ноды) пропускаются.
func (d *Document) QuestionIDs() []string {
	ids := make([]string, 0)
	d.Walk(func(n *Node) bool {
		if n.Type == NodeMCQ {
			if id := getAttrString(n.Attrs, "id"); id != "" {
				ids = append(ids, id)
			}
		}
		return true
	})
	return ids
}

// UpdateQuestionNode обновляет атрибуты существующей ноды вопроса на месте,
// сохраняя её идентификатор. Возвращает false, если нода не найдена.
func (d *Document) UpdateQuestionNode(id string, attrs QuestionAttrs) bool {
	n := d.FindQuestionNode(id)
	if n == nil {
		return false
	}
	attrs.ID = id
	applyQuestionAttrs(n, attrs)
	return true
}

// getAttrString безопасно извлекает строковый атрибут из map.
func getAttrString(attrs map[string]any, key string) string {
	if attrs == nil {
		return ""
	}
	str, _ := attrs[key].(string)
	return str
}

// getAttrInt безопасно извлекает целочисленный атрибут из map.
func getAttrInt(attrs map[string]any, key string) int {
	if attrs == nil {
		return 0
	}
	// Из JSON числа приходят как float64
	if f, ok := attrs[key].(float64); ok {
		return int(f)
	}
	if i, ok := attrs[key].(int); ok {
		return i
	}
	return 0
}

// getAttrStrings безопасно извлекает атрибут-последовательность строк из map.
func getAttrStrings(attrs map[string]any, key string) []string {
	if attrs == nil {
		return nil
	}
	switch v := attrs[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
