// Пакет editor содержит модель дерева документа учебной страницы.
// Документ представляется в виде дерева типизированных нод (параграфы, заголовки,
// текст, интерактивный вопрос) в формате, совместимом с TipTap редактором.
//
// Основные возможности:
//   - Универсальная структура ноды с типом, атрибутами и дочерними нодами.
//   - Схема типов нод с ограничениями на содержимое (см. schema.go).
//   - Структурное сравнение деревьев с учётом приведения числовых типов JSON.
//   - Операции редактирования, сохраняющие атомарность ноды вопроса (см. transform.go).
package editor

// Node представляет узел в дереве документа.
// Используется универсальная структура с map для атрибутов для поддержки различных типов нод.
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Text    string         `json:"text,omitempty"`
}

// Mark представляет форматирование текста (bold, italic, strike, math).
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Document представляет корневой документ.
type Document struct {
	Content []Node `json:"content,omitempty"`
}

// NewDocument возвращает пустой документ с одним пустым параграфом.
func NewDocument() *Document {
	return &Document{Content: []Node{NewParagraph()}}
}

// NewParagraph возвращает параграф с текстовым содержимым.
func NewParagraph(text ...string) Node {
	p := Node{Type: NodeParagraph, Content: make([]Node, 0, len(text))}
	for _, t := range text {
		if t == "" {
			continue
		}
		p.Content = append(p.Content, NewText(t))
	}
	return p
}

// NewHeading возвращает заголовок указанного уровня.
func NewHeading(level int, text ...string) Node {
	h := Node{
		Type:    NodeHeading,
		Attrs:   map[string]any{"level": float64(level)},
		Content: make([]Node, 0, len(text)),
	}
	for _, t := range text {
		if t == "" {
			continue
		}
		h.Content = append(h.Content, NewText(t))
	}
	return h
}

// NewText возвращает текстовую ноду.
func NewText(text string, marks ...Mark) Node {
	return Node{Type: NodeText, Text: text, Marks: marks}
}

// Clone возвращает глубокую копию документа.
func (d *Document) Clone() *Document {
	out := &Document{Content: make([]Node, len(d.Content))}
	for i := range d.Content {
		out.Content[i] = cloneNode(d.Content[i])
	}
	return out
}

func cloneNode(n Node) Node {
	out := n
	if n.Attrs != nil {
		out.Attrs = make(map[string]any, len(n.Attrs))
		for k, v := range n.Attrs {
			out.Attrs[k] = cloneValue(v)
		}
	}
	if n.Marks != nil {
		out.Marks = make([]Mark, len(n.Marks))
		for i, m := range n.Marks {
			out.Marks[i] = Mark{Type: m.Type}
			if m.Attrs != nil {
				out.Marks[i].Attrs = make(map[string]any, len(m.Attrs))
				for k, v := range m.Attrs {
					out.Marks[i].Attrs[k] = cloneValue(v)
				}
			}
		}
	}
	if n.Content != nil {
		out.Content = make([]Node, len(n.Content))
		for i := range n.Content {
			out.Content[i] = cloneNode(n.Content[i])
		}
	}
	return out
}

func cloneValue(v any) any {
	switch vv := v.(type) {
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(vv))
		copy(out, vv)
		return out
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, item := range vv {
			out[k] = cloneValue(item)
		}
		return out
	}
	return v
}

// Walk обходит дерево документа в глубину, вызывая fn для каждой ноды.
// Обход прерывается, если fn возвращает false.
func (d *Document) Walk(fn func(n *Node) bool) {
	for i := range d.Content {
		if !walkNode(&d.Content[i], fn) {
			return
		}
	}
}

func walkNode(n *Node, fn func(n *Node) bool) bool {
	if !fn(n) {
		return false
	}
	for i := range n.Content {
		if !walkNode(&n.Content[i], fn) {
			return false
		}
	}
	return true
}

// Eq выполняет структурное сравнение двух документов.
// Числовые атрибуты сравниваются по значению независимо от того,
// получены они из JSON (float64) или созданы в коде (int).
func (d *Document) Eq(other *Document) bool {
	if len(d.Content) != len(other.Content) {
		return false
	}
	for i := range d.Content {
		if !nodeEq(d.Content[i], other.Content[i]) {
			return false
		}
	}
	return true
}

func nodeEq(a, b Node) bool {
	if a.Type != b.Type || a.Text != b.Text {
		return false
	}
	if len(a.Content) != len(b.Content) || len(a.Marks) != len(b.Marks) {
		return false
	}
	if !attrsEq(a.Attrs, b.Attrs) {
		return false
	}
	for i := range a.Marks {
		if a.Marks[i].Type != b.Marks[i].Type || !attrsEq(a.Marks[i].Attrs, b.Marks[i].Attrs) {
			return false
		}
	}
	for i := range a.Content {
		if !nodeEq(a.Content[i], b.Content[i]) {
			return false
		}
	}
	return true
}

func attrsEq(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !valueEq(av, bv) {
			return false
		}
	}
	return true
}

func valueEq(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	case []any:
		bv, ok := toAnySlice(b)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEq(av[i], bv[i]) {
				return false
			}
		}
		return true
	case []string:
		return valueEq(toAny(av), b)
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toAnySlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		return toAny(s), true
	}
	return nil, false
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

// PlainText возвращает конкатенацию текстового содержимого ноды.
func (n *Node) PlainText() string {
	if n.Type == NodeText {
		return n.Text
	}
	var out string
	for i := range n.Content {
		out += n.Content[i].PlainText()
	}
	return out
}
