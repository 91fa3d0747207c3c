package editor

import "fmt"

// Имена типов нод, известных схеме по умолчанию.
const (
	NodeDoc       = "doc"
	NodeParagraph = "paragraph"
	NodeHeading   = "heading"
	NodeText      = "text"
	NodeMCQ       = "mcqNode"
)

// Имена marks, известных схеме по умолчанию.
const (
	MarkBold   = "bold"
	MarkItalic = "italic"
	MarkStrike = "strike"
	MarkMath   = "math"
)

// Ограничения на содержимое ноды.
const (
	ContentBlocks  = "block+"  // один и более блоков
	ContentInline  = "inline*" // ноль и более inline нод
	ContentNothing = ""        // листовая нода без содержимого
)

// SchemaError - нарушение схемы документа. Десериализация документа
// с такой ошибкой фатальна: частично загруженное дерево использовать нельзя.
type SchemaError struct {
	NodeType string
	Reason   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("document schema violation: node %q: %s", e.NodeType, e.Reason)
}

// NodeSpec описывает один тип ноды: группу, ограничение на содержимое,
// допустимые атрибуты с значениями по умолчанию и флаги поведения.
type NodeSpec struct {
	Name    string
	Group   string // "block" или "inline"
	Content string // ContentBlocks, ContentInline или ContentNothing

	// Atomic - нода не принимает редактирование дочерних нод;
	// её содержимое служит только человекочитаемой подписью.
	Atomic bool
	// Isolating - структурные правки на границах ноды не объединяют
	// её с соседями и не удаляют её как побочный эффект.
	Isolating bool

	// Attrs - допустимые атрибуты со значениями по умолчанию.
	Attrs map[string]any
}

// Schema - реестр типов нод. Дерево валидно, если тип каждой ноды известен
// схеме и дочерние ноды удовлетворяют ограничению на содержимое.
type Schema struct {
	specs map[string]NodeSpec
	marks map[string]bool
}

// NewSchema создаёт схему из набора спецификаций нод и имен marks.
func NewSchema(specs []NodeSpec, marks []string) *Schema {
	s := &Schema{
		specs: make(map[string]NodeSpec, len(specs)),
		marks: make(map[string]bool, len(marks)),
	}
	for _, spec := range specs {
		s.specs[spec.Name] = spec
	}
	for _, m := range marks {
		s.marks[m] = true
	}
	return s
}

// DefaultSchema возвращает схему учебной страницы: стандартные прозаические
// типы плюс нода интерактивного вопроса.
func DefaultSchema() *Schema {
	return NewSchema([]NodeSpec{
		{Name: NodeDoc, Content: ContentBlocks},
		{Name: NodeParagraph, Group: "block", Content: ContentInline},
		{
			Name:    NodeHeading,
			Group:   "block",
			Content: ContentInline,
			Attrs:   map[string]any{"level": float64(1)},
		},
		{Name: NodeText, Group: "inline", Content: ContentNothing},
		{
			Name:      NodeMCQ,
			Group:     "block",
			Content:   ContentInline,
			Atomic:    true,
			Isolating: true,
			Attrs: map[string]any{
				"id":            "",
				"question":      "",
				"options":       []any{},
				"correctAnswer": float64(0),
			},
		},
	}, []string{MarkBold, MarkItalic, MarkStrike, MarkMath})
}

// Spec возвращает спецификацию типа ноды.
func (s *Schema) Spec(name string) (NodeSpec, bool) {
	spec, ok := s.specs[name]
	return spec, ok
}

// IsAtomic возвращает true, если тип ноды атомарный.
func (s *Schema) IsAtomic(name string) bool {
	spec, ok := s.specs[name]
	return ok && spec.Atomic
}

// IsIsolating возвращает true, если тип ноды изолирующий.
func (s *Schema) IsIsolating(name string) bool {
	spec, ok := s.specs[name]
	return ok && spec.Isolating
}

// Validate проверяет документ на соответствие схеме.
// Неизвестный тип ноды, недопустимый атрибут или нарушение ограничения
// на содержимое возвращают *SchemaError.
func (s *Schema) Validate(d *Document) error {
	doc, _ := s.specs[NodeDoc]
	if err := s.validateContent(NodeDoc, doc.Content, d.Content); err != nil {
		return err
	}
	for i := range d.Content {
		if err := s.validateNode(&d.Content[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) validateNode(n *Node) error {
	spec, ok := s.specs[n.Type]
	if !ok {
		return &SchemaError{NodeType: n.Type, Reason: "unknown node type"}
	}

	for name := range n.Attrs {
		if _, ok := spec.Attrs[name]; !ok {
			return &SchemaError{NodeType: n.Type, Reason: fmt.Sprintf("unknown attribute %q", name)}
		}
	}

	for _, m := range n.Marks {
		if !s.marks[m.Type] {
			return &SchemaError{NodeType: n.Type, Reason: fmt.Sprintf("unknown mark %q", m.Type)}
		}
	}

	if err := s.validateContent(n.Type, spec.Content, n.Content); err != nil {
		return err
	}
	for i := range n.Content {
		if err := s.validateNode(&n.Content[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) validateContent(parent, constraint string, content []Node) error {
	switch constraint {
	case ContentNothing:
		if len(content) > 0 {
			return &SchemaError{NodeType: parent, Reason: "leaf node must not have content"}
		}
	case ContentBlocks:
		if len(content) == 0 {
			return &SchemaError{NodeType: parent, Reason: "requires at least one block child"}
		}
		return s.checkGroup(parent, "block", content)
	case ContentInline:
		return s.checkGroup(parent, "inline", content)
	}
	return nil
}

func (s *Schema) checkGroup(parent, group string, content []Node) error {
	for i := range content {
		spec, ok := s.specs[content[i].Type]
		if !ok {
			return &SchemaError{NodeType: content[i].Type, Reason: "unknown node type"}
		}
		if spec.Group != group {
			return &SchemaError{
				NodeType: parent,
				Reason:   fmt.Sprintf("child %q is not in group %q", content[i].Type, group),
			}
		}
	}
	return nil
}
