package editor

import "errors"

var (
	ErrBlockOutOfRange = errors.New("block index out of range")
	ErrBadTextRange    = errors.New("invalid text range")
)

// Range описывает диапазон текста внутри одного блока документа:
// смещения From..To в конкатенированном тексте inline-содержимого блока.
type Range struct {
	Block int
	From  int
	To    int
}

// Cursor - позиция курсора: блок и смещение в его тексте.
type Cursor struct {
	Block  int
	Offset int
}

// Collapsed возвращает пустой диапазон в позиции курсора.
func (c Cursor) Collapsed() Range {
	return Range{Block: c.Block, From: c.Offset, To: c.Offset}
}

// BlockCount возвращает число блоков верхнего уровня.
func (d *Document) BlockCount() int {
	return len(d.Content)
}

// Block возвращает блок по индексу.
func (d *Document) Block(i int) (*Node, error) {
	if i < 0 || i >= len(d.Content) {
		return nil, ErrBlockOutOfRange
	}
	return &d.Content[i], nil
}

// InsertBlockAt вставляет блок по индексу i, сдвигая последующие блоки.
func (d *Document) InsertBlockAt(i int, n Node) error {
	if i < 0 || i > len(d.Content) {
		return ErrBlockOutOfRange
	}
	d.Content = append(d.Content, Node{})
	copy(d.Content[i+1:], d.Content[i:])
	d.Content[i] = n
	return nil
}

// AppendQuestion добавляет ноду вопроса в конец документа вместе
// с пустым параграфом после неё, чтобы курсор мог встать за атомарным блоком.
func (d *Document) AppendQuestion(n Node) {
	d.Content = append(d.Content, n, NewParagraph())
}

// RemoveBlock удаляет блок по индексу. Это единственный способ удалить
// атомарную ноду: явное действие удаления, не побочный эффект правки.
func (d *Document) RemoveBlock(i int) error {
	if i < 0 || i >= len(d.Content) {
		return ErrBlockOutOfRange
	}
	d.Content = append(d.Content[:i], d.Content[i+1:]...)
	if len(d.Content) == 0 {
		d.Content = []Node{NewParagraph()}
	}
	return nil
}

// RemoveQuestionNode удаляет ноду вопроса с указанным идентификатором.
// Возвращает false, если нода не найдена.
func (d *Document) RemoveQuestionNode(id string) bool {
	for i := range d.Content {
		if d.Content[i].Type == NodeMCQ && getAttrString(d.Content[i].Attrs, "id") == id {
			d.RemoveBlock(i)
			return true
		}
	}
	return false
}

// DeleteTextRange удаляет диапазон текста внутри блока.
// Правка внутри атомарного блока запрещена и оставляет документ неизменным.
func (d *Document) DeleteTextRange(s *Schema, r Range) error {
	return d.ReplaceTextRange(s, r, nil)
}

// ReplaceTextRange заменяет диапазон текста внутри блока на replacement.
// Передача nil в replacement удаляет диапазон.
func (d *Document) ReplaceTextRange(s *Schema, r Range, replacement []Node) error {
	block, err := d.Block(r.Block)
	if err != nil {
		return err
	}
	if s.IsAtomic(block.Type) {
		// Содержимое атомарной ноды не редактируется
		return nil
	}
	if r.From < 0 || r.To < r.From {
		return ErrBadTextRange
	}

	content := make([]Node, 0, len(block.Content)+len(replacement))
	inserted := false
	insert := func() {
		if !inserted {
			content = append(content, replacement...)
			inserted = true
		}
	}
	keepText := func(n Node) {
		if n.Text != "" {
			content = append(content, n)
		}
	}

	offset := 0
	for _, child := range block.Content {
		if child.Type != NodeText {
			content = append(content, child)
			continue
		}
		start, end := offset, offset+len(child.Text)
		offset = end

		switch {
		case end <= r.From:
			// Сегмент целиком до диапазона
			keepText(child)
		case start >= r.To:
			// Сегмент целиком после диапазона
			insert()
			keepText(child)
		default:
			if start < r.From {
				left := child
				left.Text = child.Text[:r.From-start]
				keepText(left)
			}
			insert()
			if end > r.To {
				right := child
				right.Text = child.Text[r.To-start:]
				keepText(right)
			}
		}
	}
	insert()
	block.Content = mergeAdjacentText(content)
	return nil
}

// InsertTextAt вставляет текст в позицию курсора.
func (d *Document) InsertTextAt(s *Schema, c Cursor, text string, marks ...Mark) error {
	if text == "" {
		return nil
	}
	return d.ReplaceTextRange(s, c.Collapsed(), []Node{NewText(text, marks...)})
}

// mergeAdjacentText объединяет соседние текстовые ноды с одинаковыми marks,
// чтобы правки не дробили текст на фрагменты.
func mergeAdjacentText(content []Node) []Node {
	out := content[:0]
	for _, n := range content {
		if len(out) > 0 && n.Type == NodeText {
			last := &out[len(out)-1]
			if last.Type == NodeText && marksEq(last.Marks, n.Marks) {
				last.Text += n.Text
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func marksEq(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type || !attrsEq(a[i].Attrs, b[i].Attrs) {
			return false
		}
	}
	return true
}

// JoinBackward объединяет блок i с предыдущим блоком (backspace в начале
// блока). Если любой из блоков изолирующий, объединение не происходит
// и документ остаётся неизменным: правка рядом с нодой вопроса не должна
// удалять или сливать её.
func (d *Document) JoinBackward(s *Schema, i int) (bool, error) {
	if i <= 0 || i >= len(d.Content) {
		return false, ErrBlockOutOfRange
	}
	prev, cur := &d.Content[i-1], &d.Content[i]
	if s.IsIsolating(prev.Type) || s.IsIsolating(cur.Type) {
		return false, nil
	}
	prev.Content = append(prev.Content, cur.Content...)
	d.Content = append(d.Content[:i], d.Content[i+1:]...)
	return true, nil
}

// JoinForward объединяет блок i+1 в блок i (delete в конце блока).
// Изолирующие границы блокируют объединение так же, как в JoinBackward.
func (d *Document) JoinForward(s *Schema, i int) (bool, error) {
	if i < 0 || i+1 >= len(d.Content) {
		return false, ErrBlockOutOfRange
	}
	return d.JoinBackward(s, i+1)
}

// SetBlockType меняет тип блока (например, параграф на заголовок),
// сохраняя inline-содержимое. Атомарные блоки не преобразуются.
func (d *Document) SetBlockType(s *Schema, i int, nodeType string, attrs map[string]any) error {
	block, err := d.Block(i)
	if err != nil {
		return err
	}
	if s.IsAtomic(block.Type) {
		return nil
	}
	spec, ok := s.Spec(nodeType)
	if !ok {
		return &SchemaError{NodeType: nodeType, Reason: "unknown node type"}
	}
	if spec.Group != "block" {
		return &SchemaError{NodeType: nodeType, Reason: "not a block type"}
	}
	block.Type = nodeType
	block.Attrs = attrs
	return nil
}
