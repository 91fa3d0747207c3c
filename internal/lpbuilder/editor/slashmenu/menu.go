// Пакет slashmenu реализует командное меню редактора, вызываемое
// символом "/" в тексте документа.
//
// Основные возможности:
//   - Машина состояний Idle -> Open -> Idle с детерминированным сворачиванием оверлея.
//   - Циклическая навигация по пунктам меню стрелками (по модулю числа пунктов).
//   - Фильтрация пунктов по набранному после "/" тексту.
//   - Удаление триггерного диапазона из документа перед выполнением команды.
package slashmenu

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
)

var ErrNoItems = errors.New("no menu items match filter")

// State - состояние меню.
type State int

const (
	StateIdle State = iota
	StateOpen
)

// TriggerChar - символ, открывающий меню.
const TriggerChar = '/'

// CommandContext передаётся команде при выполнении. Range указывает позицию
// курсора после удаления триггерного диапазона: команда всегда стартует
// с чистой позиции.
type CommandContext struct {
	Doc    *editor.Document
	Schema *editor.Schema
	Range  editor.Range
}

// Item - пункт меню: заголовок, описание и исполняемое действие.
type Item struct {
	Title       string
	Description string
	SearchTerms []string
	Command     func(ctx context.Context, c *CommandContext) error
}

// Menu - командное меню. Все переходы состояний синхронны; меню не хранит
// ссылку на документ и получает его при каждом событии ввода.
type Menu struct {
	schema *editor.Schema
	items  []Item

	state       State
	highlighted int
	filter      string
	trigger     editor.Range
	cursor      editor.Cursor
	overlay     bool
}

// NewMenu создаёт меню с фиксированным набором пунктов.
func NewMenu(schema *editor.Schema, items []Item) *Menu {
	return &Menu{schema: schema, items: items}
}

func (m *Menu) State() State         { return m.state }
func (m *Menu) OverlayVisible() bool { return m.overlay }
func (m *Menu) Highlighted() int     { return m.highlighted }
func (m *Menu) Filter() string       { return m.filter }

// SetCursor задаёт позицию курсора, в которой будет открыто меню
// при следующем вводе триггерного символа.
func (m *Menu) SetCursor(c editor.Cursor) { m.cursor = c }

// FilteredItems возвращает пункты меню, подходящие под текущий фильтр.
func (m *Menu) FilteredItems() []Item {
	if m.filter == "" {
		return m.items
	}
	out := make([]Item, 0, len(m.items))
	for _, item := range m.items {
		if itemMatches(item, m.filter) {
			out = append(out, item)
		}
	}
	return out
}

func itemMatches(item Item, filter string) bool {
	if containsFold(item.Title, filter) {
		return true
	}
	for _, term := range item.SearchTerms {
		if containsFold(term, filter) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// HandleKey обрабатывает событие клавиатуры. Возвращает true, если событие
// обработано меню и не должно передаваться нижележащему редактору: пока меню
// открыто, заявленные им клавиши не доходят до документа.
func (m *Menu) HandleKey(ctx context.Context, doc *editor.Document, k Key) (bool, error) {
	if m.state == StateIdle {
		if k.Rune == TriggerChar {
			return true, m.open(doc)
		}
		return false, nil
	}

	switch k.Name {
	case KeyArrowDown:
		m.moveHighlight(1)
		return true, nil
	case KeyArrowUp:
		m.moveHighlight(-1)
		return true, nil
	case KeyEnter:
		return true, m.Commit(ctx, doc, m.highlighted)
	case KeyEscape:
		m.Cancel()
		return true, nil
	case KeyBackspace:
		return true, m.backspace(doc)
	}

	if k.Rune != 0 {
		return true, m.appendFilter(doc, k.Rune)
	}
	return false, nil
}

func (m *Menu) open(doc *editor.Document) error {
	if err := doc.InsertTextAt(m.schema, m.cursor, string(TriggerChar)); err != nil {
		return err
	}
	m.state = StateOpen
	m.overlay = true
	m.highlighted = 0
	m.filter = ""
	m.trigger = editor.Range{Block: m.cursor.Block, From: m.cursor.Offset, To: m.cursor.Offset + 1}
	return nil
}

func (m *Menu) moveHighlight(delta int) {
	n := len(m.FilteredItems())
	if n == 0 {
		return
	}
	m.highlighted = (m.highlighted + delta + n) % n
}

func (m *Menu) appendFilter(doc *editor.Document, r rune) error {
	text := string(r)
	at := editor.Cursor{Block: m.trigger.Block, Offset: m.trigger.To}
	if err := doc.InsertTextAt(m.schema, at, text); err != nil {
		return err
	}
	m.trigger.To += len(text)
	m.filter += text
	m.highlighted = 0
	return nil
}

func (m *Menu) backspace(doc *editor.Document) error {
	// Смещения байтовые: стирается последний символ фильтра целиком,
	// а не один байт
	width := 1
	if m.filter != "" {
		_, width = utf8.DecodeLastRuneInString(m.filter)
	}
	r := editor.Range{Block: m.trigger.Block, From: m.trigger.To - width, To: m.trigger.To}
	if err := doc.DeleteTextRange(m.schema, r); err != nil {
		return err
	}
	m.trigger.To -= width
	if m.trigger.To <= m.trigger.From {
		// Удалён сам триггерный символ
		m.teardown()
		return nil
	}
	m.filter = m.filter[:len(m.filter)-width]
	m.highlighted = 0
	return nil
}

// Hover подсвечивает пункт меню по индексу (наведение указателя).
func (m *Menu) Hover(i int) {
	if m.state != StateOpen || i < 0 || i >= len(m.FilteredItems()) {
		return
	}
	m.highlighted = i
}

// Commit выполняет пункт меню с индексом i. Триггерный символ и набранный
// фильтр удаляются из документа до запуска команды.
func (m *Menu) Commit(ctx context.Context, doc *editor.Document, i int) error {
	items := m.FilteredItems()
	if len(items) == 0 {
		m.Cancel()
		return ErrNoItems
	}
	if i < 0 || i >= len(items) {
		i = 0
	}
	item := items[i]

	if err := doc.DeleteTextRange(m.schema, m.trigger); err != nil {
		return err
	}
	at := editor.Range{Block: m.trigger.Block, From: m.trigger.From, To: m.trigger.From}
	m.teardown()

	return item.Command(ctx, &CommandContext{Doc: doc, Schema: m.schema, Range: at})
}

// Cancel закрывает меню без изменения документа.
func (m *Menu) Cancel() {
	m.teardown()
}

// teardown детерминированно сворачивает оверлей: после любого commit
// или cancel видимого состояния меню не остаётся.
func (m *Menu) teardown() {
	m.state = StateIdle
	m.overlay = false
	m.filter = ""
	m.highlighted = 0
	m.trigger = editor.Range{}
}
