// Пакет session связывает дерево документа в памяти с двумя сохраняемыми
// ресурсами: блобом учебной страницы и записями вопросов.
//
// Основные возможности:
//   - Протокол load/save с защёлкой однократной гидратации дерева.
//   - Флаг saved/unsaved, отражающий изменения с последнего успешного сохранения.
//   - Порядок записи "сначала запись вопроса, затем документ": осиротевшая
//     запись допустима, нода без записи - нет.
//   - Переключение режимов Edit/View с принудительной перезагрузкой при входе
//     в просмотр.
package session

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor/mcqform"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor/slashmenu"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor/tiptap"
)

var ErrQuestionNodeNotFound = errors.New("question node not found in document")

// Mode - режим сессии.
type Mode int

const (
	ModeEdit Mode = iota
	ModeView
)

// Session владеет деревом документа. Все мутации дерева синхронны и проходят
// через путь обработки событий ввода; сетевые вызовы выполняются после
// мутации и не блокируют дальнейшее редактирование.
type Session struct {
	backend Backend
	schema  *editor.Schema

	doc      *editor.Document
	mode     Mode
	saved    bool
	hydrated bool // защёлка однократной загрузки

	submissions []Submission

	cursor  editor.Cursor
	menu    *slashmenu.Menu
	formula *slashmenu.FormulaInput
	router  *slashmenu.Router

	editForm  *mcqform.EditForm
	editingID string // id ноды, открытой в форме; пусто для новой
}

// New создаёт сессию редактирования с пустым документом до первой загрузки.
func New(backend Backend, schema *editor.Schema) *Session {
	s := &Session{
		backend: backend,
		schema:  schema,
		doc:     editor.NewDocument(),
		saved:   true,
	}

	s.menu = slashmenu.NewMenu(schema, slashmenu.DefaultItems(slashmenu.Hooks{
		OpenQuestionForm: func(_ context.Context, c *slashmenu.CommandContext) error {
			s.OpenQuestionEditorForNew()
			return nil
		},
		OpenFormulaInput: func(_ context.Context, c *slashmenu.CommandContext) error {
			s.formula.Open(c.Range)
			return nil
		},
	}))
	s.formula = slashmenu.NewFormulaInput(schema, latexConverter{backend})
	// Открытый формульный ввод перехватывает клавиши раньше меню
	s.router = slashmenu.NewRouter(s.formula, s.menu, baseEditor{s})
	return s
}

// latexConverter адаптирует Backend к контракту конвертера формул.
type latexConverter struct{ backend Backend }

func (lc latexConverter) EnglishToLatex(ctx context.Context, text string) (string, error) {
	return lc.backend.EnglishToLatex(ctx, text)
}

func (s *Session) Document() *editor.Document       { return s.doc }
func (s *Session) Schema() *editor.Schema           { return s.schema }
func (s *Session) Mode() Mode                       { return s.mode }
func (s *Session) Saved() bool                      { return s.saved }
func (s *Session) Menu() *slashmenu.Menu            { return s.menu }
func (s *Session) Formula() *slashmenu.FormulaInput { return s.formula }
func (s *Session) EditForm() *mcqform.EditForm      { return s.editForm }
func (s *Session) Submissions() []Submission        { return s.submissions }

// SetCursor задаёт позицию курсора для последующего ввода.
func (s *Session) SetCursor(c editor.Cursor) {
	s.cursor = c
	s.menu.SetCursor(c)
}

// Load загружает сохранённую страницу и гидратирует дерево ровно один раз
// за активацию сессии: повторный или конкурентный вызов не перетирает
// уже отредактированное дерево.
func (s *Session) Load(ctx context.Context) error {
	if s.hydrated {
		return nil
	}

	content, err := s.backend.GetLearningPage(ctx)
	if err != nil {
		return err
	}

	doc := editor.NewDocument()
	if strings.TrimSpace(content) != "" {
		doc, err = tiptap.ParseJSON(bytes.NewReader([]byte(content)), s.schema)
		if err != nil {
			// Нарушение схемы фатально: сессия не продолжает работу
			// с частично загруженным деревом
			return err
		}
	}

	s.doc = doc
	s.hydrated = true
	s.saved = true
	return nil
}

// Reload сбрасывает защёлку и загружает страницу заново.
func (s *Session) Reload(ctx context.Context) error {
	s.hydrated = false
	return s.Load(ctx)
}

// Save сериализует текущее дерево и безусловно перезаписывает сохранённую
// страницу: проверки конкуренции нет, последний вызвавший выигрывает.
// При ошибке дерево в памяти не меняется и флаг unsaved сохраняется.
func (s *Session) Save(ctx context.Context) error {
	data, err := tiptap.Serialize(s.doc, s.schema)
	if err != nil {
		return err
	}
	if err := s.backend.UpsertLearningPage(ctx, string(data)); err != nil {
		return err
	}
	s.saved = true
	return nil
}

// SetMode переключает режим. Вход в просмотр всегда загружает свежий
// снимок страницы и отправки: в памяти может быть другой документ.
// Переключение идемпотентно.
func (s *Session) SetMode(ctx context.Context, mode Mode) error {
	s.mode = mode
	if mode != ModeView {
		return nil
	}

	if err := s.Reload(ctx); err != nil {
		return err
	}
	submissions, err := s.backend.GetSubmissions(ctx)
	if err != nil {
		return err
	}
	s.submissions = submissions
	return nil
}

// HandleKey проводит событие клавиатуры через маршрутизатор ввода.
// В режиме просмотра дерево немутабельно и клавиатура игнорируется.
func (s *Session) HandleKey(ctx context.Context, k slashmenu.Key) (bool, error) {
	if s.mode != ModeEdit {
		return false, nil
	}
	before := s.doc.Clone()
	handled, err := s.router.Route(ctx, s.doc, k)
	if !s.doc.Eq(before) {
		s.markEdited()
	}
	return handled, err
}

func (s *Session) markEdited() {
	s.saved = false
}

// InsertQuestion вставляет новую ноду вопроса в конец документа со свежим
// идентификатором, затем последовательно пишет запись вопроса и документ.
// Порядок "запись, затем документ": осиротевшая запись допустима,
// сохранённая нода без записи - нет.
func (s *Session) InsertQuestion(ctx context.Context, attrs editor.QuestionAttrs) (editor.QuestionAttrs, error) {
	node := editor.NewQuestionNode(attrs)
	inserted, _ := editor.ReadQuestionAttrs(&node)

	s.doc.AppendQuestion(node)
	s.markEdited()

	if err := s.backend.UpsertQuestion(ctx, inserted); err != nil {
		return inserted, err
	}
	return inserted, s.Save(ctx)
}

// UpdateQuestion обновляет атрибуты существующей ноды на месте, сохраняя
// её идентификатор, и записывает запись вопроса перед документом.
func (s *Session) UpdateQuestion(ctx context.Context, id string, attrs editor.QuestionAttrs) error {
	if !s.doc.UpdateQuestionNode(id, attrs) {
		return ErrQuestionNodeNotFound
	}
	s.markEdited()

	attrs.ID = id
	if err := s.backend.UpsertQuestion(ctx, attrs); err != nil {
		return err
	}
	return s.Save(ctx)
}

// DeleteQuestion удаляет ноду из дерева синхронно и немедленно, затем
// выполняет два независимых вызова: удаление записи и пересохранение
// документа. Ошибки обоих вызовов возвращаются независимо, отката нет -
// это принятое best-effort ограничение, а не транзакционная гарантия.
func (s *Session) DeleteQuestion(ctx context.Context, id string) error {
	if !s.doc.RemoveQuestionNode(id) {
		return ErrQuestionNodeNotFound
	}
	s.markEdited()

	var deleteErr, saveErr error
	if err := s.backend.DeleteQuestion(ctx, id); err != nil {
		deleteErr = err
		slog.Error("Delete question record failed", "id", id, "err", err)
	}
	if err := s.Save(ctx); err != nil {
		saveErr = err
		slog.Error("Save learning page after question delete failed", "err", err)
	}
	return errors.Join(deleteErr, saveErr)
}

// OpenQuestionEditorForNew открывает пустую форму нового вопроса
// со значениями по умолчанию.
func (s *Session) OpenQuestionEditorForNew() {
	s.editForm = mcqform.NewEditForm(nil)
	s.editingID = ""
}

// OpenQuestionEditor открывает форму правки для существующей ноды вопроса,
// предзаполненную её текущими атрибутами.
func (s *Session) OpenQuestionEditor(id string) error {
	node := s.doc.FindQuestionNode(id)
	if node == nil {
		return ErrQuestionNodeNotFound
	}
	attrs, _ := editor.ReadQuestionAttrs(node)
	s.editForm = mcqform.NewEditForm(&attrs)
	s.editingID = id
	return nil
}

// SubmitQuestionForm завершает открытую форму вопроса: вставка новой ноды
// или обновление существующей - два различных явных пути.
func (s *Session) SubmitQuestionForm(ctx context.Context) (editor.QuestionAttrs, error) {
	if s.editForm == nil {
		return editor.QuestionAttrs{}, errors.New("question form is not open")
	}
	attrs, err := s.editForm.Submit()
	if err != nil {
		return editor.QuestionAttrs{}, err
	}

	defer s.closeQuestionForm()
	if s.editingID == "" {
		return s.InsertQuestion(ctx, attrs)
	}
	return attrs, s.UpdateQuestion(ctx, s.editingID, attrs)
}

// CancelQuestionForm закрывает форму, отбрасывая правки без мутации дерева.
func (s *Session) CancelQuestionForm() {
	if s.editForm != nil {
		s.editForm.Cancel()
	}
	s.closeQuestionForm()
}

func (s *Session) closeQuestionForm() {
	s.editForm = nil
	s.editingID = ""
}

// LearnerForm создаёт форму ученика для ноды вопроса.
func (s *Session) LearnerForm(id string) (*mcqform.LearnerForm, error) {
	node := s.doc.FindQuestionNode(id)
	if node == nil {
		return nil, ErrQuestionNodeNotFound
	}
	attrs, _ := editor.ReadQuestionAttrs(node)
	return mcqform.NewLearnerForm(attrs), nil
}

// SubmitAnswer отправляет ответ ученика через бэкенд сессии.
func (s *Session) SubmitAnswer(ctx context.Context, questionID string, selectedAnswer int) (bool, error) {
	return s.backend.SubmitAnswer(ctx, questionID, selectedAnswer)
}

// baseEditor - обработчик ввода нижнего уровня: прямой набор текста
// и структурные правки, когда ни один оверлей не заявил клавишу.
type baseEditor struct{ s *Session }

func (b baseEditor) HandleKey(_ context.Context, doc *editor.Document, k slashmenu.Key) (bool, error) {
	s := b.s
	switch {
	case k.Rune != 0:
		if err := doc.InsertTextAt(s.schema, s.cursor, string(k.Rune)); err != nil {
			return false, err
		}
		s.cursor.Offset += len(string(k.Rune))
		s.menu.SetCursor(s.cursor)
		return true, nil
	case k.Name == slashmenu.KeyBackspace:
		if s.cursor.Offset > 0 {
			block, err := doc.Block(s.cursor.Block)
			if err != nil {
				return false, err
			}
			// Смещения байтовые: стирается весь последний символ перед курсором
			prefix := block.PlainText()
			if s.cursor.Offset < len(prefix) {
				prefix = prefix[:s.cursor.Offset]
			}
			_, width := utf8.DecodeLastRuneInString(prefix)
			r := editor.Range{Block: s.cursor.Block, From: s.cursor.Offset - width, To: s.cursor.Offset}
			if err := doc.DeleteTextRange(s.schema, r); err != nil {
				return false, err
			}
			s.cursor.Offset -= width
			s.menu.SetCursor(s.cursor)
			return true, nil
		}
		// Backspace в начале блока: изолирующие границы блокируют слияние
		joined, err := doc.JoinBackward(s.schema, s.cursor.Block)
		if err != nil {
			return false, err
		}
		if joined {
			s.cursor.Block--
			s.menu.SetCursor(s.cursor)
		}
		return true, nil
	}
	return false, nil
}
