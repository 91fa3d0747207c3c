// DAO (Data Access Object) - предоставляет интерфейс для взаимодействия
// с базой данных учебной страницы.
//
// Основные возможности:
//   - Хранение единственной учебной страницы как непрозрачного блоба документа.
//   - CRUD записей вопросов, связанных с нодами документа по идентификатору.
//   - Хранение последней отправки ответа по каждому вопросу.
package dao

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringArray - последовательность строк, хранимая как JSON.
// Работает одинаково в PostgreSQL (jsonb) и во встраиваемой SQLite тестов.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		a = StringArray{}
	}
	return json.Marshal(a)
}

func (a *StringArray) Scan(value any) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New(fmt.Sprint("failed to unmarshal string array value:", value))
	}
	return json.Unmarshal(data, a)
}

// LearningPage - единственная сохранённая учебная страница. Content хранит
// сериализованное дерево документа целиком; каждое сохранение полностью
// перезаписывает его (последняя запись выигрывает, слияния нет).
type LearningPage struct {
	ID        int       `json:"-" gorm:"primaryKey"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"-"`
}

func (LearningPage) TableName() string { return "learning_pages" }

// Question - каноническая копия вопроса, на которую нода документа
// ссылается по идентификатору. Удаление ноды само по себе не удаляет
// запись: приложение выполняет явное удаление.
type Question struct {
	ID            string      `json:"id" gorm:"column:id;primaryKey"`
	Question      string      `json:"question" validate:"required"`
	Options       StringArray `json:"options"`
	CorrectAnswer int         `json:"correct_answer" validate:"gte=0"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Question) TableName() string { return "questions" }

// Submission - последняя отправка ответа по вопросу. IsCorrect вычисляется
// на сервере сравнением с CorrectAnswer записи; клиент её не изменяет.
type Submission struct {
	QuestionID     string    `json:"question_id" gorm:"primaryKey"`
	SelectedAnswer int       `json:"selected_answer"`
	IsCorrect      bool      `json:"is_correct"`
	Timestamp      time.Time `json:"timestamp"`
}

func (Submission) TableName() string { return "submissions" }

// GetLearningPage возвращает сохранённую страницу или пустую, если
// страница ещё не создавалась.
func GetLearningPage(db *gorm.DB) (LearningPage, error) {
	var page LearningPage
	if err := db.First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LearningPage{}, nil
		}
		return LearningPage{}, err
	}
	return page, nil
}

// UpsertLearningPage создаёт страницу при первом сохранении и полностью
// перезаписывает её содержимое при последующих.
func UpsertLearningPage(db *gorm.DB, content string) error {
	var page LearningPage
	err := db.First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&LearningPage{Content: content}).Error
	}
	if err != nil {
		return err
	}
	page.Content = content
	return db.Save(&page).Error
}
