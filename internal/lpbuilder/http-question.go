// Обработчики записей вопросов: upsert, удаление, проверка ответов
// и чтение отправок. Идентификатор вопроса назначается клиентом при
// создании ноды документа; запись вопроса живёт отдельно от документа,
// и удаление ноды само по себе не трогает запись.
package lpbuilder

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/apierrors"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/dao"
)

func (s *Services) AddQuestionServices(g *echo.Group) {
	questionGroup := g.Group("multi_choice_question")
	questionGroup.POST("/upsert/", s.upsertQuestion)
	questionGroup.POST("/submit/", s.submitAnswer)
	questionGroup.DELETE("/delete/:questionId/", s.deleteQuestion)
	questionGroup.GET("/submissions/", s.getSubmissions)
}

type upsertQuestionRequest struct {
	ID            string   `json:"id" validate:"required"`
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"questionOptions"`
	CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
}

type submitAnswerRequest struct {
	QuestionID     string `json:"question_id" validate:"required"`
	SelectedAnswer int    `json:"selected_answer" validate:"gte=0"`
}

type submitAnswerResponse struct {
	Message   string `json:"message"`
	IsCorrect bool   `json:"is_correct"`
}

// upsertQuestion godoc
// @Summary Вопросы: создание или обновление записи вопроса
// @Description Создаёт запись при первом сохранении и полностью перезаписывает её при последующих. Идентификатор назначается клиентом.
// @Tags Question
// @Accept json
// @Produce json
// @Param data body upsertQuestionRequest true "Вопрос"
// @Success 200 {object} messageResponse
// @Failure 400 {object} apierrors.DefinedError
// @Router /api/multi_choice_question/upsert/ [post]
func (s *Services) upsertQuestion(c echo.Context) error {
	var req upsertQuestionRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		if req.ID == "" || req.Question == "" {
			return EErrorDefined(c, apierrors.ErrQuestionIDRequired)
		}
		if req.CorrectAnswer < 0 {
			return EErrorDefined(c, apierrors.ErrCorrectAnswerOutOfRange)
		}
		return EErrorDefined(c, apierrors.ErrNotEnoughOptions)
	}
	if req.CorrectAnswer >= len(req.Options) {
		return EErrorDefined(c, apierrors.ErrCorrectAnswerOutOfRange)
	}

	question := dao.Question{
		ID:            req.ID,
		Question:      req.Question,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
	}

	var message string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing dao.Question
		err := tx.Where("id = ?", req.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			message = "Multi-choice question created successfully"
			return tx.Create(&question).Error
		}
		if err != nil {
			return err
		}
		message = "Multi-choice question updated successfully"
		return tx.Model(&existing).Updates(map[string]any{
			"question":       question.Question,
			"options":        question.Options,
			"correct_answer": question.CorrectAnswer,
		}).Error
	})
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: message})
}

// submitAnswer godoc
// @Summary Вопросы: проверка ответа ученика
// @Description Сравнивает выбранный вариант с правильным ответом записи и сохраняет последнюю отправку по вопросу.
// @Tags Question
// @Accept json
// @Produce json
// @Param data body submitAnswerRequest true "Отправка ответа"
// @Success 200 {object} submitAnswerResponse
// @Failure 404 {object} apierrors.DefinedError "Вопрос не найден"
// @Router /api/multi_choice_question/submit/ [post]
func (s *Services) submitAnswer(c echo.Context) error {
	var req submitAnswerRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EError(c, err)
	}

	var question dao.Question
	if err := s.db.Where("id = ?", req.QuestionID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrQuestionNotFound)
		}
		return EError(c, err)
	}

	isCorrect := question.CorrectAnswer == req.SelectedAnswer

	submission := dao.Submission{
		QuestionID:     req.QuestionID,
		SelectedAnswer: req.SelectedAnswer,
		IsCorrect:      isCorrect,
		Timestamp:      time.Now(),
	}
	// По каждому вопросу хранится только последняя отправка
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "question_id"}},
		UpdateAll: true,
	}).Create(&submission).Error; err != nil {
		return EError(c, err)
	}

	return c.JSON(http.StatusOK, submitAnswerResponse{
		Message:   "Answer submitted successfully",
		IsCorrect: isCorrect,
	})
}

// deleteQuestion godoc
// @Summary Вопросы: удаление записи вопроса
// @Tags Question
// @Produce json
// @Param questionId path string true "Идентификатор вопроса"
// @Success 200 {object} messageResponse
// @Failure 404 {object} apierrors.DefinedError "Вопрос не найден"
// @Router /api/multi_choice_question/delete/{questionId}/ [delete]
func (s *Services) deleteQuestion(c echo.Context) error {
	id := c.Param("questionId")

	res := s.db.Where("id = ?", id).Delete(&dao.Question{})
	if res.Error != nil {
		return EError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return EErrorDefined(c, apierrors.ErrQuestionNotFound)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Multi-choice question deleted successfully"})
}

// getSubmissions godoc
// @Summary Вопросы: получение сохранённых отправок
// @Description Возвращает последнюю отправку по каждому вопросу.
// @Tags Question
// @Produce json
// @Success 200 {array} dao.Submission
// @Router /api/multi_choice_question/submissions/ [get]
func (s *Services) getSubmissions(c echo.Context) error {
	var submissions []dao.Submission
	if err := s.db.Find(&submissions).Error; err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, submissions)
}
