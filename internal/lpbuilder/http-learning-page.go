// Обработчики учебной страницы: чтение и полная перезапись сохранённого
// документа. Страница одна, слияния нет - последнее сохранение выигрывает.
package lpbuilder

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/apierrors"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/dao"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor/tiptap"
)

func (s *Services) AddLearningPageServices(g *echo.Group) {
	pageGroup := g.Group("learning_page")
	pageGroup.GET("/", s.getLearningPage)
	pageGroup.POST("/upsert/", s.upsertLearningPage)
}

type learningPageRequest struct {
	Content string `json:"content"`
}

type learningPageResponse struct {
	Content string `json:"content"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// getLearningPage godoc
// @Summary Страница: получение сохранённой учебной страницы
// @Description Возвращает сериализованное дерево документа. Пустое содержимое означает, что страница ещё не сохранялась.
// @Tags LearningPage
// @Produce json
// @Success 200 {object} learningPageResponse
// @Router /api/learning_page/ [get]
func (s *Services) getLearningPage(c echo.Context) error {
	page, err := dao.GetLearningPage(s.db)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, learningPageResponse{Content: page.Content})
}

// upsertLearningPage godoc
// @Summary Страница: полная перезапись учебной страницы
// @Description Перезаписывает сохранённый документ целиком. Содержимое проверяется на соответствие схеме документа перед записью.
// @Tags LearningPage
// @Accept json
// @Produce json
// @Param data body learningPageRequest true "Сериализованное дерево документа"
// @Success 200 {object} messageResponse
// @Failure 422 {object} apierrors.DefinedError "Содержимое нарушает схему документа"
// @Router /api/learning_page/upsert/ [post]
func (s *Services) upsertLearningPage(c echo.Context) error {
	var req learningPageRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}

	if strings.TrimSpace(req.Content) != "" {
		if _, err := tiptap.ParseJSON(strings.NewReader(req.Content), editor.DefaultSchema()); err != nil {
			var schemaErr *editor.SchemaError
			if errors.As(err, &schemaErr) {
				return EErrorDefined(c, apierrors.ErrDocumentSchema.WithFormat(schemaErr.Reason))
			}
			return EErrorDefined(c, apierrors.ErrPageContentInvalid)
		}
	}

	if err := dao.UpsertLearningPage(s.db, req.Content); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Learning page created/updated successfully"})
}
