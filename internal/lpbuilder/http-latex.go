// Обработчик генерации LaTeX-разметки из английского текста.
package lpbuilder

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/apierrors"
)

func (s *Services) AddLatexServices(g *echo.Group) {
	latexGroup := g.Group("english-to-latex")
	latexGroup.POST("/generate/", s.generateLatex)
}

type latexRequest struct {
	Text string `json:"text" validate:"required"`
}

type latexResponse struct {
	Latex string `json:"latex"`
}

// generateLatex godoc
// @Summary LaTeX: генерация разметки из английского текста
// @Description Преобразует английское описание формулы в LaTeX через языковую модель.
// @Tags Latex
// @Accept json
// @Produce json
// @Param data body latexRequest true "Английский текст"
// @Success 200 {object} latexResponse
// @Failure 502 {object} apierrors.DefinedError "Генерация не удалась"
// @Router /api/english-to-latex/generate/ [post]
func (s *Services) generateLatex(c echo.Context) error {
	var req latexRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if strings.TrimSpace(req.Text) == "" {
		return EErrorDefined(c, apierrors.ErrFormulaTextRequired)
	}

	latex, err := s.latex.EnglishToLatex(c.Request().Context(), req.Text)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, latexResponse{Latex: latex})
}
