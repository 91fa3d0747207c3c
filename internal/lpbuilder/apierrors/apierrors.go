// Пакет содержит определения ошибок, используемых приложением для обработки
// ситуаций, возникающих при валидации форм, десериализации документа и работе
// с хранилищем вопросов. Каждая ошибка имеет код, статус HTTP и описание, что
// позволяет удобно обрабатывать исключения и предоставлять информативные
// сообщения пользователю.
//
// Основные возможности:
//   - Ошибки валидации (1***): блокируют действие локально, без сетевого вызова.
//   - Ошибки схемы документа (2***): фатальны для загрузки страницы.
//   - Ошибки хранилища (3***): не фатальны, состояние в памяти сохраняется для повтора.
package apierrors

import (
	"fmt"
	"net/http"
)

type DefinedError struct {
	Code       int    `json:"code"`
	StatusCode int    `json:"-"`
	Err        string `json:"error"`
	RuErr      string `json:"ru_error,omitempty"`
}

func (e DefinedError) Error() string {
	return e.Err
}

// WithFormat возвращает копию ошибки с подставленными аргументами сообщения.
func (e DefinedError) WithFormat(args ...any) DefinedError {
	e.Err = fmt.Sprintf(e.Err, args...)
	if e.RuErr != "" {
		e.RuErr = fmt.Sprintf(e.RuErr, args...)
	}
	return e
}

var (
	ErrGeneric = DefinedError{Code: 1, StatusCode: http.StatusBadRequest, Err: "bad request", RuErr: "Некорректный запрос"}

	// 1*** - validation errors
	ErrQuestionTextRequired    = DefinedError{Code: 1001, StatusCode: http.StatusBadRequest, Err: "question text is required", RuErr: "Текст вопроса не может быть пустым"}
	ErrQuestionIDRequired      = DefinedError{Code: 1002, StatusCode: http.StatusBadRequest, Err: "question id and correct answer are required", RuErr: "Идентификатор вопроса и правильный ответ обязательны"}
	ErrNoOptionSelected        = DefinedError{Code: 1003, StatusCode: http.StatusBadRequest, Err: "please select an option before submitting", RuErr: "Выберите вариант ответа перед отправкой"}
	ErrCorrectAnswerOutOfRange = DefinedError{Code: 1004, StatusCode: http.StatusBadRequest, Err: "correct answer index is out of options range", RuErr: "Индекс правильного ответа выходит за пределы вариантов"}
	ErrNotEnoughOptions        = DefinedError{Code: 1005, StatusCode: http.StatusBadRequest, Err: "question must have at least one non-empty option", RuErr: "Вопрос должен иметь хотя бы один непустой вариант ответа"}
	ErrFormulaTextRequired     = DefinedError{Code: 1006, StatusCode: http.StatusBadRequest, Err: "formula text is required", RuErr: "Текст формулы не может быть пустым"}

	// 2*** - document schema errors
	ErrDocumentSchema     = DefinedError{Code: 2001, StatusCode: http.StatusUnprocessableEntity, Err: "learning page content violates document schema: %s", RuErr: "Содержимое страницы нарушает схему документа: %s"}
	ErrPageContentInvalid = DefinedError{Code: 2002, StatusCode: http.StatusUnprocessableEntity, Err: "learning page content is not valid document json", RuErr: "Содержимое страницы не является корректным JSON документа"}

	// 3*** - store errors
	ErrQuestionNotFound   = DefinedError{Code: 3001, StatusCode: http.StatusNotFound, Err: "question not found", RuErr: "Вопрос не найден"}
	ErrBackendUnavailable = DefinedError{Code: 3002, StatusCode: http.StatusServiceUnavailable, Err: "backend is unavailable, try again", RuErr: "Сервер недоступен, попробуйте ещё раз"}
	ErrLatexGeneration    = DefinedError{Code: 3003, StatusCode: http.StatusBadGateway, Err: "latex generation failed", RuErr: "Не удалось сгенерировать формулу"}
)
