// Пакет client - HTTP-клиент сервера учебной страницы.
// Реализует контракт бэкенда сессии поверх REST API сервера
// с повторами запросов при временных сбоях.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/apierrors"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/session"
)

// Client выполняет запросы к серверу учебной страницы.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ session.Backend = (*Client)(nil)

// NewClient создаёт клиент с повторами до 5 раз при временных сбоях сети.
func NewClient(baseURL string) *Client {
	cl := retryablehttp.NewClient()
	cl.RetryMax = 5
	cl.RetryWaitMin = time.Second
	cl.Logger = slog.Default()

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    cl.StandardClient(),
	}
}

type learningPageResponse struct {
	Content string `json:"content"`
}

type upsertPageRequest struct {
	Content string `json:"content"`
}

type upsertQuestionRequest struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

type submitAnswerRequest struct {
	QuestionID     string `json:"question_id"`
	SelectedAnswer int    `json:"selected_answer"`
}

type submitAnswerResponse struct {
	IsCorrect bool   `json:"is_correct"`
	Message   string `json:"message"`
}

type latexRequest struct {
	Text string `json:"text"`
}

type latexResponse struct {
	Latex string `json:"latex"`
}

// GetLearningPage возвращает сериализованное дерево документа.
// Пустая строка означает, что страница ещё не сохранялась.
func (c *Client) GetLearningPage(ctx context.Context) (string, error) {
	var resp learningPageResponse
	if err := c.do(ctx, http.MethodGet, "/api/learning_page/", nil, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}

// UpsertLearningPage полностью перезаписывает сохранённую страницу.
func (c *Client) UpsertLearningPage(ctx context.Context, content string) error {
	return c.do(ctx, http.MethodPost, "/api/learning_page/upsert", upsertPageRequest{Content: content}, nil)
}

// UpsertQuestion создаёт или обновляет запись вопроса. Идентификатор
// назначается клиентом при создании ноды, поэтому запрос без него отклоняется
// до сетевого вызова.
func (c *Client) UpsertQuestion(ctx context.Context, q editor.QuestionAttrs) error {
	if q.ID == "" {
		return apierrors.ErrQuestionIDRequired
	}
	return c.do(ctx, http.MethodPost, "/api/multi_choice_question/upsert", upsertQuestionRequest{
		ID:            q.ID,
		Question:      q.Question,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
	}, nil)
}

// DeleteQuestion удаляет запись вопроса.
func (c *Client) DeleteQuestion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/multi_choice_question/delete/"+url.PathEscape(id), nil, nil)
}

// SubmitAnswer отправляет ответ ученика и возвращает вердикт сервера.
func (c *Client) SubmitAnswer(ctx context.Context, questionID string, selectedAnswer int) (bool, error) {
	var resp submitAnswerResponse
	err := c.do(ctx, http.MethodPost, "/api/multi_choice_question/submit", submitAnswerRequest{
		QuestionID:     questionID,
		SelectedAnswer: selectedAnswer,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.IsCorrect, nil
}

// GetSubmissions возвращает сохранённые отправки ответов.
func (c *Client) GetSubmissions(ctx context.Context) ([]session.Submission, error) {
	var resp []session.Submission
	if err := c.do(ctx, http.MethodGet, "/api/multi_choice_question/submissions", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// EnglishToLatex преобразует английский текст в LaTeX-разметку.
func (c *Client) EnglishToLatex(ctx context.Context, text string) (string, error) {
	var resp latexResponse
	if err := c.do(ctx, http.MethodPost, "/api/english-to-latex/generate", latexRequest{Text: text}, &resp); err != nil {
		return "", err
	}
	return resp.Latex, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apierrors.ErrBackendUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var defined apierrors.DefinedError
	if err := json.Unmarshal(data, &defined); err == nil && defined.Code != 0 {
		defined.StatusCode = resp.StatusCode
		return defined
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(data))
}
