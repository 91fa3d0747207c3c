package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/apierrors"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/editor"
)

func TestClient(t *testing.T) {
	ctx := context.Background()

	var lastPath, lastMethod string
	var lastBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath = r.URL.Path
		lastMethod = r.Method
		lastBody = nil
		json.NewDecoder(r.Body).Decode(&lastBody)

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/learning_page/":
			json.NewEncoder(w).Encode(map[string]string{"content": "saved"})
		case "/api/multi_choice_question/submit":
			json.NewEncoder(w).Encode(map[string]any{"is_correct": true, "message": "Answer submitted successfully"})
		case "/api/english-to-latex/generate":
			json.NewEncoder(w).Encode(map[string]string{"latex": "x^2"})
		case "/api/multi_choice_question/submissions":
			json.NewEncoder(w).Encode([]map[string]any{{"question_id": "q1", "selected_answer": 1}})
		default:
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	t.Run("get learning page", func(t *testing.T) {
		content, err := c.GetLearningPage(ctx)
		require.NoError(t, err)
		assert.Equal(t, "saved", content)
		assert.Equal(t, http.MethodGet, lastMethod)
	})

	t.Run("upsert question payload", func(t *testing.T) {
		err := c.UpsertQuestion(ctx, editor.QuestionAttrs{
			ID:            "q1",
			Question:      "Pick",
			Options:       []string{"A", "B"},
			CorrectAnswer: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, "/api/multi_choice_question/upsert", lastPath)
		assert.Equal(t, "q1", lastBody["id"])
		assert.EqualValues(t, 1, lastBody["correct_answer"])
	})

	t.Run("upsert without id is rejected locally", func(t *testing.T) {
		before := lastPath
		err := c.UpsertQuestion(ctx, editor.QuestionAttrs{Question: "Pick"})
		assert.ErrorIs(t, err, apierrors.ErrQuestionIDRequired)
		assert.Equal(t, before, lastPath)
	})

	t.Run("submit answer", func(t *testing.T) {
		correct, err := c.SubmitAnswer(ctx, "q1", 1)
		require.NoError(t, err)
		assert.True(t, correct)
		assert.Equal(t, "q1", lastBody["question_id"])
	})

	t.Run("delete question escapes id in path", func(t *testing.T) {
		require.NoError(t, c.DeleteQuestion(ctx, "q1"))
		assert.Equal(t, http.MethodDelete, lastMethod)
		assert.Equal(t, "/api/multi_choice_question/delete/q1", lastPath)
	})

	t.Run("get submissions", func(t *testing.T) {
		subs, err := c.GetSubmissions(ctx)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, "q1", subs[0].QuestionID)
	})

	t.Run("english to latex", func(t *testing.T) {
		latex, err := c.EnglishToLatex(ctx, "x squared")
		require.NoError(t, err)
		assert.Equal(t, "x^2", latex)
	})
}

func TestClientErrorDecoding(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(apierrors.ErrQuestionNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.SubmitAnswer(ctx, "ghost", 0)

	var defined apierrors.DefinedError
	require.ErrorAs(t, err, &defined)
	assert.Equal(t, apierrors.ErrQuestionNotFound.Code, defined.Code)
	assert.Equal(t, http.StatusNotFound, defined.StatusCode)
}
