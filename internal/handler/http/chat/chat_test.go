package chat_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"globalpulse/internal/domain/entity"
	"globalpulse/internal/handler/http/chat"
	"globalpulse/internal/repository"
	chatUC "globalpulse/internal/usecase/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── test doubles ───────── */

type stubRepo struct {
	recent    []*entity.Article
	recentErr error
}

func (s *stubRepo) UpsertBatch(_ context.Context, _ []*entity.Article) (repository.UpsertResult, error) {
	return repository.UpsertResult{}, nil
}

func (s *stubRepo) List(_ context.Context, _ repository.ArticleFilters) ([]*entity.Article, error) {
	return nil, nil
}

func (s *stubRepo) Get(_ context.Context, _ int64) (*entity.Article, error) {
	return nil, nil
}

func (s *stubRepo) Recent(_ context.Context, _ int) ([]*entity.Article, error) {
	return s.recent, s.recentErr
}

func (s *stubRepo) CountArticles(_ context.Context) (int64, error) {
	return 0, nil
}

func (s *stubRepo) ExistsByURLBatch(_ context.Context, urls []string) (map[string]bool, error) {
	result := make(map[string]bool, len(urls))
	for _, u := range urls {
		result[u] = false
	}
	return result, nil
}

type stubCompleter struct {
	gotSystemPrompt string
	reply           string
	err             error
}

func (s *stubCompleter) Complete(_ context.Context, systemPrompt, _ string) (string, error) {
	s.gotSystemPrompt = systemPrompt
	return s.reply, s.err
}

func newMux(repo *stubRepo, completer *stubCompleter) *http.ServeMux {
	mux := http.NewServeMux()
	svc := &chatUC.Service{Repo: repo, Completer: completer}
	chat.Register(mux, svc, slog.Default())
	return mux
}

func postChat(mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)
	return rec
}

/* ───────── POST /api/ai/chat ───────── */

func TestHandler_OK(t *testing.T) {
	repo := &stubRepo{recent: []*entity.Article{{
		Title:       "Floods displace thousands",
		Summary:     "Relief efforts are under way.",
		URL:         "https://news.example.com/floods",
		Source:      "Example Wire",
		Category:    entity.CategoryWorld,
		Language:    entity.LanguageEnglish,
		PublishedAt: time.Now(),
	}}}
	completer := &stubCompleter{reply: "Severe floods dominated today's coverage."}
	mux := newMux(repo, completer)

	rec := postChat(mux, `{"message":"What happened today?","language":"en"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got chat.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Severe floods dominated today's coverage.", got.Response)
	assert.Contains(t, completer.gotSystemPrompt, "Floods displace thousands")
}

func TestHandler_ArabicLanguageSelectsArabicPrompt(t *testing.T) {
	completer := &stubCompleter{reply: "ok"}
	mux := newMux(&stubRepo{}, completer)

	rec := postChat(mux, `{"message":"ما آخر الأخبار؟","language":"ar"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, completer.gotSystemPrompt, "باللغة العربية")
}

func TestHandler_MalformedBody(t *testing.T) {
	mux := newMux(&stubRepo{}, &stubCompleter{})

	rec := postChat(mux, `{"message":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_EmptyMessage(t *testing.T) {
	mux := newMux(&stubRepo{}, &stubCompleter{})

	rec := postChat(mux, `{"message":"   ","language":"en"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot be empty")
}

func TestHandler_MessageTooLong(t *testing.T) {
	mux := newMux(&stubRepo{}, &stubCompleter{})

	rec := postChat(mux, `{"message":"`+strings.Repeat("x", 4001)+`","language":"en"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CompleterFailureMasked(t *testing.T) {
	mux := newMux(&stubRepo{}, &stubCompleter{err: errors.New("openai api error: sk-abcdefghij1234 unauthorized")})

	rec := postChat(mux, `{"message":"hello","language":"en"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), "sk-abcdefghij1234")
}

func TestHandler_RepositoryFailure(t *testing.T) {
	mux := newMux(&stubRepo{recentErr: errors.New("connection refused")}, &stubCompleter{})

	rec := postChat(mux, `{"message":"hello","language":"en"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	mux := newMux(&stubRepo{}, &stubCompleter{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ai/chat", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
