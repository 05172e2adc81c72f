// Package chat provides the AI news assistant use case. It grounds each
// reply in the most recently published articles and answers in the
// requested language.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"globalpulse/internal/repository"
)

// recentArticleCount is how many articles are folded into the prompt context.
const recentArticleCount = 10

// maxMessageLength caps the user message size.
const maxMessageLength = 4000

// Sentinel errors for chat use case operations.
var (
	// ErrEmptyMessage indicates the user submitted a blank message.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrMessageTooLong indicates the user message exceeds the length cap.
	ErrMessageTooLong = errors.New("message too long")
)

// Completer generates a reply to a user message under a given system prompt.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Service answers user questions about current news.
// It builds a context block from recent articles and delegates the
// completion to the configured provider.
type Service struct {
	Repo      repository.ArticleRepository
	Completer Completer
}

// Ask generates an assistant reply for the given message.
// The language tag selects the system prompt: "ar" produces Arabic replies,
// anything else English. Recent article headlines are injected as context so
// the assistant can ground its answers in current news.
func (s *Service) Ask(ctx context.Context, message, language string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if len(message) > maxMessageLength {
		return "", fmt.Errorf("%w: %d bytes", ErrMessageTooLong, len(message))
	}

	recent, err := s.Repo.Recent(ctx, recentArticleCount)
	if err != nil {
		return "", fmt.Errorf("load recent articles: %w", err)
	}

	var b strings.Builder
	for _, a := range recent {
		fmt.Fprintf(&b, "- %s: %s\n", a.Title, a.Summary)
	}
	context := strings.TrimRight(b.String(), "\n")

	reply, err := s.Completer.Complete(ctx, systemPrompt(language, context), message)
	if err != nil {
		return "", fmt.Errorf("assistant completion: %w", err)
	}
	return reply, nil
}

// systemPrompt returns the language-appropriate instruction block with the
// article context appended.
func systemPrompt(language, context string) string {
	if language == "ar" {
		return "أنت مساعد أخبار ذكي لمنصة Global Pulse. استخدم السياق التالي للإجابة على أسئلة المستخدم حول الأخبار الحالية باللغة العربية. كن محترفاً ومختصراً.\n\nالسياق:\n" + context
	}
	return "You are a smart news assistant for Global Pulse. Use the following context to answer user questions about current news. Be professional and concise.\n\nContext:\n" + context
}
