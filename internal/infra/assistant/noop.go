package assistant

import (
	"context"
	"strings"
)

// noopReply is returned when no assistant provider is configured.
const noopReply = "The AI assistant is not configured. Set ASSISTANT_PROVIDER to enable it."

// NoOp is a completer that returns a fixed reply without calling any provider.
// This is useful for development and deployments without an API key.
type NoOp struct{}

// NewNoOp creates a new NoOp completer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Complete returns a canned reply. Arabic requests detected in the system
// prompt get an Arabic variant so the response language stays consistent.
func (n *NoOp) Complete(_ context.Context, systemPrompt, _ string) (string, error) {
	if strings.Contains(systemPrompt, "العربية") {
		return "مساعد الذكاء الاصطناعي غير مفعل حاليا.", nil
	}
	return noopReply, nil
}
