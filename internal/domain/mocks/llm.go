package mocks

import (
	"context"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
)

// LLM is a mock implementation of ports.LLMClient. Responses maps slug to
// the drafted replacement body; slugs without an entry echo the current
// body back unchanged.
type LLM struct {
	Responses map[string]string
	Err       error
	Calls     []string
}

// NewLLM creates a new mock LLM.
func NewLLM() *LLM {
	return &LLM{
		Responses: make(map[string]string),
	}
}

// ReviseArticle returns the canned response for the article's slug.
func (m *LLM) ReviseArticle(_ context.Context, article entities.ArticleMeta, current, _ string) (string, error) {
	m.Calls = append(m.Calls, article.Slug)
	if m.Err != nil {
		return "", m.Err
	}
	if revised, ok := m.Responses[article.Slug]; ok {
		return revised, nil
	}
	return current, nil
}
