// Package openai provides an LLMClient implementation using OpenAI.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
	"github.com/ersonp/campaign-memory/internal/infrastructure/config"
)

const revisionPrompt = `You are the keeper of a tabletop campaign's knowledge base. You maintain one article at a time.

You will receive the article's current content and a digest of the latest game session. Rewrite the article so it incorporates every fact from the digest that belongs in it, following these rules:

- Keep the article's existing structure and headings.
- Preserve all existing content unless the digest contradicts it; in that case, correct it.
- Only add facts that fit this article's scope. Ignore the rest of the digest.
- Record events in past tense and keep entries concise.
- Do not invent details that appear in neither the article nor the digest.

If nothing in the digest belongs in this article, return the article completely unchanged.

Return ONLY the full markdown body of the article, no commentary.`

// Client implements the LLMClient interface using OpenAI.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI LLM client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	client := openai.NewClient(cfg.APIKey)

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// ReviseArticle drafts a replacement body for the article incorporating the
// session digest. The returned body equals the current one when the digest
// holds nothing relevant.
func (c *Client) ReviseArticle(ctx context.Context, article entities.ArticleMeta, current, digest string) (string, error) {
	user := fmt.Sprintf("Article: %s\nScope: %s\n\n--- CURRENT CONTENT ---\n%s\n\n--- SESSION DIGEST ---\n%s",
		article.Title, article.Description, current, digest)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: revisionPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	return cleanMarkdownResponse(resp.Choices[0].Message.Content), nil
}

// cleanMarkdownResponse removes a wrapping code fence if present.
func cleanMarkdownResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```markdown") {
		content = strings.TrimPrefix(content, "```markdown")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```md") {
		content = strings.TrimPrefix(content, "```md")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
