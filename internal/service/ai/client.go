package ai

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/safarly/backend/internal/config"
)

// Turn is one prior exchange forwarded upstream for context.
type Turn struct {
	Role string `json:"role"` // "user" or "agent"
	Text string `json:"text"`
}

// Request carries everything the upstream model needs for one reply.
type Request struct {
	Credential       string
	Message          string
	PersonaName      string
	PersonaLocalName string
	Language         string
	History          []Turn
}

// Client talks to the generative-language model. Failures never escape as
// errors: every failure path degrades to a localized apology string, so the
// chat transcript only ever sees text.
type Client struct {
	cfg    config.AIConfig
	window int

	mu     sync.Mutex
	chains map[string]compose.Runnable[map[string]any, *schema.Message]
}

// NewClient builds a gateway client. historyWindow bounds the prior turns
// forwarded with each request.
func NewClient(cfg config.AIConfig, historyWindow int) *Client {
	if historyWindow < 1 {
		historyWindow = 1
	}
	return &Client{
		cfg:    cfg,
		window: historyWindow,
		chains: make(map[string]compose.Runnable[map[string]any, *schema.Message]),
	}
}

// Reply produces the agent's answer to a user message. On any failure the
// localized apology is returned instead of an error.
func (c *Client) Reply(ctx context.Context, req Request) string {
	runnable, err := c.chain(ctx, req.Credential)
	if err != nil {
		log.Printf("[ai] model unavailable: %v", err)
		return Apology(req.Language)
	}

	input := map[string]any{
		"system":  systemPrompt(req),
		"history": historyMessages(req.History, c.window),
		"query":   req.Message,
	}

	response, err := runnable.Invoke(ctx, input)
	if err != nil {
		log.Printf("[ai] generation failed for persona=%s: %v", req.PersonaName, err)
		return Apology(req.Language)
	}
	if response == nil || response.Content == "" {
		log.Printf("[ai] empty response for persona=%s", req.PersonaName)
		return Apology(req.Language)
	}

	return response.Content
}

// Validate confirms a credential can reach the upstream model. It compiles a
// chain for the credential and invokes a one-line probe.
func (c *Client) Validate(ctx context.Context, credential string) error {
	runnable, err := c.chain(ctx, credential)
	if err != nil {
		return err
	}

	input := map[string]any{
		"system":  "Reply with the single word OK.",
		"history": []*schema.Message(nil),
		"query":   "ping",
	}
	if _, err := runnable.Invoke(ctx, input); err != nil {
		c.evict(credential)
		return fmt.Errorf("credential probe failed: %w", err)
	}
	return nil
}

// chain returns the compiled pipeline for a credential, building and caching
// it on first use.
func (c *Client) chain(ctx context.Context, credential string) (compose.Runnable[map[string]any, *schema.Message], error) {
	c.mu.Lock()
	if runnable, ok := c.chains[credential]; ok {
		c.mu.Unlock()
		return runnable, nil
	}
	c.mu.Unlock()

	chatModel, err := c.cfg.NewChatModel(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	c.mu.Lock()
	c.chains[credential] = runnable
	c.mu.Unlock()
	return runnable, nil
}

func (c *Client) evict(credential string) {
	c.mu.Lock()
	delete(c.chains, credential)
	c.mu.Unlock()
}

// historyMessages converts the trailing window of turns into model messages.
func historyMessages(history []Turn, window int) []*schema.Message {
	if len(history) == 0 {
		return nil
	}

	start := 0
	if len(history) > window {
		start = len(history) - window
	}

	out := make([]*schema.Message, 0, len(history)-start)
	for _, turn := range history[start:] {
		switch turn.Role {
		case "user":
			out = append(out, schema.UserMessage(turn.Text))
		case "agent", "assistant":
			out = append(out, schema.AssistantMessage(turn.Text, nil))
		}
	}
	return out
}
