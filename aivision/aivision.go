// Package aivision proposes takeoff data from page rasters using an
// OpenAI-compatible vision model. It implements the scanner's Vision
// contract: each flagged page is sent as an image with a page-type
// specific prompt, the model answers in JSON, and the response is
// validated against a schema before being mapped into the same
// partial-result shape the synchronous parsers produce.
package aivision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	takeoff "github.com/Clayne666/framing-takeoff-toolkit-sub000"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
)

// Config controls the vision client.
type Config struct {
	APIKey  string
	BaseURL string // optional, for OpenAI-compatible gateways

	// Model is the vision-capable chat model. Default "gpt-4o".
	Model string

	// MaxAttempts bounds retries around each page's request. Default 3.
	MaxAttempts int

	// RetryDelay is the base backoff delay. Default 2s.
	RetryDelay time.Duration

	// Detail is the image detail level ("low", "high", "auto").
	// Default "high"; schedule tables need the resolution.
	Detail string
}

// Client calls a vision model and maps its JSON answers to partial
// results. It is safe for concurrent use.
type Client struct {
	api    openai.Client
	model  string
	detail string

	attempts uint
	delay    time.Duration
}

var _ takeoff.Vision = (*Client)(nil)

// New creates a vision client. Zero config fields take their defaults.
func New(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Detail == "" {
		cfg.Detail = "high"
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		api:      openai.NewClient(opts...),
		model:    cfg.Model,
		detail:   cfg.Detail,
		attempts: uint(cfg.MaxAttempts),
		delay:    cfg.RetryDelay,
	}
}

// Propose sends one page to the model and returns its proposed takeoff
// data. The raw model text goes through fence stripping and candidate
// extraction before schema validation, so prose-wrapped JSON still
// parses.
func (c *Client) Propose(ctx context.Context, req takeoff.VisionRequest) (model.PartialResult, error) {
	prompt := promptFor(req.PageType)
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(req.ImagePNG)

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(prompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    dataURL,
			Detail: c.detail,
		}),
	}
	if req.SupplementaryText != "" {
		parts = append(parts, openai.TextContentPart(
			"Text extracted from this page's text layer, for cross-reference:\n\n"+req.SupplementaryText))
	}

	var content string
	err := retry.Do(
		func() error {
			completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
				Model:       openai.ChatModel(c.model),
				Temperature: openai.Float(0),
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.SystemMessage(systemPrompt),
					openai.UserMessage(parts),
				},
			})
			if err != nil {
				return err
			}
			if len(completion.Choices) == 0 {
				return fmt.Errorf("model returned no choices")
			}
			content = completion.Choices[0].Message.Content
			return nil
		},
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return model.PartialResult{}, fmt.Errorf("vision request for page %d: %w", req.Page, err)
	}

	return decodeResponse(content, req.Page)
}

// decodeResponse parses, validates, and maps one model answer.
func decodeResponse(content string, page int) (model.PartialResult, error) {
	raw, err := extractJSON(content)
	if err != nil {
		return model.PartialResult{}, fmt.Errorf("page %d: %w", page, err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return model.PartialResult{}, fmt.Errorf("page %d: decoding response: %w", page, err)
	}
	if err := responseSchema.Validate(generic); err != nil {
		return model.PartialResult{}, fmt.Errorf("page %d: response failed validation: %w", page, err)
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.PartialResult{}, fmt.Errorf("page %d: decoding response: %w", page, err)
	}
	return p.toPartial(page), nil
}
