package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const defaultTimeout = 2 * time.Minute

type Config struct {
	BaseURL        string
	Model          string
	Temperature    float64
	APIKeyRef      string
	MaxRetries     int
	RequestTimeout time.Duration
}

// Client asks an OpenAI compatible chat completions endpoint for every
// judgment. The API key is read from the secret store on first use.
type Client struct {
	cfg        Config
	secrets    ports.SecretStore
	httpClient *http.Client
	baseURL    string

	mu  sync.Mutex
	api *sdk.Client
}

var (
	_ ports.JudgmentProvider = (*Client)(nil)
	_ ports.BallotCaster     = (*Client)(nil)
)

func NewClient(cfg Config, secrets ports.SecretStore, httpClient *http.Client) (*Client, error) {
	if cfg.Model == "" {
		return nil, errors.New("model is required")
	}
	if cfg.APIKeyRef == "" {
		return nil, errors.New("api key reference is required")
	}
	if secrets == nil {
		return nil, errors.New("secret store is required")
	}
	if cfg.MaxRetries < 0 {
		return nil, errors.New("max retries must not be negative")
	}
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{cfg: cfg, secrets: secrets, httpClient: httpClient, baseURL: baseURL}, nil
}

func (c *Client) Generate(ctx context.Context, req ports.JudgmentRequest) (string, error) {
	return c.complete(ctx, req, false)
}

// CastBallot asks for a JSON ballot. Replies that are not valid JSON are
// kept as a rationale so the free text rules still apply.
func (c *Client) CastBallot(ctx context.Context, req ports.JudgmentRequest) (domain.Ballot, error) {
	content, err := c.complete(ctx, req, true)
	if err != nil {
		return domain.Ballot{}, err
	}

	var ballot domain.Ballot
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &ballot); err != nil {
		return domain.Ballot{Rationale: content}, nil
	}
	return ballot, nil
}

func (c *Client) complete(ctx context.Context, req ports.JudgmentRequest, jsonMode bool) (string, error) {
	api, err := c.client(ctx)
	if err != nil {
		return "", err
	}

	params := sdk.ChatCompletionNewParams{
		Model: shared.ChatModel(c.cfg.Model),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(systemPrompt(req.Participant)),
			sdk.UserMessage(req.Prompt),
		},
		Temperature: sdk.Float(c.cfg.Temperature),
	}
	if jsonMode {
		params.ResponseFormat = sdk.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	completion, err := api.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("request chat completion: status %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("request chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat response has no choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// client builds the SDK client once the API key resolves. A failed lookup
// is retried on the next call.
func (c *Client) client(ctx context.Context) (*sdk.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.api != nil {
		return c.api, nil
	}

	key, err := c.secrets.Get(ctx, c.cfg.APIKeyRef)
	if err != nil {
		return nil, fmt.Errorf("resolve api key (set one with `boardroom auth set`): %w", err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("resolve api key: %w", domain.ErrSecretNotFound)
	}

	timeout := c.cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	api := sdk.NewClient(
		option.WithBaseURL(c.baseURL),
		option.WithAPIKey(key),
		option.WithHTTPClient(c.httpClient),
		option.WithMaxRetries(c.cfg.MaxRetries),
		option.WithRequestTimeout(timeout),
	)
	c.api = &api
	return c.api, nil
}

func systemPrompt(participant domain.Participant) string {
	persona := participant.Persona
	parts := make([]string, 0, 3)
	if persona.Role != "" {
		parts = append(parts, "You are "+persona.Role+".")
	} else {
		parts = append(parts, "You are "+string(participant.Name)+".")
	}
	if persona.Backstory != "" {
		parts = append(parts, persona.Backstory)
	}
	if persona.Goal != "" {
		parts = append(parts, "Your goal: "+persona.Goal)
	}
	return strings.Join(parts, " ")
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// normalizeBaseURL validates the API root and gives it the trailing slash
// the SDK resolves request paths against.
func normalizeBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}
	return parsed.String(), nil
}
