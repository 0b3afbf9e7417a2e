package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the DashScope endpoint used when none is configured.
	DefaultBaseURL = "https://dashscope.aliyuncs.com"

	// DefaultModel is the DashScope model used when none is configured.
	DefaultModel = "qwen-max"

	// DefaultTimeout bounds one generation call.
	DefaultTimeout = 60 * time.Second

	// compatibleMarker in the base URL selects the OpenAI-compatible shape.
	compatibleMarker = "compatible-mode"

	legacyPath     = "/api/v1/services/aigc/text-generation/generation"
	compatiblePath = "/chat/completions"
)

// Generator sends a prompt to a language model and returns its reply text.
type Generator interface {
	Generate(ctx context.Context, prompt, credential string) (string, error)
}

// HTTPClient is the part of *http.Client the DashScope client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DashScopeConfig configures a DashScopeClient.
type DashScopeConfig struct {
	BaseURL string        // Optional: default DefaultBaseURL
	Model   string        // Optional: default DefaultModel
	Timeout time.Duration // Optional: default DefaultTimeout
}

// DashScopeClient talks to Alibaba Cloud DashScope, either through its native
// text-generation API or through the OpenAI-compatible mode.
type DashScopeClient struct {
	baseURL    string
	model      string
	timeout    time.Duration
	compatible bool
	client     HTTPClient
	log        *zap.Logger
}

// NewDashScopeClient creates a client. A nil logger disables logging.
func NewDashScopeClient(cfg DashScopeConfig, log *zap.Logger) *DashScopeClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &DashScopeClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		compatible: strings.Contains(cfg.BaseURL, compatibleMarker),
		client:     &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// WithHTTPClient swaps the transport, mainly for tests.
func (c *DashScopeClient) WithHTTPClient(client HTTPClient) *DashScopeClient {
	c.client = client
	return c
}

// Endpoint returns the URL generation requests are posted to.
func (c *DashScopeClient) Endpoint() string {
	if c.compatible {
		return c.baseURL + compatiblePath
	}
	return c.baseURL + legacyPath
}

// Generate performs exactly one POST and returns the reply content. Every
// failure is reported as ErrGenerationFailed.
func (c *DashScopeClient) Generate(ctx context.Context, prompt, credential string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(c.buildRequest(prompt))
	if err != nil {
		return "", c.fail("marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", c.fail("create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+credential)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", c.fail("send request", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.fail("read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.fail("unexpected status", fmt.Errorf("status %d: %s", resp.StatusCode, truncate(raw, 512)))
	}

	text, err := decodeEnvelope(c.compatible, raw).text()
	if err != nil {
		return "", c.fail("decode envelope", err)
	}

	c.log.Debug("generation call completed",
		zap.String("model", c.model),
		zap.Bool("compatible", c.compatible),
		zap.Duration("latency", time.Since(start)),
		zap.Int("reply_bytes", len(text)),
	)
	return text, nil
}

func (c *DashScopeClient) buildRequest(prompt string) any {
	messages := []chatMessage{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: prompt},
	}

	if c.compatible {
		return compatibleRequest{Model: c.model, Messages: messages}
	}
	req := legacyRequest{Model: c.model}
	req.Input.Messages = messages
	req.Parameters.ResultFormat = "message"
	return req
}

func (c *DashScopeClient) fail(stage string, cause error) error {
	c.log.Warn("generation call failed",
		zap.String("stage", stage),
		zap.String("endpoint", c.Endpoint()),
		zap.Error(cause),
	)
	return ErrGenerationFailed
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// ========== Wire types ==========

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type legacyRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []chatMessage `json:"messages"`
	} `json:"input"`
	Parameters struct {
		ResultFormat string `json:"result_format"`
	} `json:"parameters"`
}

type compatibleRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}
