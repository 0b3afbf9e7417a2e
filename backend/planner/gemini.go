package planner

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when GeminiConfig.Model is empty.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiConfig configures a GeminiClient.
type GeminiConfig struct {
	Model    string        // Optional: default DefaultGeminiModel
	Endpoint string        // Optional: API endpoint override
	Timeout  time.Duration // Optional: default DefaultTimeout
}

// GeminiClient generates plans with Google Gemini. A new SDK client is built
// per call because the API key belongs to the caller.
type GeminiClient struct {
	model    string
	endpoint string
	timeout  time.Duration
	log      *zap.Logger
}

func NewGeminiClient(cfg GeminiConfig, log *zap.Logger) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GeminiClient{
		model:    cfg.Model,
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
		log:      log,
	}
}

func (c *GeminiClient) Generate(ctx context.Context, prompt, credential string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := []option.ClientOption{option.WithAPIKey(credential)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", c.fail("create client", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(SystemPrompt))
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.7)

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", c.fail("generate content", err)
	}

	text, err := geminiText(res)
	if err != nil {
		return "", c.fail("read candidates", err)
	}
	return text, nil
}

func (c *GeminiClient) fail(stage string, cause error) error {
	c.log.Warn("gemini generation failed",
		zap.String("stage", stage),
		zap.String("model", c.model),
		zap.Error(cause),
	)
	return ErrGenerationFailed
}

// geminiText joins the text parts of the first candidate.
func geminiText(res *genai.GenerateContentResponse) (string, error) {
	if res == nil || len(res.Candidates) == 0 {
		return "", errors.New("no candidates")
	}
	content := res.Candidates[0].Content
	if content == nil {
		return "", errors.New("candidate has no content")
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("candidate has no text")
	}
	return b.String(), nil
}
