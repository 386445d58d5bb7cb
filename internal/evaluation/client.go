package evaluation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/utils"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"

	// The provider does not document a per-attempt bound, so we impose one.
	attemptTimeout = 30 * time.Second

	defaultMaxRetries = 3
	initialBackoff    = 2 * time.Second
)

// Client performs the raw call to the generation endpoint and returns the
// reply body untouched. Parsing and fallback live elsewhere; the client only
// decides what is retryable. Stateless and safe for concurrent use.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

type geminiClient struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client

	maxRetries int
	backoff    time.Duration
	sleep      func(time.Duration)
}

func NewGeminiClient(log *logger.Logger) (Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	baseURL := utils.GetEnv("GEMINI_BASE_URL", defaultBaseURL, log)
	model := utils.GetEnv("GEMINI_MODEL", defaultModel, log)
	maxRetries := utils.GetEnvAsInt("GEMINI_MAX_RETRIES", defaultMaxRetries, log)

	return &geminiClient{
		log:        log.With("service", "GeminiClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
		maxRetries: maxRetries,
		backoff:    initialBackoff,
		sleep:      time.Sleep,
	}, nil
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

func (c *geminiClient) Model() string {
	return c.model
}

func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	backoff := c.backoff

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		raw, err := c.doOnce(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		// Caller cancellation is never retried.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if !isRetryable(err) {
			return "", err
		}
		if attempt == c.maxRetries {
			break
		}

		c.log.Warn("Generation request retrying",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", backoff.String(),
			"error", err.Error(),
		)
		c.sleep(backoff)
		backoff *= 2
	}

	return "", fmt.Errorf("generation endpoint unavailable after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *geminiClient) doOnce(ctx context.Context, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	body := generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.3,
			MaxOutputTokens: 2000,
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return string(raw), nil
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	// Our per-attempt deadline; the caller-cancellation case is screened
	// out before this is consulted.
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Transient()
	}
	return false
}
