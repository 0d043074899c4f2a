// Package libretranslate is a translation provider backed by a
// LibreTranslate-compatible HTTP API.
package libretranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Provider translates captured text through a LibreTranslate server.
type Provider struct {
	baseURL    string
	apiKey     string
	source     string
	target     string
	httpClient *http.Client
	log        *slog.Logger
}

// Config holds provider settings.
type Config struct {
	BaseURL string
	APIKey  string
	// Source and Target are ISO 639-1 codes, e.g. "pt" -> "en".
	Source string
	Target string
}

// NewProvider creates a Provider for the given server and language pair.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		source:     cfg.Source,
		target:     cfg.Target,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "libretranslate"),
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate returns the translated text. The category is always empty: the
// API knows nothing about the caller's category taxonomy.
func (p *Provider) Translate(ctx context.Context, text string) (string, string, error) {
	payload, err := json.Marshal(translateRequest{
		Q:      text,
		Source: p.source,
		Target: p.target,
		APIKey: p.apiKey,
	})
	if err != nil {
		return "", "", fmt.Errorf("libretranslate: encode request: %w", err)
	}

	p.log.DebugContext(ctx, "translate request", slog.Int("text_len", len(text)))

	resp, err := p.doWithRetry(ctx, payload)
	if err != nil {
		p.log.ErrorContext(ctx, "translate request failed", slog.String("error", err.Error()))
		return "", "", fmt.Errorf("libretranslate: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("libretranslate: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("libretranslate: read body: %w", err)
	}

	var result translateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", "", fmt.Errorf("libretranslate: decode json: %w", err)
	}

	return result.TranslatedText, "", nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The body is rebuilt per attempt since http.Request bodies are
// single-use.
func (p *Provider) doWithRetry(ctx context.Context, payload []byte) (*http.Response, error) {
	resp, err := p.do(ctx, payload)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "translate retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	return p.do(ctx, payload)
}

func (p *Provider) do(ctx context.Context, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return p.httpClient.Do(req)
}
