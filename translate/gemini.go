// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"codeberg.org/tcli/tcli/core/audit"
	"codeberg.org/tcli/tcli/core/idgen"
	"codeberg.org/tcli/tcli/tree"
)

// Defaults for Options.
const (
	DefaultModel    = "gemini-2.0-flash"
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
)

const replyTextPath = "candidates.0.content.parts.0.text"

var errEmptyReply = errors.New("the service returned no text")

// Options configures a Gemini client.
type Options struct {
	APIKey   string
	Model    string
	Endpoint string

	// RequestsPerMinute paces calls when positive. Zero means no pacing.
	RequestsPerMinute int

	// HTTPClient defaults to a client without a timeout. Calls still end
	// when their context is cancelled.
	HTTPClient *http.Client
}

// Gemini is a Translator backed by the Gemini generateContent API.
type Gemini struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	logger   zerolog.Logger
}

var _ Translator = (*Gemini)(nil)

// NewGemini returns a client for opts. It fails with ErrMissingAPIKey when
// no API key is set, before any network access.
func NewGemini(opts Options) (*Gemini, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	g := &Gemini{
		apiKey:   opts.APIKey,
		model:    opts.Model,
		endpoint: strings.TrimRight(opts.Endpoint, "/"),
		client:   opts.HTTPClient,
		logger:   log.With().Str("sys", "translate").Logger(),
	}

	if g.model == "" {
		g.model = DefaultModel
	}

	if g.endpoint == "" {
		g.endpoint = DefaultEndpoint
	}

	if g.client == nil {
		g.client = &http.Client{}
	}

	if opts.RequestsPerMinute > 0 {
		g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}

	return g, nil
}

// Translate implements Translator.
func (g *Gemini) Translate(ctx context.Context, text, from, to string) (string, error) {
	reply, err := g.generate(ctx, singlePrompt(text, from, to))
	if err != nil {
		return "", err
	}

	return cleanSingle(reply, text), nil
}

// TranslateBatch implements Translator. An empty input makes no call.
func (g *Gemini) TranslateBatch(ctx context.Context, entries tree.Flat, from, to string) (tree.Flat, error) {
	if len(entries) == 0 {
		return tree.Flat{}, nil
	}

	reply, err := g.generate(ctx, batchPrompt(entries, from, to))
	if err != nil {
		return nil, err
	}

	out := parseBatch(reply, entries)

	if dropped := len(entries) - len(out); dropped > 0 {
		g.logger.Warn().
			Int("dropped", dropped).
			Str("to", to).
			Msg("Some batch entries were missing from the translation reply")
	}

	return out, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generate sends prompt to the model and returns the first candidate's text.
func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	target := fmt.Sprintf("%s/models/%s:generateContent", g.endpoint, url.PathEscape(g.model))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", g.apiKey)

	statusCode, body, err := g.send(ctx, req)
	if err != nil {
		if isContextCanceled(err) {
			return "", ctx.Err()
		}

		return "", &APIError{Message: err.Error(), Err: ErrTranslationFailed}
	}

	if statusCode >= http.StatusBadRequest {
		message := gjson.GetBytes(body, "error.message").String()
		if message == "" {
			message = http.StatusText(statusCode)
		}

		return "", classify(statusCode, message)
	}

	if !gjson.ValidBytes(body) {
		return "", &APIError{StatusCode: statusCode, Message: "invalid JSON in response", Err: ErrTranslationFailed}
	}

	text := gjson.GetBytes(body, replyTextPath)
	if !text.Exists() || strings.TrimSpace(text.String()) == "" {
		message := errEmptyReply.Error()
		if reason := gjson.GetBytes(body, "promptFeedback.blockReason").String(); reason != "" {
			message += " (blocked: " + reason + ")"
		}

		return "", &APIError{StatusCode: statusCode, Message: message, Err: ErrTranslationFailed}
	}

	return text.String(), nil
}

// send performs req inside an audit span and returns the status code and body.
// The span is logged whether or not the call succeeds.
func (g *Gemini) send(ctx context.Context, req *http.Request) (_ int, _ []byte, err error) {
	span := audit.Span{
		Destination: audit.ToTranslator,
		RequestID:   idgen.Make(),
		Method:      req.Method,
		URL:         req.URL.String(),
	}

	_ = span.Begin(ctx)

	defer func() {
		span.Error = err
		span.End()
		span.Log()
	}()

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	span.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	span.Body = body

	return resp.StatusCode, body, nil
}

func isContextCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
