// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package translate_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"codeberg.org/tcli/tcli/translate"
	"codeberg.org/tcli/tcli/tree"
)

// replyWith returns a generateContent response body carrying text.
func replyWith(text string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(text)

	return `{"candidates":[{"content":{"parts":[{"text":"` + escaped + `"}]}}]}`
}

type captured struct {
	path   string
	apiKey string
	prompt string
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()

	got := &captured{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)

		got.path = r.URL.Path
		got.apiKey = r.Header.Get("X-Goog-Api-Key")
		got.prompt = gjson.GetBytes(raw, "contents.0.parts.0.text").String()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv, got
}

func newClient(t *testing.T, endpoint string) *translate.Gemini {
	t.Helper()

	g, err := translate.NewGemini(translate.Options{APIKey: "secret", Endpoint: endpoint})
	require.NoError(t, err)

	return g
}

func TestNewGeminiRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := translate.NewGemini(translate.Options{APIKey: "  "})
	assert.ErrorIs(t, err, translate.ErrMissingAPIKey)
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	srv, got := newServer(t, http.StatusOK, replyWith("  Olá\n"))
	g := newClient(t, srv.URL)

	out, err := g.Translate(context.Background(), "Hello", "en-us", "pt-br")
	require.NoError(t, err)

	assert.Equal(t, "Olá", out)
	assert.Equal(t, "/models/"+translate.DefaultModel+":generateContent", got.path)
	assert.Equal(t, "secret", got.apiKey)
	assert.Equal(t,
		`Translate the following text from en-us to pt-br. Return only the translation, no explanations: "Hello"`,
		got.prompt)
}

func TestTranslateStripsEchoedQuotes(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t, http.StatusOK, replyWith(`"Olá"`))
	g := newClient(t, srv.URL)

	out, err := g.Translate(context.Background(), "Hello", "en-us", "pt-br")
	require.NoError(t, err)
	assert.Equal(t, "Olá", out)
}

func TestTranslateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{
			name:   "503 is overloaded",
			status: http.StatusServiceUnavailable,
			body:   `{"error":{"message":"busy"}}`,
			want:   translate.ErrOverloaded,
		},
		{
			name:   "overloaded message",
			status: http.StatusInternalServerError,
			body:   `{"error":{"message":"The model is overloaded."}}`,
			want:   translate.ErrOverloaded,
		},
		{
			name:   "429 is quota",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"message":"slow down"}}`,
			want:   translate.ErrQuotaExceeded,
		},
		{
			name:   "quota message",
			status: http.StatusForbidden,
			body:   `{"error":{"message":"Quota exceeded for project"}}`,
			want:   translate.ErrQuotaExceeded,
		},
		{
			name:   "other failure",
			status: http.StatusBadRequest,
			body:   `{"error":{"message":"API key not valid"}}`,
			want:   translate.ErrTranslationFailed,
		},
		{
			name:   "no candidates",
			status: http.StatusOK,
			body:   `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			want:   translate.ErrTranslationFailed,
		},
		{
			name:   "not JSON",
			status: http.StatusOK,
			body:   `<html>`,
			want:   translate.ErrTranslationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := newServer(t, tt.status, tt.body)
			g := newClient(t, srv.URL)

			_, err := g.Translate(context.Background(), "Hello", "en-us", "de-de")
			require.ErrorIs(t, err, tt.want)

			var apiErr *translate.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	t.Parallel()

	err := &translate.APIError{StatusCode: 400, Message: "API key not valid", Err: translate.ErrTranslationFailed}
	assert.Equal(t, "translation failed: API key not valid (status code: 400)", err.Error())
}

func TestTranslateCancelled(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t, http.StatusOK, replyWith("x"))
	g := newClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Translate(ctx, "Hello", "en-us", "de-de")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTranslateBatch(t *testing.T) {
	t.Parallel()

	reply := "```\n" +
		`auth.login: "Entrar"` + "\n" +
		`auth.logout:   "Sair \"agora\""` + "\n" +
		"invented.key: \"nope\"\n" +
		"some chatter\n" +
		"```"

	srv, got := newServer(t, http.StatusOK, replyWith(reply))
	g := newClient(t, srv.URL)

	in := tree.Flat{
		"auth.login":  "Log in",
		"auth.logout": `Log "out"`,
		"auth.reset":  "Reset",
	}

	out, err := g.TranslateBatch(context.Background(), in, "en-us", "pt-br")
	require.NoError(t, err)

	assert.Equal(t, tree.Flat{
		"auth.login":  "Entrar",
		"auth.logout": `Sair "agora"`,
	}, out)

	assert.True(t, strings.HasPrefix(got.prompt, "Translate the following key-value pairs from en-us to pt-br."))
	assert.Contains(t, got.prompt, "\nauth.login: \"Log in\"\nauth.logout: \"Log \\\"out\\\"\"\nauth.reset: \"Reset\"")
}

func TestTranslateBatchEmpty(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(srv.Close)

	g := newClient(t, srv.URL)

	out, err := g.TranslateBatch(context.Background(), tree.Flat{}, "en-us", "pt-br")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, calls.Load())
}
