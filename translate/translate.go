// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package translate defines the translation service used to fill in
// languages and provides a Gemini-backed implementation.
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/tcli/tcli/tree"
)

// Translator translates strings between language codes.
//
// Calls are made one at a time and are never retried.
type Translator interface {
	// Translate returns text translated from one language to another.
	Translate(ctx context.Context, text, from, to string) (string, error)

	// TranslateBatch translates the values of entries and keeps their keys.
	// Entries the service's reply cannot be matched back to are dropped.
	TranslateBatch(ctx context.Context, entries tree.Flat, from, to string) (tree.Flat, error)
}

// Reportable translation failures.
var (
	ErrMissingAPIKey     = errors.New("GEMINI_API_KEY environment variable not found, set it in your .env file or environment")
	ErrOverloaded        = errors.New("translation service is overloaded, please try again in a few moments")
	ErrQuotaExceeded     = errors.New("API quota exceeded, please check your Gemini API usage")
	ErrTranslationFailed = errors.New("translation failed")
)

// APIError is a failed call to the translation service.
type APIError struct {
	// StatusCode is the HTTP status code of the response, or 0 if none was received.
	StatusCode int

	// Message is the service's error message, if any.
	Message string

	// Err is one of ErrOverloaded, ErrQuotaExceeded or ErrTranslationFailed.
	Err error
}

// Error returns the sentinel message followed by the service's message and status code.
func (e *APIError) Error() string {
	var b strings.Builder

	b.WriteString(e.Err.Error())

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status code: %d)", e.StatusCode)
	}

	return b.String()
}

// Unwrap returns the sentinel for use with errors.Is.
func (e *APIError) Unwrap() error {
	return e.Err
}

// classify maps a failed response to one of the reportable failures.
func classify(statusCode int, message string) *APIError {
	lower := strings.ToLower(message)

	sentinel := ErrTranslationFailed

	switch {
	case statusCode == 503 || strings.Contains(lower, "overloaded"):
		sentinel = ErrOverloaded
	case statusCode == 429 || strings.Contains(lower, "quota"):
		sentinel = ErrQuotaExceeded
	}

	return &APIError{StatusCode: statusCode, Message: message, Err: sentinel}
}
