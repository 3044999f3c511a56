// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/trace"
	"strconv"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// Span represents an outgoing API request in flight.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration

	Destination TrafficDestination
	RequestID   string
	Method      string
	URL         string
	StatusCode  int
	Error       error
	Body        []byte // Body is not logged as is; only for response saving

	responseFilename string // responseFilename logs the filename of a saved response
}

// TrafficDestination describes the logical destination of a request.
type TrafficDestination string

// Constants for traffic destinations.
const (
	ToTranslator TrafficDestination = "translator"

	responseFilePermissions = 0o600
	responseFileExtension   = ".json.zst"
)

var (
	// SaveResponses indicates whether to save response bodies to storage.
	SaveResponses bool

	// ResponseDirectory is the directory where response bodies are saved.
	ResponseDirectory string
)

// Begin starts timing the span and opens a runtime/trace task for it.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "api."+string(span.Destination))

	return ctx
}

// End stops timing the span. Calling it more than once is harmless.
func (span *Span) End() {
	if span.task != nil {
		span.duration = time.Since(span.start)
		span.task.End()

		span.task = nil
	}
}

// Log logs the span at debug level and saves the response body if applicable.
func (span *Span) Log() {
	if SaveResponses && len(span.Body) > 0 {
		filename, err := saveResponse(span.RequestID, span.Body)
		if err != nil {
			log.Err(err).
				Str("request_id", span.RequestID).
				Msg("Failed to save response")
		} else {
			span.responseFilename = filename
		}
	}

	event := log.Debug()

	event.Str("sys", "api")
	event.Str("method", span.Method)
	event.Str("url", span.URL)
	event.Int("status_code", span.StatusCode)
	event.Str("len", humanizeSize(len(span.Body)))
	event.Dur("dur", span.duration)
	event.Str("destination", string(span.Destination))
	event.Str("request_id", span.RequestID)

	if span.responseFilename != "" {
		event.Str("response_filename", span.responseFilename)
	}

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}

// saveResponse writes body zstd-compressed to ResponseDirectory.
func saveResponse(requestID string, body []byte) (string, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer enc.Close()

	filename := filepath.Join(ResponseDirectory, requestID+responseFileExtension)

	if err := os.WriteFile(filename, enc.EncodeAll(body, nil), responseFilePermissions); err != nil {
		return "", err
	}

	return filename, nil
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

func humanizeSize(x int) string {
	if x < bytesInKB {
		return strconv.Itoa(x)
	}

	if x < bytesInMB {
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	}

	if x < bytesInGB {
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}

	return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
}
