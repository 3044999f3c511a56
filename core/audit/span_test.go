// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{in: 0, want: "0"},
		{in: 1023, want: "1023"},
		{in: 1024, want: "1.00K"},
		{in: 1536, want: "1.50K"},
		{in: bytesInMB, want: "1.00M"},
		{in: 3 * bytesInGB, want: "3.00G"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeSize(tt.in))
	}
}

// Not parallel: SaveResponses and ResponseDirectory are package state.
func TestSpanSavesCompressedResponse(t *testing.T) {
	dir := t.TempDir()

	SaveResponses = true
	ResponseDirectory = dir

	t.Cleanup(func() {
		SaveResponses = false
		ResponseDirectory = ""
	})

	span := Span{
		Destination: ToTranslator,
		RequestID:   "req1",
		Method:      "POST",
		URL:         "https://example.test/v1beta/models/m:generateContent",
		StatusCode:  200,
		Error:       errors.New("boom"),
		Body:        []byte(`{"candidates": []}`),
	}

	span.Begin(context.Background())
	span.End()
	span.End()
	span.Log()

	require.Equal(t, filepath.Join(dir, "req1.json.zst"), span.responseFilename)

	compressed, err := os.ReadFile(span.responseFilename)
	require.NoError(t, err)

	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()

	body, err := dec.DecodeAll(compressed, nil)
	require.NoError(t, err)
	assert.Equal(t, span.Body, body)
}
