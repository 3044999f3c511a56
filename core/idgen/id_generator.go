// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package idgen makes short, mostly unique identifiers for API request spans.
package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Make makes a short ID with a 6 character timestamp and 3 bytes of entropy.
//
// IDs sort by time of day, which keeps saved response dumps in request order.
func Make() string {
	return makeAt(time.Now())
}

func makeAt(t time.Time) string {
	var entropy [3]byte

	_, _ = rand.Read(entropy[:])

	return maketime(t) + base64.RawURLEncoding.EncodeToString(entropy[:])
}

func maketime(t time.Time) string {
	return t.Format("150405")
}
