// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package idgen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.Equal(t, strings.ReplaceAll(now.Format("15:04:05"), ":", ""), maketime(now), "time part incorrect")
}

func TestMakeAt(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, time.March, 1, 9, 8, 7, 0, time.UTC)
	id := makeAt(at)

	assert.Len(t, id, 10)
	assert.True(t, strings.HasPrefix(id, "090807"))
	assert.NotEqual(t, id, makeAt(at), "entropy part should differ")
}
