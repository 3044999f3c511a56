// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package translate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"codeberg.org/tcli/tcli/tree"
)

// batchLine matches `key: "value"` lines of a batch reply.
var batchLine = regexp.MustCompile(`^(.+?):\s*"(.*)"$`)

func singlePrompt(text, from, to string) string {
	return fmt.Sprintf(
		"Translate the following text from %s to %s. Return only the translation, no explanations: %q",
		from, to, text,
	)
}

func batchPrompt(entries tree.Flat, from, to string) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"Translate the following key-value pairs from %s to %s. Keep the same keys, translate only the values. Return in the same format:\n",
		from, to,
	)

	for i, key := range entries.Keys() {
		if i > 0 {
			b.WriteByte('\n')
		}

		fmt.Fprintf(&b, "%s: %s", key, strconv.Quote(entries[key]))
	}

	return b.String()
}

// parseBatch reads `key: "value"` lines back out of a reply. Only keys that
// were asked for are kept; lines that do not match are ignored.
func parseBatch(reply string, asked tree.Flat) tree.Flat {
	out := make(tree.Flat)

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)

		m := batchLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		key := strings.TrimSpace(m[1])
		if _, ok := asked[key]; !ok {
			continue
		}

		out[key] = unescape(m[2])
	}

	return out
}

// unescape undoes strconv.Quote escaping when the reply kept it, and
// returns the value unchanged otherwise.
func unescape(v string) string {
	if s, err := strconv.Unquote(`"` + v + `"`); err == nil {
		return s
	}

	return v
}

// cleanSingle trims a single-text reply and drops quotes the model copied
// from the prompt.
func cleanSingle(reply, source string) string {
	reply = strings.TrimSpace(reply)

	quoted := len(reply) >= 2 && strings.HasPrefix(reply, `"`) && strings.HasSuffix(reply, `"`)
	if quoted && !strings.HasPrefix(source, `"`) {
		return unescape(reply[1 : len(reply)-1])
	}

	return reply
}
