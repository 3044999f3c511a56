// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/tcli/tcli/i18n"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code    string
		wantErr bool
	}{
		{code: "en-us"},
		{code: "pt-BR"},
		{code: "sv"},
		{code: "zh-Hant-TW"},
		{code: "qq-zz"}, // well-formed, unknown subtags
		{code: "", wantErr: true},
		{code: "en us", wantErr: true},
		{code: "../etc", wantErr: true},
		{code: "en-us!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()

			err := i18n.Validate(tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, i18n.ErrInvalidCode)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Portuguese (Brazil)", i18n.DisplayName("pt-br"))
	assert.Equal(t, "Chinese (Simplified)", i18n.DisplayName("ZH-CN"))
	assert.Equal(t, "Swedish (Sweden)", i18n.DisplayName("sv-se"))
	assert.Equal(t, "Danish", i18n.DisplayName("da"))
	assert.Equal(t, "not a code!", i18n.DisplayName("not a code!"))
}
