// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrInvalidCode is returned by Validate for codes that are not language tags.
var ErrInvalidCode = errors.New("not a valid language code")

// Language is a language offered during project setup.
type Language struct {
	Code  string
	Label string
}

// CommonLanguages is offered by `tcli init`, in display order.
var CommonLanguages = []Language{
	{Code: "en-us", Label: "English (US)"},
	{Code: "pt-pt", Label: "Portuguese (Portugal)"},
	{Code: "pt-br", Label: "Portuguese (Brazil)"},
	{Code: "es-es", Label: "Spanish (Spain)"},
	{Code: "fr-fr", Label: "French (France)"},
	{Code: "it-it", Label: "Italian (Italy)"},
	{Code: "de-de", Label: "German (Germany)"},
	{Code: "ja-jp", Label: "Japanese (Japan)"},
	{Code: "ko-kr", Label: "Korean (South Korea)"},
	{Code: "zh-cn", Label: "Chinese (Simplified)"},
}

// Validate checks that code is a well-formed language tag.
func Validate(code string) error {
	if strings.TrimSpace(code) == "" || strings.ContainsAny(code, `/\ `) {
		return fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}

	_, err := language.Parse(code)
	if err == nil {
		return nil
	}

	var unknown language.ValueError
	if errors.As(err, &unknown) {
		log.Info().
			Str("sys", "i18n").
			Str("code", code).
			Str("subtag", unknown.Subtag()).
			Msg("Language code has an unknown subtag")

		return nil
	}

	return fmt.Errorf("%w: %q", ErrInvalidCode, code)
}

// DisplayName returns an English label for code, or code itself when none is known.
func DisplayName(code string) string {
	for _, l := range CommonLanguages {
		if strings.EqualFold(l.Code, code) {
			return l.Label
		}
	}

	tag, err := language.Parse(code)
	if err != nil {
		return code
	}

	base, _ := tag.Base()
	name := display.English.Languages().Name(base)

	if name == "" {
		return code
	}

	if region, conf := tag.Region(); conf == language.Exact {
		if r := display.English.Regions().Name(region); r != "" {
			return name + " (" + r + ")"
		}
	}

	return name
}
