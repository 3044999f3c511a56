// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n knows about the language codes used to name translation
directories.

Codes are kept exactly as the operator wrote them, since they are also
directory names (e.g. "en-us", "pt-br"). Validate rejects codes that are
not well-formed BCP 47 tags and accepts well-formed codes with unknown
subtags, which are logged.

DisplayName gives a human label for prompts:

	i18n.DisplayName("pt-br") // "Portuguese (Brazil)"
	i18n.DisplayName("sv-se") // "Swedish (Sweden)"
*/
package i18n
