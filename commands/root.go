// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"cmp"

	"github.com/spf13/cobra"

	"codeberg.org/tcli/tcli/config"
)

// NewRootCommand returns the tcli command tree bound to app. Paths already
// set on app become the defaults of the --config and --settings flags.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tcli",
		Short:         "Manage JSON translation files and fill them in with machine translation",
		Version:       config.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&app.ConfigPath, "config", cmp.Or(app.ConfigPath, config.ProjectFile),
		"Project configuration file")
	root.PersistentFlags().StringVar(&app.SettingsPath, "settings", app.SettingsPath,
		"Settings file in YAML format (default: $TCLI_SETTINGS or ./tcli.yaml)")

	root.AddCommand(
		newInitCommand(app),
		newAddCommand(app),
		newUpdateCommand(app),
		newRemoveCommand(app),
		newBatchCommand(app),
		newNamespaceCommand(app),
		newLanguageCommand(app),
		newVerifyCommand(app),
	)

	return root
}

func newInitCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize translation configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.Init()
		},
	}
}

// keyFlags binds the flags shared by add and update.
func keyFlags(cmd *cobra.Command, opts *KeyOptions) {
	cmd.Flags().StringVarP(&opts.Key, "key", "k", "", "Translation key")
	cmd.Flags().StringVarP(&opts.Value, "value", "v", "", "Translation value, stored as-is in any language")
	cmd.Flags().StringVarP(&opts.Namespace, "ns", "n", "", "Namespace (default: the default namespace)")
	cmd.Flags().StringVarP(&opts.Lang, "lang", "l", "", "Language (default: the source language)")
}

// positional lets the first args take the place of the key and value flags.
func positional(args []string, key, value *string) {
	if len(args) > 0 {
		*key = args[0]
	}

	if len(args) > 1 && value != nil {
		*value = args[1]
	}
}

const addHelp = `Add a translation key.

In the source language the value is saved and then translated into every
other language.

With --lang set to another language, the source language's value of the key
is translated into that language. A value given on the command line is
stored as-is instead, without translation.`

func newAddCommand(app *App) *cobra.Command {
	var opts KeyOptions

	cmd := &cobra.Command{
		Use:   "add [key] [value]",
		Short: "Add a translation key",
		Long:  addHelp,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			positional(args, &opts.Key, &opts.Value)

			return app.Add(cmd.Context(), opts)
		},
	}

	keyFlags(cmd, &opts)

	return cmd
}

func newUpdateCommand(app *App) *cobra.Command {
	var opts KeyOptions

	cmd := &cobra.Command{
		Use:   "update [key] [value]",
		Short: "Update a translation key",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			positional(args, &opts.Key, &opts.Value)

			return app.Update(cmd.Context(), opts)
		},
	}

	keyFlags(cmd, &opts)

	return cmd
}

func newRemoveCommand(app *App) *cobra.Command {
	var opts RemoveOptions

	cmd := &cobra.Command{
		Use:   "remove [key]",
		Short: "Remove a translation key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			positional(args, &opts.Key, nil)

			return app.Remove(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Key, "key", "k", "", "Translation key")
	cmd.Flags().StringVarP(&opts.Namespace, "ns", "n", "", "Namespace (default: the default namespace)")
	cmd.Flags().StringVarP(&opts.Lang, "lang", "l", "", "Language (default: every language)")

	return cmd
}

func newBatchCommand(app *App) *cobra.Command {
	var (
		opts  BatchOptions
		langs string
	)

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Batch translate from file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			positional(args, &opts.File, nil)
			opts.Langs = splitList(langs)

			return app.Batch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "JSON file with translations")
	cmd.Flags().StringVarP(&opts.Namespace, "ns", "n", "", "Namespace (default: the default namespace)")
	cmd.Flags().StringVarP(&langs, "langs", "l", "", "Comma-separated languages (default: every non-source language)")

	return cmd
}

func newNamespaceCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ns",
		Short: "Namespace management",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add namespace",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return app.NamespaceAdd(args[0])
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove namespace",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return app.NamespaceRemove(args[0])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List namespaces",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return app.NamespaceList()
			},
		},
		&cobra.Command{
			Use:   "default <name>",
			Short: "Set default namespace",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return app.NamespaceDefault(args[0])
			},
		},
	)

	return cmd
}

func newLanguageCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "Language management",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <lang>",
			Short: "Add language",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.LanguageAdd(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "remove <lang>",
			Short: "Remove language",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return app.LanguageRemove(args[0])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List languages",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return app.LanguageList()
			},
		},
	)

	return cmd
}

func newVerifyCommand(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify missing translation keys",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.Verify(strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when keys are missing")

	return cmd
}
