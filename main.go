// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
tcli manages nested JSON translation files (one per language and namespace)
and fills in missing languages through a machine translation service.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/tcli/tcli/commands"
	"codeberg.org/tcli/tcli/core/audit"
)

const (
	exitOK     = 0
	exitFailed = 1
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and turns its outcome into an exit code.
// Cancellation is a clean exit.
func run(args []string, stdout, stderr io.Writer) int {
	audit.SetDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := commands.NewRootCommand(&commands.App{})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	switch {
	case err == nil:
		return exitOK
	case commands.IsCancelled(err):
		fmt.Fprintln(stdout, "\n[tcli] Operation cancelled")

		return exitOK
	}

	var cmdErr *commands.Error
	if errors.As(err, &cmdErr) {
		fmt.Fprintln(stderr, cmdErr.Error())
	} else {
		fmt.Fprintf(stderr, "[tcli] %v\n", err)
	}

	return exitFailed
}
