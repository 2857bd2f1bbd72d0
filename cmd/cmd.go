// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/conbar"
	"github.com/matt-FFFFFF/conbar/cmd/demo"
	"github.com/matt-FFFFFF/conbar/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	logFormatFlag = "log-format"
	logFormatJSON = "json"
)

// RootCmd is the root command for the CLI.
var RootCmd = NewRootCmd()

// NewRootCmd builds the command tree.
func NewRootCmd() *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			demo.NewDemoCmd(),
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "conbar",
		Version:   fmt.Sprintf("%s (commit %s)", conbar.Version, conbar.Commit),
		Description: `conbar draws progress bars that stay where they were created.
Each bar is anchored at the cursor position it was created at and redrawn in
place on every update, so several bars can be driven at once, from one loop or
from many goroutines, without scrolling the terminal.

Set ` + ctxlog.EnvVarName() + ` to DEBUG, INFO, WARN or ERROR to change the log level.`,
		Usage:     "conbar demo --mode concurrent --bars 9",
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     logFormatFlag,
				Usage:    "Log output format written to stderr: pretty or json",
				Value:    "pretty",
				OnlyOnce: true,
			},
		},
		Before:                before,
		EnableShellCompletion: true,
	}
}

func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.String(logFormatFlag) == logFormatJSON {
		return ctxlog.New(ctx, ctxlog.NewJSONLogger(cmd.ErrWriter)), nil
	}

	return ctx, nil
}
