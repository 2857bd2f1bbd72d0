// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/matt-FFFFFF/conbar/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "conbar", root.Name)
	require.NotNil(t, root.Command("demo"))
}

func TestBefore_LogFormat(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCustom bool
	}{
		{name: "pretty keeps the context logger", args: []string{"conbar"}},
		{name: "json installs a json logger", args: []string{"conbar", "--log-format", "json"}, wantCustom: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got context.Context

			root := NewRootCmd()
			root.ErrWriter = &bytes.Buffer{}
			root.Writer = &bytes.Buffer{}
			root.Commands = nil
			root.Action = func(ctx context.Context, _ *cli.Command) error {
				got = ctx
				return nil
			}

			require.NoError(t, root.Run(context.Background(), tt.args))
			require.NotNil(t, got)

			if tt.wantCustom {
				assert.NotSame(t, ctxlog.DefaultLogger, ctxlog.Logger(got))
			} else {
				assert.Same(t, ctxlog.DefaultLogger, ctxlog.Logger(got))
			}
		})
	}
}
