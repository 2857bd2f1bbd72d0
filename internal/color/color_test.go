// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorize(t *testing.T) {
	tests := []struct {
		name     string
		str      string
		codes    []Code
		expected string
	}{
		{
			name:     "no codes leaves string untouched",
			str:      "plain",
			expected: "plain",
		},
		{
			name:     "single code",
			str:      "warn",
			codes:    []Code{FgYellow},
			expected: "\033[33mwarn\033[0m",
		},
		{
			name:     "multiple codes",
			str:      "fatal",
			codes:    []Code{Bold, FgHiMagenta},
			expected: "\033[1;95mfatal\033[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Colorize(tt.str, tt.codes...))
		})
	}
}

func TestEnabledFor(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log"))
	require.NoError(t, err)

	defer f.Close() //nolint:errcheck

	t.Run("regular file is not coloured", func(t *testing.T) {
		t.Setenv(NoColor, "")
		t.Setenv(ForceColor, "")
		assert.False(t, EnabledFor(f))
		assert.False(t, EnabledFor(nil))
	})

	t.Run("FORCE_COLOR overrides detection", func(t *testing.T) {
		t.Setenv(NoColor, "")
		t.Setenv(ForceColor, "1")
		assert.True(t, EnabledFor(f))
	})

	t.Run("NO_COLOR wins", func(t *testing.T) {
		t.Setenv(NoColor, "1")
		t.Setenv(ForceColor, "1")
		assert.False(t, EnabledFor(f))
	})
}
