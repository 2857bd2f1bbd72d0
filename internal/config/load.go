// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-getter/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/conbar/internal/ctxlog"
	"github.com/spf13/afero"
)

var (
	// ErrReadPlan is returned when the plan source cannot be read or fetched.
	ErrReadPlan = errors.New("failed to read plan")
	// ErrDecodePlan is returned when the plan cannot be decoded.
	ErrDecodePlan = errors.New("failed to decode plan")
	// ErrUnknownFormat is returned when the file extension is not .yaml, .yml or .hcl.
	ErrUnknownFormat = errors.New("unknown plan format, expected .yaml, .yml or .hcl")
)

// FsFactory returns the filesystem local plan paths are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Load reads, decodes and validates a plan.
// src is a local path, or any source understood by go-getter
// (https://github.com/hashicorp/go-getter), e.g. "git::https://host/repo//plan.yaml?ref=main".
func Load(ctx context.Context, src string) (*Plan, error) {
	if src == "" {
		return nil, ErrReadPlan
	}

	data, name, err := read(ctx, src)
	if err != nil {
		return nil, err
	}

	plan, err := Parse(name, data)
	if err != nil {
		return nil, err
	}

	plan.ApplyDefaults()

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "plan loaded", "source", src, "mode", plan.Mode, "bars", len(plan.Bars))

	return plan, nil
}

// Parse decodes data according to the extension of name.
func Parse(name string, data []byte) (*Plan, error) {
	plan := &Plan{}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, plan, yaml.DisallowUnknownField()); err != nil {
			return nil, errors.Join(ErrDecodePlan, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(name, data, nil, plan); err != nil {
			return nil, errors.Join(ErrDecodePlan, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}

	return plan, nil
}

// read returns the plan bytes and a file name carrying the format extension.
func read(ctx context.Context, src string) ([]byte, string, error) {
	fs := FsFactory()

	if ok, _ := afero.Exists(fs, src); ok {
		data, err := afero.ReadFile(fs, src)
		if err != nil {
			return nil, "", errors.Join(ErrReadPlan, err)
		}

		return data, filepath.Base(src), nil
	}

	return fetch(ctx, src)
}

// fetch downloads a single file with go-getter into a temporary directory.
func fetch(ctx context.Context, src string) ([]byte, string, error) {
	name := sourceFileName(src)
	if name == "" || name == "." || name == "/" {
		return nil, "", fmt.Errorf("%w: cannot determine file name of %s", ErrReadPlan, src)
	}

	tmpDir, err := os.MkdirTemp("", "conbar-getter-*")
	if err != nil {
		return nil, "", errors.Join(ErrReadPlan, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrReadPlan, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, name),
		Pwd:     wd,
		GetMode: getter.ModeFile,
		Copy:    true,
	}

	ctxlog.Debug(ctx, "fetching plan", "source", src)

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, "", errors.Join(ErrReadPlan, err)
	}

	data, err := os.ReadFile(res.Dst)
	if err != nil {
		return nil, "", errors.Join(ErrReadPlan, err)
	}

	return data, name, nil
}

// sourceFileName strips any getter forcing prefix and query from src and
// returns the last path element.
func sourceFileName(src string) string {
	if i := strings.Index(src, "::"); i >= 0 {
		src = src[i+2:]
	}

	if i := strings.IndexByte(src, '?'); i >= 0 {
		src = src[:i]
	}

	return path.Base(strings.ReplaceAll(src, "//", "/"))
}
