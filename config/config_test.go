/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasBuiltInPresets(t *testing.T) {
	s := Default()
	assert.Contains(t, s.Presets, "small")
	assert.Contains(t, s.Presets, "large")
}

func TestResolveEmptyPresetReturnsBasePool(t *testing.T) {
	s := Default()
	p, err := s.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, s.Pool, p)
}

func TestResolveKnownPreset(t *testing.T) {
	s := Default()
	p, err := s.Resolve("small")
	require.NoError(t, err)
	assert.Equal(t, 8, p.InitialNodes)
	assert.Equal(t, 256, p.MaxNodes)
}

func TestResolveUnknownPresetErrors(t *testing.T) {
	s := Default()
	_, err := s.Resolve("nonexistent")
	assert.Error(t, err)
}
