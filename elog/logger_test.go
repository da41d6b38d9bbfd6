/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package elog

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestFormatDisablesColorsWhenRequested(t *testing.T) {
	c := &CLI{DisableColors: true}
	entry := &logrus.Entry{Message: "hello", Level: logrus.WarnLevel}

	out, err := c.Format(entry)
	assert.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
}
