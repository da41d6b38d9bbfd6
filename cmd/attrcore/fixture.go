/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

package main

import (
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/vtcore/attrcore/attrstore"
	"github.com/vtcore/attrcore/config"
	"github.com/vtcore/attrcore/fixture"
)

// openFixture reads path, resolves the pool size for flagPreset, and
// returns a Storage plus the Grid built against it. The caller owns
// both and should grid.Release(store) when done.
func openFixture(path string) (*attrstore.Storage, *fixture.Grid, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading fixture %s", path)
	}

	doc, err := fixture.Load(data)
	if err != nil {
		return nil, nil, err
	}

	settings, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	pool, err := settings.Resolve(flagPreset)
	if err != nil {
		return nil, nil, err
	}

	store, err := attrstore.New(pool.InitialNodes, pool.MaxNodes)
	if err != nil {
		return nil, nil, errors.Wrap(err, "constructing attribute storage")
	}

	grid, err := doc.Build(store)
	if err != nil {
		return nil, nil, err
	}

	return store, grid, nil
}
