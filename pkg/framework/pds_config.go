/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package framework

import (
	"github.com/pkg/errors"

	"github.com/calyptra/verity/pkg/pds"
	"github.com/calyptra/verity/pkg/pds/mem"
	"github.com/calyptra/verity/pkg/pds/mongodb"
)

type PDSConfig struct {
	Storage     string          `mapstructure:"storage"`
	UsagePolicy string          `mapstructure:"usagePolicy"`
	Mongo       *mongodb.Config `mapstructure:"mongo"`
}

func (r *PDSConfig) PDS() (pds.Store, error) {
	switch r.Storage {
	case "mongo":
		store, err := mongodb.New(r.Mongo)
		if err != nil {
			return nil, errors.Wrap(err, "unable to create pds based on config")
		}

		return store, nil

	case "mem":
		return mem.New(mem.WithUsagePolicy(r.UsagePolicy)), nil

	default:
		return nil, errors.New("no pds configuration was provided")
	}
}
