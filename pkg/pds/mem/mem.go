/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mem

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/calyptra/verity/pkg/pds"
)

// Store is an in-memory content-addressed payload store.
type Store struct {
	lock     sync.RWMutex
	payloads map[string][]byte
	policy   string
}

type Option func(*Store)

// WithUsagePolicy sets the usage policy the store reports.
func WithUsagePolicy(policy string) Option {
	return func(s *Store) {
		s.policy = policy
	}
}

func New(opts ...Option) *Store {
	s := &Store{payloads: map[string][]byte{}}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (r *Store) Save(payload []byte, _ string) (string, error) {
	dri := pds.DRI(payload)

	r.lock.Lock()
	defer r.lock.Unlock()

	cp := make([]byte, len(payload))
	copy(cp, payload)
	r.payloads[dri] = cp

	return dri, nil
}

func (r *Store) Load(dri string) ([]byte, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	payload, ok := r.payloads[dri]
	if !ok {
		return nil, errors.Wrapf(pds.ErrNotFound, "dri %s", dri)
	}

	cp := make([]byte, len(payload))
	copy(cp, payload)

	return cp, nil
}

func (r *Store) UsagePolicy() string {
	return r.policy
}
