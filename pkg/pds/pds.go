/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package pds holds the personal data store abstraction: a
// content-addressed blob store for user data payloads and externally
// held credentials. Payloads are keyed by their DRI (decentralized
// resource identifier), the hex-encoded sha256 digest of the content,
// so storing the same payload twice yields the same reference.
package pds

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when no payload exists for a DRI.
var ErrNotFound = errors.New("payload not found")

//go:generate mockery -name=Store
type Store interface {
	// Save persists the payload under its content address and returns
	// the DRI. schemaDRI records which schema the payload conforms to.
	Save(payload []byte, schemaDRI string) (string, error)

	// Load returns the payload stored under dri.
	Load(dri string) ([]byte, error)

	// UsagePolicy returns this store's usage policy, empty when the
	// backing store does not carry one.
	UsagePolicy() string
}

// DRI computes the content address of a payload.
func DRI(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
