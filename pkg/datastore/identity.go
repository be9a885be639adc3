/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package datastore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// issueIdentity is the identity-relevant field set of a ServiceIssueRecord.
// Field order fixes the canonical key order of the serialized form, so the
// digest is stable across processes.
type issueIdentity struct {
	ConnectionID string `json:"connection_id"`
	ExchangeID   string `json:"exchange_id"`
}

// IssueID derives the stable identifier of a ServiceIssueRecord from its
// identity fields. The same (connectionID, exchangeID) pair always yields
// the same id, which is what makes SaveIssue idempotent: a retried or
// duplicated creation attempt resolves to the record that already exists.
func IssueID(connectionID, exchangeID string) string {
	b, _ := json.Marshal(issueIdentity{
		ConnectionID: connectionID,
		ExchangeID:   exchangeID,
	})

	sum := sha256.Sum256(b)

	return hex.EncodeToString(sum[:])
}
