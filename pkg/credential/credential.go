/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package credential defines the verifiable credential value object the
// issue protocol exchanges, plus the injected wallet capabilities that
// create, verify and hold credentials. Proof generation and verification
// are opaque here: this package checks claims, the wallet checks crypto.
package credential

import "encoding/json"

// Credential is a verifiable credential as it travels inside protocol
// messages. The proof block is opaque to this module.
type Credential struct {
	Context      []string               `json:"@context,omitempty"`
	Type         []string               `json:"type,omitempty"`
	Issuer       string                 `json:"issuer,omitempty"`
	IssuanceDate string                 `json:"issuanceDate,omitempty"`
	Subject      map[string]interface{} `json:"credentialSubject"`
	Proof        json.RawMessage        `json:"proof,omitempty"`
}

// SubjectString returns the named credentialSubject claim as a string,
// empty when absent or of another type.
func (r *Credential) SubjectString(claim string) string {
	if r == nil || r.Subject == nil {
		return ""
	}

	s, _ := r.Subject[claim].(string)

	return s
}
