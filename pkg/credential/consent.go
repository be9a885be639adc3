/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential

import (
	"github.com/hyperledger/aries-framework-go/pkg/common/log"
	"github.com/pkg/errors"

	"github.com/calyptra/verity/pkg/datastore"
)

var logger = log.New("verity/credential")

var (
	// ErrMalformedConsent is returned when a consent credential's claims
	// do not match the consent schema the service declares.
	ErrMalformedConsent = errors.New("malformed consent credential")

	// ErrProofInvalid is returned when a consent credential's claims
	// match but its cryptographic proof does not verify.
	ErrProofInvalid = errors.New("consent credential proof invalid")
)

// ConsentVerifier gates credential issuance on verifiable consent: the
// inbound consent credential must assert exactly the schema linkage the
// service declares, and its proof must verify.
type ConsentVerifier struct {
	proof ProofVerifier
}

func NewConsentVerifier(proof ProofVerifier) *ConsentVerifier {
	return &ConsentVerifier{proof: proof}
}

// Validate checks cred against the declared consent schema. Claim
// mismatches and proof failures are distinct causes but both reject
// the application.
func (r *ConsentVerifier) Validate(declared *datastore.ConsentSchema, cred *Credential) error {
	if declared == nil {
		return errors.Wrap(ErrMalformedConsent, "service declares no consent schema")
	}

	if cred == nil || cred.Subject == nil {
		return errors.Wrap(ErrMalformedConsent, "consent credential carries no subject")
	}

	dataDRI := cred.SubjectString("oca_data_dri")
	namespace := cred.SubjectString("oca_schema_namespace")
	schemaDRI := cred.SubjectString("oca_schema_dri")

	if dataDRI != declared.DataDRI || namespace != declared.Namespace || schemaDRI != declared.SchemaDRI {
		logger.Warnf("consent claims mismatch: data dri %t, namespace %t, schema dri %t",
			dataDRI != declared.DataDRI, namespace != declared.Namespace, schemaDRI != declared.SchemaDRI)

		return errors.Wrapf(ErrMalformedConsent,
			"consent credential does not match service consent schema (data dri %t, namespace %t, schema dri %t)",
			dataDRI != declared.DataDRI, namespace != declared.Namespace, schemaDRI != declared.SchemaDRI)
	}

	ok, err := r.proof.VerifyProof(cred)
	if err != nil {
		return errors.Wrapf(ErrProofInvalid, "proof verification failed: %v", err)
	}

	if !ok {
		logger.Warnf("consent credential failed proof verification")
		return errors.Wrap(ErrProofInvalid, "credential failed the verification process")
	}

	return nil
}
