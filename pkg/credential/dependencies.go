/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential

//go:generate mockery -name=Wallet
type Wallet interface {
	// PublicDID returns this agent's public DID. Applying to a service
	// requires one.
	PublicDID() (string, error)
}

//go:generate mockery -name=Issuer
type Issuer interface {
	// IssueCredential creates a signed credential over the given subject
	// values, bound to subjectDID when one is provided.
	IssueCredential(values map[string]interface{}, subjectDID string) (*Credential, error)
}

//go:generate mockery -name=Holder
type Holder interface {
	// StoreCredential stores a received credential in the wallet and
	// returns its wallet id.
	StoreCredential(cred *Credential) (string, error)
}

//go:generate mockery -name=ProofVerifier
type ProofVerifier interface {
	// VerifyProof checks the cryptographic proof over the credential.
	VerifyProof(cred *Credential) (bool, error)
}

//go:generate mockery -name=PolicyMatcher
type PolicyMatcher interface {
	// Match reports whether the applicant's usage policy satisfies ours.
	Match(theirs, ours string) (bool, error)
}

// StrictPolicyMatcher accepts only policies identical to our own.
type StrictPolicyMatcher struct{}

func (r *StrictPolicyMatcher) Match(theirs, ours string) (bool, error) {
	return theirs == ours, nil
}
