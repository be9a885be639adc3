/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/calyptra/verity/pkg/credential"
	"github.com/calyptra/verity/pkg/credential/mocks"
	"github.com/calyptra/verity/pkg/datastore"
)

func declaredConsent() *datastore.ConsentSchema {
	return &datastore.ConsentSchema{
		Namespace: "consents",
		SchemaDRI: "schema-dri-1",
		DataDRI:   "data-dri-1",
	}
}

func matchingConsentCred() *credential.Credential {
	return &credential.Credential{
		Subject: map[string]interface{}{
			"oca_schema_namespace": "consents",
			"oca_schema_dri":       "schema-dri-1",
			"oca_data_dri":         "data-dri-1",
		},
	}
}

func TestConsentVerifier_Validate(t *testing.T) {
	t.Run("valid consent", func(t *testing.T) {
		proof := &mocks.ProofVerifier{}
		proof.On("VerifyProof", mock.AnythingOfType("*credential.Credential")).Return(true, nil)

		target := credential.NewConsentVerifier(proof)
		err := target.Validate(declaredConsent(), matchingConsentCred())
		require.NoError(t, err)
	})

	t.Run("mismatched data dri is malformed", func(t *testing.T) {
		proof := &mocks.ProofVerifier{}
		target := credential.NewConsentVerifier(proof)

		cred := matchingConsentCred()
		cred.Subject["oca_data_dri"] = "other"

		err := target.Validate(declaredConsent(), cred)
		require.Error(t, err)
		require.True(t, errors.Is(err, credential.ErrMalformedConsent))
		proof.AssertNotCalled(t, "VerifyProof")
	})

	t.Run("mismatched namespace is malformed", func(t *testing.T) {
		target := credential.NewConsentVerifier(&mocks.ProofVerifier{})

		cred := matchingConsentCred()
		cred.Subject["oca_schema_namespace"] = "other"

		err := target.Validate(declaredConsent(), cred)
		require.True(t, errors.Is(err, credential.ErrMalformedConsent))
	})

	t.Run("missing subject is malformed", func(t *testing.T) {
		target := credential.NewConsentVerifier(&mocks.ProofVerifier{})

		err := target.Validate(declaredConsent(), &credential.Credential{})
		require.True(t, errors.Is(err, credential.ErrMalformedConsent))
	})

	t.Run("proof failure is invalid, not malformed", func(t *testing.T) {
		proof := &mocks.ProofVerifier{}
		proof.On("VerifyProof", mock.AnythingOfType("*credential.Credential")).Return(false, nil)

		target := credential.NewConsentVerifier(proof)
		err := target.Validate(declaredConsent(), matchingConsentCred())
		require.Error(t, err)
		require.True(t, errors.Is(err, credential.ErrProofInvalid))
		require.False(t, errors.Is(err, credential.ErrMalformedConsent))
	})

	t.Run("proof error is invalid", func(t *testing.T) {
		proof := &mocks.ProofVerifier{}
		proof.On("VerifyProof", mock.AnythingOfType("*credential.Credential")).Return(false, errors.New("wallet offline"))

		target := credential.NewConsentVerifier(proof)
		err := target.Validate(declaredConsent(), matchingConsentCred())
		require.True(t, errors.Is(err, credential.ErrProofInvalid))
	})
}

func TestStrictPolicyMatcher(t *testing.T) {
	target := &credential.StrictPolicyMatcher{}

	ok, err := target.Match("policy-a", "policy-a")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = target.Match("policy-a", "policy-b")
	require.NoError(t, err)
	require.False(t, ok)
}
