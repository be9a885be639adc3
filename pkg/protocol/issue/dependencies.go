/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issue

import (
	"github.com/calyptra/verity/pkg/amqp"
	"github.com/calyptra/verity/pkg/credential"
	"github.com/calyptra/verity/pkg/datastore"
	"github.com/calyptra/verity/pkg/pds"
	"github.com/calyptra/verity/pkg/protocol"
)

type provider interface {
	GetDatastore() datastore.Store
	GetPDS() pds.Store
	GetAMQPPublisher(queue string) amqp.Publisher
	GetWallet() credential.Wallet
	GetCredentialIssuer() credential.Issuer
	GetCredentialHolder() credential.Holder
	GetProofVerifier() credential.ProofVerifier
	GetPolicyMatcher() credential.PolicyMatcher
	GetOutbound() protocol.Outbound
}
