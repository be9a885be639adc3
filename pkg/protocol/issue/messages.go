/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issue

import (
	"github.com/calyptra/verity/pkg/credential"
	"github.com/calyptra/verity/pkg/protocol"
)

const ProtocolURI = "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/verifiable-services/1.0"

const (
	ApplicationMsgType         = ProtocolURI + "/application"
	ApplicationResponseMsgType = ProtocolURI + "/application-response"
	ConfirmationMsgType        = ProtocolURI + "/confirmation"
)

// Application asks a provider to run one of its services for the
// sender. The consent credential carries the sender's agreement to the
// service's consent schema, bound to this exchange by the match id.
type Application struct {
	protocol.Header
	ServiceID             string                 `json:"service_id"`
	ExchangeID            string                 `json:"exchange_id"`
	ServiceUserData       string                 `json:"service_user_data"`
	ServiceUserDataDRI    string                 `json:"service_user_data_dri"`
	ServiceConsentMatchID string                 `json:"service_consent_match_id"`
	ConsentCredential     *credential.Credential `json:"consent_credential"`
	PublicDID             string                 `json:"public_did"`
}

// ApplicationResponse carries the issued credential back to the
// applicant once the provider accepts.
type ApplicationResponse struct {
	protocol.Header
	Credential     *credential.Credential `json:"credential"`
	CredentialData map[string]interface{} `json:"credential_data,omitempty"`
	ExchangeID     string                 `json:"exchange_id"`
	ReportData     map[string]interface{} `json:"report_data,omitempty"`
}

// Confirmation propagates an exchange state change to the other party.
type Confirmation struct {
	protocol.Header
	ExchangeID string `json:"exchange_id"`
	State      string `json:"state"`
}

func NewApplication() *Application {
	return &Application{Header: protocol.NewHeader(ApplicationMsgType)}
}

func NewApplicationResponse(exchangeID string, cred *credential.Credential) *ApplicationResponse {
	return &ApplicationResponse{
		Header:     protocol.NewHeader(ApplicationResponseMsgType),
		Credential: cred,
		ExchangeID: exchangeID,
	}
}

func NewConfirmation(exchangeID, state string) *Confirmation {
	return &Confirmation{
		Header:     protocol.NewHeader(ConfirmationMsgType),
		ExchangeID: exchangeID,
		State:      state,
	}
}
