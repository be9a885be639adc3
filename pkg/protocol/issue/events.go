/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issue

import "github.com/calyptra/verity/pkg/datastore"

// NotificationTopic groups every event this protocol emits; controllers
// register webhooks against it.
const NotificationTopic = "verifiable-services"

const (
	IncomingApplicationEvent = "incoming-pending-application"
	CredentialReceivedEvent  = "credential-received"
	StateUpdateEvent         = "issue-state-update"
)

type IncomingApplicationEventData struct {
	Issue   *datastore.ServiceIssueRecord `json:"issue"`
	IssueID string                        `json:"issue_id"`
}

type CredentialReceivedEventData struct {
	CredentialID string `json:"credential_id"`
	ConnectionID string `json:"connection_id"`
}

type StateUpdateEventData struct {
	State   string                        `json:"state"`
	IssueID string                        `json:"issue_id"`
	Issue   *datastore.ServiceIssueRecord `json:"issue"`
}
