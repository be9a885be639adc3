/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package datastore

import "time"

// Issue exchange states. The state strings travel on the wire inside
// Confirmation messages and must stay in sync on both sides.
const (
	IssueStateNoResponse         = "no response"
	IssueStateServiceNotFound    = "service not found"
	IssueStatePending            = "pending"
	IssueStateRejected           = "rejected"
	IssueStateAccepted           = "accepted"
	IssueStateCredentialReceived = "credential_received"
)

// Which side of the exchange authored the application.
const (
	AuthorSelf  = "self"
	AuthorOther = "other"
)

type Criteria map[string]interface{}

// ServiceSchema links a service to the schema its user data conforms to.
type ServiceSchema struct {
	Namespace string `json:"oca_schema_namespace" bson:"oca_schema_namespace"`
	SchemaDRI string `json:"oca_schema_dri" bson:"oca_schema_dri"`
}

// ConsentSchema declares the consent a service requires before issuing:
// the schema linkage the consent credential must assert, plus the
// provider's usage policy.
type ConsentSchema struct {
	Namespace   string            `json:"oca_schema_namespace" bson:"oca_schema_namespace"`
	SchemaDRI   string            `json:"oca_schema_dri" bson:"oca_schema_dri"`
	DataDRI     string            `json:"oca_data_dri" bson:"oca_data_dri"`
	Data        map[string]string `json:"oca_data,omitempty" bson:"oca_data,omitempty"`
	UsagePolicy string            `json:"usage_policy,omitempty" bson:"usage_policy,omitempty"`
}

// Service is a catalog entry describing a credential-gated service this
// agent provides. The issue protocol only ever reads it.
type Service struct {
	ID            string         `json:"service_id" bson:"_id"`
	Label         string         `json:"label" bson:"label"`
	ServiceSchema *ServiceSchema `json:"service_schema" bson:"service_schema"`
	ConsentSchema *ConsentSchema `json:"consent_schema" bson:"consent_schema"`
}

type ServiceCriteria struct {
	Start, PageSize int
	Label           string
}

type ServiceList struct {
	Count    int
	Services []*Service
}

// ServiceIssueRecord is one side's view of a single service-issuance
// negotiation. Both parties hold their own copy, correlated by ExchangeID.
//
// ID is content-derived (see IssueID) so that duplicate or retried
// creation attempts for the same exchange collapse onto one record.
// The service description fields are snapshots captured when the record
// is created and are never re-resolved against the live catalog.
type ServiceIssueRecord struct {
	ID                       string         `json:"issue_id" bson:"_id"`
	ExchangeID               string         `json:"exchange_id" bson:"exchange_id"`
	ConnectionID             string         `json:"connection_id" bson:"connection_id"`
	Author                   string         `json:"author" bson:"author"`
	State                    string         `json:"state" bson:"state"`
	ServiceID                string         `json:"service_id" bson:"service_id"`
	Label                    string         `json:"label" bson:"label"`
	ServiceSchema            *ServiceSchema `json:"service_schema,omitempty" bson:"service_schema,omitempty"`
	ServiceConsentSchema     *ConsentSchema `json:"consent_schema,omitempty" bson:"consent_schema,omitempty"`
	ServiceUserDataDRI       string         `json:"service_user_data_dri,omitempty" bson:"service_user_data_dri,omitempty"`
	ServiceConsentMatchID    string         `json:"service_consent_match_id,omitempty" bson:"service_consent_match_id,omitempty"`
	UserConsentCredentialDRI string         `json:"user_consent_credential_dri,omitempty" bson:"user_consent_credential_dri,omitempty"`
	CredentialID             string         `json:"credential_id,omitempty" bson:"credential_id,omitempty"`
	TheirPublicDID           string         `json:"their_public_did,omitempty" bson:"their_public_did,omitempty"`
	CreatedAt                time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at" bson:"updated_at"`
}

// Tags is the set of indexed values ListIssues filters on. All of them
// are derived from the record, never mutated independently.
func (r *ServiceIssueRecord) Tags() map[string]string {
	return map[string]string{
		"connection_id":            r.ConnectionID,
		"exchange_id":              r.ExchangeID,
		"service_id":               r.ServiceID,
		"service_consent_match_id": r.ServiceConsentMatchID,
		"state":                    r.State,
		"author":                   r.Author,
		"label":                    r.Label,
	}
}

// IssueCriteria filters ListIssues by record tags. Empty fields match
// everything.
type IssueCriteria struct {
	Start, PageSize int
	ConnectionID    string
	ExchangeID      string
	ServiceID       string
	ConsentMatchID  string
	State           string
	Author          string
	Label           string
}

func (c *IssueCriteria) tagFilter() map[string]string {
	f := map[string]string{
		"connection_id":            c.ConnectionID,
		"exchange_id":              c.ExchangeID,
		"service_id":               c.ServiceID,
		"service_consent_match_id": c.ConsentMatchID,
		"state":                    c.State,
		"author":                   c.Author,
		"label":                    c.Label,
	}
	for k, v := range f {
		if v == "" {
			delete(f, k)
		}
	}

	return f
}

// Matches reports whether the record's tags satisfy the criteria.
func (c *IssueCriteria) Matches(r *ServiceIssueRecord) bool {
	tags := r.Tags()
	for k, v := range c.tagFilter() {
		if tags[k] != v {
			return false
		}
	}

	return true
}

type IssueList struct {
	Count  int
	Issues []*ServiceIssueRecord
}

// ServiceDiscovery caches the service catalog a peer advertised over a
// connection, replaced wholesale on every discovery response.
type ServiceDiscovery struct {
	ConnectionID string     `json:"connection_id" bson:"_id"`
	Services     []*Service `json:"services" bson:"services"`
	UsagePolicy  string     `json:"usage_policy,omitempty" bson:"usage_policy,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// Webhook is a controller-registered sink for notification events.
type Webhook struct {
	Type string `bson:"type"`
	URL  string `bson:"url"`
}

// ConsentGiven records a consent credential this agent handed to a peer.
type ConsentGiven struct {
	ID            string    `json:"id" bson:"_id"`
	ConnectionID  string    `json:"connection_id" bson:"connection_id"`
	CredentialDRI string    `json:"credential_dri" bson:"credential_dri"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
