/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issue

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/calyptra/verity/pkg/credential"
	"github.com/calyptra/verity/pkg/datastore"
	"github.com/calyptra/verity/pkg/pds"
	"github.com/calyptra/verity/pkg/protocol"
)

// Decisions a controller can take on a pending application.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// Manager is the controller-facing surface of the issuance exchange:
// applying to a peer's service, deciding on received applications, and
// querying issue records enriched with externally stored data.
type Manager struct {
	store    datastore.Store
	pstore   pds.Store
	wallet   credential.Wallet
	issuer   credential.Issuer
	policy   credential.PolicyMatcher
	outbound protocol.Outbound
}

func NewManager(prov provider) *Manager {
	return &Manager{
		store:    prov.GetDatastore(),
		pstore:   prov.GetPDS(),
		wallet:   prov.GetWallet(),
		issuer:   prov.GetCredentialIssuer(),
		policy:   prov.GetPolicyMatcher(),
		outbound: prov.GetOutbound(),
	}
}

// Apply applies to a service a connected peer advertised. It issues a
// consent credential over the service's consent schema, stores the user
// data payload, persists a record in the "no response" state and sends
// the Application. The returned exchange id correlates the negotiation
// on both sides.
func (r *Manager) Apply(connectionID, userData string, svc *datastore.Service) (string, error) {
	if svc == nil || svc.ID == "" {
		return "", errors.New("apply requires a service description")
	}

	matchID := uuid.New().String()

	// Our usage policy rides along in the consent credential unless the
	// provider's consent schema pins one.
	values := map[string]interface{}{
		"service_consent_match_id": matchID,
		"usage_policy":             r.pstore.UsagePolicy(),
	}

	var consentSchemaDRI string
	if svc.ConsentSchema != nil {
		consentSchemaDRI = svc.ConsentSchema.SchemaDRI
		values["oca_schema_namespace"] = svc.ConsentSchema.Namespace
		values["oca_schema_dri"] = svc.ConsentSchema.SchemaDRI
		values["oca_data_dri"] = svc.ConsentSchema.DataDRI
		if svc.ConsentSchema.UsagePolicy != "" {
			values["usage_policy"] = svc.ConsentSchema.UsagePolicy
		}
	}

	consentCred, err := r.issuer.IssueCredential(values, "")
	if err != nil {
		return "", errors.Wrap(err, "unable to issue consent credential")
	}

	var serviceSchemaDRI string
	if svc.ServiceSchema != nil {
		serviceSchemaDRI = svc.ServiceSchema.SchemaDRI
	}

	userDataDRI, err := r.pstore.Save([]byte(userData), serviceSchemaDRI)
	if err != nil {
		return "", errors.Wrap(err, "unable to save user data")
	}

	rec := &datastore.ServiceIssueRecord{
		State:                 datastore.IssueStateNoResponse,
		Author:                datastore.AuthorSelf,
		ConnectionID:          connectionID,
		ExchangeID:            uuid.New().String(),
		ServiceID:             svc.ID,
		Label:                 svc.Label,
		ServiceSchema:         svc.ServiceSchema,
		ServiceConsentSchema:  svc.ConsentSchema,
		ServiceUserDataDRI:    userDataDRI,
		ServiceConsentMatchID: matchID,
	}

	_, err = r.store.SaveIssue(rec)
	if err != nil {
		return "", errors.Wrap(err, "unable to save issue record")
	}

	publicDID, err := r.wallet.PublicDID()
	if err != nil {
		return "", errors.Wrap(err, "applying to a service requires a public DID")
	}

	app := NewApplication()
	app.ServiceID = rec.ServiceID
	app.ExchangeID = rec.ExchangeID
	app.ServiceUserData = userData
	app.ServiceUserDataDRI = userDataDRI
	app.ServiceConsentMatchID = matchID
	app.ConsentCredential = consentCred
	app.PublicDID = publicDID

	err = r.outbound.Send(app, connectionID)
	if err != nil {
		return "", errors.Wrap(err, "unable to send application")
	}

	consentData, err := json.Marshal(consentCred)
	if err != nil {
		return "", errors.Wrap(err, "unable to encode consent credential")
	}

	consentDRI, err := r.pstore.Save(consentData, consentSchemaDRI)
	if err != nil {
		return "", errors.Wrap(err, "unable to save consent credential")
	}

	_, err = r.store.InsertConsentGiven(&datastore.ConsentGiven{
		ConnectionID:  connectionID,
		CredentialDRI: consentDRI,
	})
	if err != nil {
		return "", errors.Wrap(err, "unable to record consent given")
	}

	return rec.ExchangeID, nil
}

// ProcessApplication decides a pending application. Reject persists the
// rejection and confirms it to the applicant; accept issues the service
// credential bound to the applicant's public DID and sends it back. An
// issuer failure leaves the record untouched so the decision can be
// retried.
func (r *Manager) ProcessApplication(issueID, decision string) (*datastore.ServiceIssueRecord, error) {
	rec, err := r.store.GetIssue(issueID)
	if err != nil {
		return nil, errors.Wrapf(err, "issue %s", issueID)
	}

	if decision == DecisionReject || rec.State == datastore.IssueStateRejected {
		return r.reject(rec)
	}

	if decision != DecisionAccept {
		return nil, errors.Errorf("unknown decision %q", decision)
	}

	if !CanTransition(rec.State, datastore.IssueStateAccepted) {
		return nil, errors.Errorf("issue %s cannot be accepted in state %q", issueID, rec.State)
	}

	svc, err := r.store.GetService(rec.ServiceID)
	if err != nil {
		return nil, errors.Wrapf(err, "service %s", rec.ServiceID)
	}

	var schemaDRI, namespace string
	if svc.ServiceSchema != nil {
		schemaDRI = svc.ServiceSchema.SchemaDRI
		namespace = svc.ServiceSchema.Namespace
	}

	cred, err := r.issuer.IssueCredential(map[string]interface{}{
		"oca_schema_dri":           schemaDRI,
		"oca_schema_namespace":     namespace,
		"oca_data_dri":             rec.ServiceUserDataDRI,
		"service_consent_match_id": rec.ServiceConsentMatchID,
	}, rec.TheirPublicDID)
	if err != nil {
		return nil, errors.Wrap(err, "unable to issue service credential")
	}

	credData, err := json.Marshal(cred)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode service credential")
	}

	credDRI, err := r.pstore.Save(credData, schemaDRI)
	if err != nil {
		return nil, errors.Wrap(err, "unable to save service credential")
	}

	rec.State = datastore.IssueStateAccepted
	rec.CredentialID = credDRI

	_, err = r.store.SaveIssue(rec)
	if err != nil {
		return nil, errors.Wrap(err, "unable to save issue record")
	}

	err = r.outbound.Send(NewApplicationResponse(rec.ExchangeID, cred), rec.ConnectionID)
	if err != nil {
		return nil, errors.Wrap(err, "unable to send application response")
	}

	return rec, nil
}

func (r *Manager) reject(rec *datastore.ServiceIssueRecord) (*datastore.ServiceIssueRecord, error) {
	if !CanTransition(rec.State, datastore.IssueStateRejected) {
		return nil, errors.Errorf("issue %s cannot be rejected in state %q", rec.ID, rec.State)
	}

	rec.State = datastore.IssueStateRejected

	_, err := r.store.SaveIssue(rec)
	if err != nil {
		return nil, errors.Wrap(err, "unable to save issue record")
	}

	err = r.outbound.Send(NewConfirmation(rec.ExchangeID, rec.State), rec.ConnectionID)
	if err != nil {
		return nil, errors.Wrap(err, "unable to send rejection confirmation")
	}

	return rec, nil
}

// IssueDetail is a read-only projection of an issue record enriched
// with the externally stored user data and, when both sides declare a
// usage policy, whether those policies agree.
type IssueDetail struct {
	*datastore.ServiceIssueRecord
	ServiceUserData    string `json:"service_user_data,omitempty"`
	UsagePoliciesMatch *bool  `json:"usage_policies_match,omitempty"`
}

// GetIssue returns one enriched issue record.
func (r *Manager) GetIssue(issueID string) (*IssueDetail, error) {
	rec, err := r.store.GetIssue(issueID)
	if err != nil {
		return nil, errors.Wrapf(err, "issue %s", issueID)
	}

	return r.enrich(rec), nil
}

// ListIssues returns enriched issue records matching the criteria.
func (r *Manager) ListIssues(c *datastore.IssueCriteria) ([]*IssueDetail, error) {
	list, err := r.store.ListIssues(c)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list issues")
	}

	out := make([]*IssueDetail, 0, len(list.Issues))
	for _, rec := range list.Issues {
		out = append(out, r.enrich(rec))
	}

	return out, nil
}

// enrich is best effort: a missing payload or an unreadable consent
// credential degrades the projection, it does not fail the query.
func (r *Manager) enrich(rec *datastore.ServiceIssueRecord) *IssueDetail {
	detail := &IssueDetail{ServiceIssueRecord: rec}

	if rec.ServiceUserDataDRI != "" {
		payload, err := r.pstore.Load(rec.ServiceUserDataDRI)
		if err != nil {
			logger.Warnf("unable to load user data %s: %v", rec.ServiceUserDataDRI, err)
		} else {
			detail.ServiceUserData = string(payload)
		}
	}

	if rec.Author == datastore.AuthorOther && rec.ServiceConsentSchema != nil &&
		rec.ServiceConsentSchema.UsagePolicy != "" && rec.UserConsentCredentialDRI != "" {
		match, err := r.matchUsagePolicies(rec)
		if err != nil {
			logger.Warnf("unable to compare usage policies for issue %s: %v", rec.ID, err)
		} else {
			detail.UsagePoliciesMatch = &match
		}
	}

	return detail
}

func (r *Manager) matchUsagePolicies(rec *datastore.ServiceIssueRecord) (bool, error) {
	data, err := r.pstore.Load(rec.UserConsentCredentialDRI)
	if err != nil {
		return false, errors.Wrap(err, "unable to load consent credential")
	}

	cred := &credential.Credential{}
	err = json.Unmarshal(data, cred)
	if err != nil {
		return false, errors.Wrap(err, "unable to decode consent credential")
	}

	return r.policy.Match(cred.SubjectString("usage_policy"), rec.ServiceConsentSchema.UsagePolicy)
}
