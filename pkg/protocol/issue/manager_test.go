/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issue

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/calyptra/verity/pkg/credential"
	"github.com/calyptra/verity/pkg/datastore"
	pdsmocks "github.com/calyptra/verity/pkg/pds/mocks"
)

func TestApply(t *testing.T) {
	t.Run("application sent and record persisted", func(t *testing.T) {
		prov := newMockProvider(t)

		consentCred := matchingConsent()
		var issuedValues map[string]interface{}
		prov.issuer.On("IssueCredential", mock.Anything, "").Run(func(args mock.Arguments) {
			issuedValues = args.Get(0).(map[string]interface{})
		}).Return(consentCred, nil)
		prov.wallet.On("PublicDID").Return("did:sov:me", nil)

		var sent *Application
		prov.outbound.On("Send", mock.AnythingOfType("*issue.Application"), "conn-1").Run(func(args mock.Arguments) {
			sent = args.Get(0).(*Application)
		}).Return(nil)

		target := NewManager(prov)

		exchangeID, err := target.Apply("conn-1", `{"name":"Alice"}`, testService())
		require.NoError(t, err)
		require.NotEmpty(t, exchangeID)

		// consent credential asserts the service's consent schema, minus
		// the data itself
		require.Equal(t, "consent-ns", issuedValues["oca_schema_namespace"])
		require.Equal(t, "consent-schema-dri", issuedValues["oca_schema_dri"])
		require.Equal(t, "consent-data-dri", issuedValues["oca_data_dri"])
		require.Equal(t, "provider-policy", issuedValues["usage_policy"])
		require.NotEmpty(t, issuedValues["service_consent_match_id"])

		require.NotNil(t, sent)
		require.Equal(t, ApplicationMsgType, sent.Type)
		require.Equal(t, exchangeID, sent.ExchangeID)
		require.Equal(t, "svc-1", sent.ServiceID)
		require.Equal(t, "did:sov:me", sent.PublicDID)
		require.Equal(t, consentCred, sent.ConsentCredential)
		require.Equal(t, `{"name":"Alice"}`, sent.ServiceUserData)

		rec, err := prov.store.GetIssueByExchange(exchangeID, "conn-1")
		require.NoError(t, err)
		require.Equal(t, datastore.IssueStateNoResponse, rec.State)
		require.Equal(t, datastore.AuthorSelf, rec.Author)
		require.Equal(t, "Background Check", rec.Label)
		require.Equal(t, sent.ServiceUserDataDRI, rec.ServiceUserDataDRI)

		payload, err := prov.pstore.Load(rec.ServiceUserDataDRI)
		require.NoError(t, err)
		require.Equal(t, `{"name":"Alice"}`, string(payload))

		consents, err := prov.store.ListConsentsGiven("conn-1")
		require.NoError(t, err)
		require.Len(t, consents, 1)

		stored, err := prov.pstore.Load(consents[0].CredentialDRI)
		require.NoError(t, err)
		expected, err := json.Marshal(consentCred)
		require.NoError(t, err)
		require.Equal(t, expected, stored)
	})

	t.Run("own usage policy when the service pins none", func(t *testing.T) {
		prov := newMockProvider(t)

		var issuedValues map[string]interface{}
		prov.issuer.On("IssueCredential", mock.Anything, "").Run(func(args mock.Arguments) {
			issuedValues = args.Get(0).(map[string]interface{})
		}).Return(matchingConsent(), nil)
		prov.wallet.On("PublicDID").Return("did:sov:me", nil)
		prov.outbound.On("Send", mock.Anything, "conn-1").Return(nil)

		svc := testService()
		svc.ConsentSchema.UsagePolicy = ""

		target := NewManager(prov)

		_, err := target.Apply("conn-1", "data", svc)
		require.NoError(t, err)
		require.Equal(t, prov.pstore.UsagePolicy(), issuedValues["usage_policy"])
	})

	t.Run("issuer failure aborts before anything persists", func(t *testing.T) {
		prov := newMockProvider(t)
		prov.issuer.On("IssueCredential", mock.Anything, "").Return(nil, errors.New("no signing key"))

		target := NewManager(prov)

		_, err := target.Apply("conn-1", "data", testService())
		require.Error(t, err)

		list, err := prov.store.ListIssues(nil)
		require.NoError(t, err)
		require.Equal(t, 0, list.Count)

		prov.outbound.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("payload store failure aborts", func(t *testing.T) {
		prov := newMockProvider(t)
		prov.issuer.On("IssueCredential", mock.Anything, "").Return(matchingConsent(), nil)

		pstore := &pdsmocks.Store{}
		pstore.On("UsagePolicy").Return("requester-policy")
		pstore.On("Save", mock.Anything, "d1").Return("", errors.New("store unavailable"))
		prov.pstore = pstore

		target := NewManager(prov)

		_, err := target.Apply("conn-1", "data", testService())
		require.Error(t, err)
		require.Contains(t, err.Error(), "unable to save user data")

		list, err := prov.store.ListIssues(nil)
		require.NoError(t, err)
		require.Equal(t, 0, list.Count)
	})

	t.Run("public DID required", func(t *testing.T) {
		prov := newMockProvider(t)
		prov.issuer.On("IssueCredential", mock.Anything, "").Return(matchingConsent(), nil)
		prov.wallet.On("PublicDID").Return("", errors.New("no public DID"))

		target := NewManager(prov)

		_, err := target.Apply("conn-1", "data", testService())
		require.Error(t, err)
		require.Contains(t, err.Error(), "public DID")

		prov.outbound.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("send failure surfaces", func(t *testing.T) {
		prov := newMockProvider(t)
		prov.issuer.On("IssueCredential", mock.Anything, "").Return(matchingConsent(), nil)
		prov.wallet.On("PublicDID").Return("did:sov:me", nil)
		prov.outbound.On("Send", mock.Anything, "conn-1").Return(errors.New("no route"))

		target := NewManager(prov)

		_, err := target.Apply("conn-1", "data", testService())
		require.Error(t, err)
	})

	t.Run("service description required", func(t *testing.T) {
		target := NewManager(newMockProvider(t))

		_, err := target.Apply("conn-1", "data", nil)
		require.Error(t, err)
	})
}

func TestProcessApplication(t *testing.T) {
	seedProviderRecord := func(t *testing.T, prov *mockProvider) string {
		rec := &datastore.ServiceIssueRecord{
			State:                 datastore.IssueStatePending,
			Author:                datastore.AuthorOther,
			ConnectionID:          "conn-1",
			ExchangeID:            "exch-1",
			ServiceID:             "svc-1",
			ServiceConsentMatchID: "match-1",
			ServiceUserDataDRI:    "user-data-dri",
			TheirPublicDID:        "did:sov:requester",
		}
		id, err := prov.store.SaveIssue(rec)
		require.NoError(t, err)
		return id
	}

	t.Run("accept issues and responds", func(t *testing.T) {
		prov := newMockProvider(t)
		_, err := prov.store.InsertService(testService())
		require.NoError(t, err)
		id := seedProviderRecord(t, prov)

		issued := &credential.Credential{Subject: map[string]interface{}{"oca_data_dri": "user-data-dri"}}
		var issuedValues map[string]interface{}
		prov.issuer.On("IssueCredential", mock.Anything, "did:sov:requester").Run(func(args mock.Arguments) {
			issuedValues = args.Get(0).(map[string]interface{})
		}).Return(issued, nil)

		var sent *ApplicationResponse
		prov.outbound.On("Send", mock.AnythingOfType("*issue.ApplicationResponse"), "conn-1").Run(func(args mock.Arguments) {
			sent = args.Get(0).(*ApplicationResponse)
		}).Return(nil)

		target := NewManager(prov)

		rec, err := target.ProcessApplication(id, DecisionAccept)
		require.NoError(t, err)
		require.Equal(t, datastore.IssueStateAccepted, rec.State)
		require.NotEmpty(t, rec.CredentialID)

		require.Equal(t, "d1", issuedValues["oca_schema_dri"])
		require.Equal(t, "ns", issuedValues["oca_schema_namespace"])
		require.Equal(t, "user-data-dri", issuedValues["oca_data_dri"])
		require.Equal(t, "match-1", issuedValues["service_consent_match_id"])

		require.NotNil(t, sent)
		require.Equal(t, "exch-1", sent.ExchangeID)
		require.Equal(t, issued, sent.Credential)

		saved, err := prov.store.GetIssue(id)
		require.NoError(t, err)
		require.Equal(t, datastore.IssueStateAccepted, saved.State)

		data, err := prov.pstore.Load(saved.CredentialID)
		require.NoError(t, err)
		require.Contains(t, string(data), "user-data-dri")
	})

	t.Run("reject confirms the rejection", func(t *testing.T) {
		prov := newMockProvider(t)
		id := seedProviderRecord(t, prov)

		var sent *Confirmation
		prov.outbound.On("Send", mock.AnythingOfType("*issue.Confirmation"), "conn-1").Run(func(args mock.Arguments) {
			sent = args.Get(0).(*Confirmation)
		}).Return(nil)

		target := NewManager(prov)

		rec, err := target.ProcessApplication(id, DecisionReject)
		require.NoError(t, err)
		require.Equal(t, datastore.IssueStateRejected, rec.State)

		require.NotNil(t, sent)
		require.Equal(t, "exch-1", sent.ExchangeID)
		require.Equal(t, datastore.IssueStateRejected, sent.State)

		saved, err := prov.store.GetIssue(id)
		require.NoError(t, err)
		require.Equal(t, datastore.IssueStateRejected, saved.State)
	})

	t.Run("issuer failure leaves the application pending", func(t *testing.T) {
		prov := newMockProvider(t)
		_, err := prov.store.InsertService(testService())
		require.NoError(t, err)
		id := seedProviderRecord(t, prov)

		prov.issuer.On("IssueCredential", mock.Anything, "did:sov:requester").Return(nil, errors.New("no signing key"))

		target := NewManager(prov)

		_, err = target.ProcessApplication(id, DecisionAccept)
		require.Error(t, err)

		saved, err := prov.store.GetIssue(id)
		require.NoError(t, err)
		require.Equal(t, datastore.IssueStatePending, saved.State)

		prov.outbound.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("terminal exchange cannot be decided again", func(t *testing.T) {
		prov := newMockProvider(t)
		rec := &datastore.ServiceIssueRecord{
			State:        datastore.IssueStateCredentialReceived,
			Author:       datastore.AuthorOther,
			ConnectionID: "conn-1",
			ExchangeID:   "exch-1",
		}
		id, err := prov.store.SaveIssue(rec)
		require.NoError(t, err)

		target := NewManager(prov)

		_, err = target.ProcessApplication(id, DecisionAccept)
		require.Error(t, err)

		_, err = target.ProcessApplication(id, DecisionReject)
		require.Error(t, err)
	})

	t.Run("unknown decision", func(t *testing.T) {
		prov := newMockProvider(t)
		id := seedProviderRecord(t, prov)

		target := NewManager(prov)

		_, err := target.ProcessApplication(id, "maybe")
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown decision")
	})

	t.Run("unknown issue", func(t *testing.T) {
		target := NewManager(newMockProvider(t))

		_, err := target.ProcessApplication("missing", DecisionAccept)
		require.Error(t, err)
		require.True(t, errors.Is(err, datastore.ErrNotFound))
	})
}

func TestGetIssue(t *testing.T) {
	t.Run("projection includes stored user data", func(t *testing.T) {
		prov := newMockProvider(t)

		dri, err := prov.pstore.Save([]byte(`{"name":"Alice"}`), "d1")
		require.NoError(t, err)

		id, err := prov.store.SaveIssue(&datastore.ServiceIssueRecord{
			State:              datastore.IssueStateNoResponse,
			Author:             datastore.AuthorSelf,
			ConnectionID:       "conn-1",
			ExchangeID:         "exch-1",
			ServiceUserDataDRI: dri,
		})
		require.NoError(t, err)

		target := NewManager(prov)

		detail, err := target.GetIssue(id)
		require.NoError(t, err)
		require.Equal(t, `{"name":"Alice"}`, detail.ServiceUserData)
		require.Nil(t, detail.UsagePoliciesMatch)
	})

	t.Run("usage policies compared for received applications", func(t *testing.T) {
		prov := newMockProvider(t)

		consentData, err := json.Marshal(matchingConsent())
		require.NoError(t, err)
		consentDRI, err := prov.pstore.Save(consentData, "consent-schema-dri")
		require.NoError(t, err)

		id, err := prov.store.SaveIssue(&datastore.ServiceIssueRecord{
			State:                    datastore.IssueStatePending,
			Author:                   datastore.AuthorOther,
			ConnectionID:             "conn-1",
			ExchangeID:               "exch-1",
			ServiceConsentSchema:     testService().ConsentSchema,
			UserConsentCredentialDRI: consentDRI,
		})
		require.NoError(t, err)

		prov.policy.On("Match", "requester-policy", "provider-policy").Return(true, nil)

		target := NewManager(prov)

		detail, err := target.GetIssue(id)
		require.NoError(t, err)
		require.NotNil(t, detail.UsagePoliciesMatch)
		require.True(t, *detail.UsagePoliciesMatch)
	})

	t.Run("missing payload degrades instead of failing", func(t *testing.T) {
		prov := newMockProvider(t)

		id, err := prov.store.SaveIssue(&datastore.ServiceIssueRecord{
			State:              datastore.IssueStateNoResponse,
			Author:             datastore.AuthorSelf,
			ConnectionID:       "conn-1",
			ExchangeID:         "exch-1",
			ServiceUserDataDRI: "gone",
		})
		require.NoError(t, err)

		target := NewManager(prov)

		detail, err := target.GetIssue(id)
		require.NoError(t, err)
		require.Empty(t, detail.ServiceUserData)
	})

	t.Run("unknown issue", func(t *testing.T) {
		target := NewManager(newMockProvider(t))

		_, err := target.GetIssue("missing")
		require.Error(t, err)
	})
}

func TestListIssues(t *testing.T) {
	t.Run("filters by state and author", func(t *testing.T) {
		prov := newMockProvider(t)

		for i, rec := range []*datastore.ServiceIssueRecord{
			{State: datastore.IssueStatePending, Author: datastore.AuthorOther, ConnectionID: "conn-1", ExchangeID: "e1"},
			{State: datastore.IssueStateRejected, Author: datastore.AuthorOther, ConnectionID: "conn-1", ExchangeID: "e2"},
			{State: datastore.IssueStatePending, Author: datastore.AuthorSelf, ConnectionID: "conn-2", ExchangeID: "e3"},
		} {
			_, err := prov.store.SaveIssue(rec)
			require.NoError(t, err, i)
		}

		target := NewManager(prov)

		out, err := target.ListIssues(&datastore.IssueCriteria{
			State:  datastore.IssueStatePending,
			Author: datastore.AuthorOther,
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, "e1", out[0].ExchangeID)
	})
}
