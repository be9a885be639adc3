/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package issue implements the verifiable-services issuance exchange: a
// requester applies to a provider for a credential-gated service, the
// provider verifies the attached consent credential and tracks the
// application through pending, accepted or rejected, and both sides keep
// their own issue record in sync through confirmation messages.
package issue

import (
	"encoding/json"

	"github.com/hyperledger/aries-framework-go/pkg/common/log"
	"github.com/pkg/errors"

	"github.com/calyptra/verity/pkg/amqp"
	"github.com/calyptra/verity/pkg/credential"
	"github.com/calyptra/verity/pkg/datastore"
	"github.com/calyptra/verity/pkg/notifier"
	"github.com/calyptra/verity/pkg/pds"
	"github.com/calyptra/verity/pkg/protocol"
)

var logger = log.New("verity/issue")

// Service handles the inbound side of the issuance exchange. Each
// message is processed as an independent unit of work: the handler
// persists its record, replies on the inbound thread, and only then
// emits an advisory notification.
type Service struct {
	store    datastore.Store
	pstore   pds.Store
	verifier *credential.ConsentVerifier
	holder   credential.Holder
	events   amqp.Publisher
}

func New(prov provider) *Service {
	return &Service{
		store:    prov.GetDatastore(),
		pstore:   prov.GetPDS(),
		verifier: credential.NewConsentVerifier(prov.GetProofVerifier()),
		holder:   prov.GetCredentialHolder(),
		events:   prov.GetAMQPPublisher(notifier.QueueName),
	}
}

func (r *Service) Accept(msgType string) bool {
	switch msgType {
	case ApplicationMsgType, ApplicationResponseMsgType, ConfirmationMsgType:
		return true
	}

	return false
}

func (r *Service) HandleInbound(conn *protocol.Connection, msgType string, payload []byte, responder protocol.Responder) error {
	switch msgType {
	case ApplicationMsgType:
		msg := &Application{}
		err := json.Unmarshal(payload, msg)
		if err != nil {
			return errors.Wrap(err, "unable to decode application")
		}

		return r.handleApplication(conn, msg, responder)

	case ApplicationResponseMsgType:
		msg := &ApplicationResponse{}
		err := json.Unmarshal(payload, msg)
		if err != nil {
			return errors.Wrap(err, "unable to decode application response")
		}

		return r.handleApplicationResponse(conn, msg)

	case ConfirmationMsgType:
		msg := &Confirmation{}
		err := json.Unmarshal(payload, msg)
		if err != nil {
			return errors.Wrap(err, "unable to decode confirmation")
		}

		return r.handleConfirmation(conn, msg)
	}

	return errors.Errorf("unsupported message type %s", msgType)
}

// handleApplication runs the provider side of an incoming application.
// Unknown services and failed consent checks reply without persisting
// anything, so malformed traffic cannot grow the store.
func (r *Service) handleApplication(conn *protocol.Connection, msg *Application, responder protocol.Responder) error {
	svc, err := r.store.GetService(msg.ServiceID)
	if errors.Is(err, datastore.ErrNotFound) {
		logger.Warnf("application for unknown service %s on connection %s", msg.ServiceID, conn.ConnectionID)
		return r.sendConfirmation(responder, msg.Header, msg.ExchangeID, datastore.IssueStateServiceNotFound)
	} else if err != nil {
		return errors.Wrap(err, "unable to look up service")
	}

	err = r.verifier.Validate(svc.ConsentSchema, msg.ConsentCredential)
	if err != nil {
		replyErr := r.sendConfirmation(responder, msg.Header, msg.ExchangeID, datastore.IssueStateRejected)
		if replyErr != nil {
			logger.Errorf("unable to send rejection confirmation: %v", replyErr)
		}

		return errors.Wrap(err, "application rejected")
	}

	var serviceSchemaDRI string
	if svc.ServiceSchema != nil {
		serviceSchemaDRI = svc.ServiceSchema.SchemaDRI
	}

	userDataDRI, err := r.pstore.Save([]byte(msg.ServiceUserData), serviceSchemaDRI)
	if err != nil {
		return errors.Wrap(err, "unable to save applicant user data")
	}

	if msg.ServiceUserDataDRI != "" && msg.ServiceUserDataDRI != userDataDRI {
		return errors.Errorf("user data digest mismatch: declared %s, stored %s", msg.ServiceUserDataDRI, userDataDRI)
	}

	consentData, err := json.Marshal(msg.ConsentCredential)
	if err != nil {
		return errors.Wrap(err, "unable to encode consent credential")
	}

	consentDRI, err := r.pstore.Save(consentData, svc.ConsentSchema.SchemaDRI)
	if err != nil {
		return errors.Wrap(err, "unable to save consent credential")
	}

	rec := &datastore.ServiceIssueRecord{
		State:                    datastore.IssueStatePending,
		Author:                   datastore.AuthorOther,
		ConnectionID:             conn.ConnectionID,
		ExchangeID:               msg.ExchangeID,
		ServiceID:                msg.ServiceID,
		ServiceConsentMatchID:    msg.ServiceConsentMatchID,
		ServiceUserDataDRI:       userDataDRI,
		ServiceSchema:            svc.ServiceSchema,
		ServiceConsentSchema:     svc.ConsentSchema,
		Label:                    svc.Label,
		TheirPublicDID:           msg.PublicDID,
		UserConsentCredentialDRI: consentDRI,
	}

	id, err := r.store.SaveIssue(rec)
	if err != nil {
		return errors.Wrap(err, "unable to save issue record")
	}

	err = r.sendConfirmation(responder, msg.Header, msg.ExchangeID, datastore.IssueStatePending)
	if err != nil {
		return err
	}

	r.notify(IncomingApplicationEvent, &IncomingApplicationEventData{
		Issue:   rec,
		IssueID: id,
	})

	return nil
}

// handleApplicationResponse stores the issued credential on the
// requester side. The credential goes into the wallet before any state
// changes, so a holder failure leaves the record retryable.
func (r *Service) handleApplicationResponse(conn *protocol.Connection, msg *ApplicationResponse) error {
	rec, err := r.store.GetIssueByExchange(msg.ExchangeID, conn.ConnectionID)
	if err != nil {
		return errors.Wrapf(err, "no issue record for exchange %s", msg.ExchangeID)
	}

	if !CanTransition(rec.State, datastore.IssueStateCredentialReceived) {
		return errors.Errorf("cannot receive credential for exchange %s in state %q", msg.ExchangeID, rec.State)
	}

	credentialID, err := r.holder.StoreCredential(msg.Credential)
	if err != nil {
		return errors.Wrap(err, "unable to store received credential")
	}
	logger.Infof("stored credential %s for exchange %s", credentialID, msg.ExchangeID)

	rec.State = datastore.IssueStateCredentialReceived
	rec.CredentialID = credentialID

	_, err = r.store.SaveIssue(rec)
	if err != nil {
		return errors.Wrap(err, "unable to save issue record")
	}

	r.notify(CredentialReceivedEvent, &CredentialReceivedEventData{
		CredentialID: credentialID,
		ConnectionID: conn.ConnectionID,
	})

	return nil
}

// handleConfirmation applies a peer-reported state change to the local
// record. Re-delivery of the current state is a no-op.
func (r *Service) handleConfirmation(conn *protocol.Connection, msg *Confirmation) error {
	if !ValidState(msg.State) {
		return errors.Errorf("confirmation carries unknown state %q", msg.State)
	}

	rec, err := r.store.GetIssueByExchange(msg.ExchangeID, conn.ConnectionID)
	if err != nil {
		return errors.Wrapf(err, "no issue record for exchange %s", msg.ExchangeID)
	}

	if rec.State == msg.State {
		return nil
	}

	if !CanTransition(rec.State, msg.State) {
		return errors.Errorf("exchange %s cannot move from %q to %q", msg.ExchangeID, rec.State, msg.State)
	}

	rec.State = msg.State

	id, err := r.store.SaveIssue(rec)
	if err != nil {
		return errors.Wrap(err, "unable to save issue record")
	}

	r.notify(StateUpdateEvent, &StateUpdateEventData{
		State:   rec.State,
		IssueID: id,
		Issue:   rec,
	})

	return nil
}

func (r *Service) sendConfirmation(responder protocol.Responder, in protocol.Header, exchangeID, state string) error {
	logger.Infof("send confirmation %s for exchange %s", state, exchangeID)

	confirmation := NewConfirmation(exchangeID, state)
	confirmation.AssignThreadFrom(&in)

	err := responder.Reply(confirmation)
	if err != nil {
		return errors.Wrap(err, "unable to send confirmation")
	}

	return nil
}

// notify publishes an advisory event for the controller. Failures are
// logged and swallowed; protocol correctness never depends on delivery.
func (r *Service) notify(event string, data interface{}) {
	evt := &notifier.Notification{
		Topic:     NotificationTopic,
		Event:     event,
		EventData: data,
	}

	message, err := json.Marshal(evt)
	if err != nil {
		logger.Errorf("unexpected error marshalling %s event: %v", event, err)
		return
	}

	err = r.events.Publish(message, "application/json")
	if err != nil {
		logger.Errorf("unable to publish %s event: %v", event, err)
	}
}
