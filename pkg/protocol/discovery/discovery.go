/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package discovery lets connected agents exchange service catalogs: a
// peer asks what services we provide, we reply with the catalog, and
// responses we receive are cached per connection for later application.
package discovery

import (
	"encoding/json"

	"github.com/hyperledger/aries-framework-go/pkg/common/log"
	"github.com/pkg/errors"

	"github.com/calyptra/verity/pkg/datastore"
	"github.com/calyptra/verity/pkg/pds"
	"github.com/calyptra/verity/pkg/protocol"
	"github.com/calyptra/verity/pkg/protocol/issue"
)

var logger = log.New("verity/discovery")

const (
	DiscoveryMsgType         = issue.ProtocolURI + "/discovery"
	DiscoveryResponseMsgType = issue.ProtocolURI + "/discovery-response"
)

type Discovery struct {
	protocol.Header
}

type DiscoveryResponse struct {
	protocol.Header
	Services    []*datastore.Service `json:"services"`
	UsagePolicy string               `json:"usage_policy,omitempty"`
}

func NewDiscovery() *Discovery {
	return &Discovery{Header: protocol.NewHeader(DiscoveryMsgType)}
}

// Service answers discovery requests with the local catalog and caches
// catalogs received from peers.
type Service struct {
	store  datastore.Store
	pstore pds.Store
}

type provider interface {
	GetDatastore() datastore.Store
	GetPDS() pds.Store
}

func New(prov provider) *Service {
	return &Service{
		store:  prov.GetDatastore(),
		pstore: prov.GetPDS(),
	}
}

func (r *Service) Accept(msgType string) bool {
	return msgType == DiscoveryMsgType || msgType == DiscoveryResponseMsgType
}

func (r *Service) HandleInbound(conn *protocol.Connection, msgType string, payload []byte, responder protocol.Responder) error {
	switch msgType {
	case DiscoveryMsgType:
		msg := &Discovery{}
		err := json.Unmarshal(payload, msg)
		if err != nil {
			return errors.Wrap(err, "unable to decode discovery")
		}

		return r.handleDiscovery(conn, msg, responder)

	case DiscoveryResponseMsgType:
		msg := &DiscoveryResponse{}
		err := json.Unmarshal(payload, msg)
		if err != nil {
			return errors.Wrap(err, "unable to decode discovery response")
		}

		return r.handleDiscoveryResponse(conn, msg)
	}

	return errors.Errorf("unsupported message type %s", msgType)
}

func (r *Service) handleDiscovery(conn *protocol.Connection, msg *Discovery, responder protocol.Responder) error {
	logger.Debugf("services discovery from connection %s", conn.ConnectionID)

	list, err := r.store.ListServices(nil)
	if err != nil {
		return errors.Wrap(err, "unable to list services")
	}

	resp := &DiscoveryResponse{
		Header:      protocol.NewHeader(DiscoveryResponseMsgType),
		Services:    list.Services,
		UsagePolicy: r.pstore.UsagePolicy(),
	}
	resp.AssignThreadFrom(&msg.Header)

	err = responder.Reply(resp)
	if err != nil {
		return errors.Wrap(err, "unable to send discovery response")
	}

	return nil
}

func (r *Service) handleDiscoveryResponse(conn *protocol.Connection, msg *DiscoveryResponse) error {
	err := r.store.SaveServiceDiscovery(&datastore.ServiceDiscovery{
		ConnectionID: conn.ConnectionID,
		Services:     msg.Services,
		UsagePolicy:  msg.UsagePolicy,
	})
	if err != nil {
		return errors.Wrap(err, "unable to cache discovered services")
	}

	return nil
}

// Request asks the peer on the given connection for its catalog. The
// answer arrives asynchronously and replaces the cached catalog.
func (r *Service) Request(outbound protocol.Outbound, connectionID string) error {
	err := outbound.Send(NewDiscovery(), connectionID)
	if err != nil {
		return errors.Wrap(err, "unable to send discovery")
	}

	return nil
}

// CachedServices returns the catalog the peer on this connection last
// advertised.
func (r *Service) CachedServices(connectionID string) (*datastore.ServiceDiscovery, error) {
	return r.store.GetServiceDiscovery(connectionID)
}
