/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package protocol holds the message envelope and the transport-facing
// interfaces the verifiable-services protocol services are written
// against. The agent runtime that owns connections and message delivery
// lives outside this module; it feeds inbound messages to a Dispatcher
// and supplies Outbound/Responder implementations.
package protocol

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hyperledger/aries-framework-go/pkg/didcomm/protocol/decorator"
	"github.com/pkg/errors"
)

// Header carries the common DIDComm message decorations.
type Header struct {
	Type   string            `json:"@type"`
	ID     string            `json:"@id"`
	Thread *decorator.Thread `json:"~thread,omitempty"`
}

func NewHeader(typ string) Header {
	return Header{
		Type: typ,
		ID:   uuid.New().String(),
	}
}

// AssignThreadFrom threads a reply onto the inbound message's thread,
// falling back to the inbound message id when no thread is present.
func (r *Header) AssignThreadFrom(in *Header) {
	thid := in.ID
	if in.Thread != nil && in.Thread.ID != "" {
		thid = in.Thread.ID
	}

	r.Thread = &decorator.Thread{ID: thid}
}

// Connection identifies the channel an inbound message arrived on.
type Connection struct {
	ConnectionID string
	TheirDID     string
	TheirLabel   string
}

//go:generate mockery -name=Outbound
type Outbound interface {
	// Send delivers msg over the named connection on a new thread.
	Send(msg interface{}, connectionID string) error
}

//go:generate mockery -name=Responder
type Responder interface {
	// Reply delivers msg on the thread of the message being handled.
	Reply(msg interface{}) error
}

// Handler is a protocol service able to process some message types.
type Handler interface {
	Accept(msgType string) bool
	HandleInbound(conn *Connection, msgType string, payload []byte, responder Responder) error
}

// Dispatcher routes raw inbound messages to the protocol service that
// accepts their type. Message kinds are matched explicitly; there is no
// dynamic handler registry.
type Dispatcher struct {
	services []Handler
}

func NewDispatcher(services ...Handler) *Dispatcher {
	return &Dispatcher{services: services}
}

// Dispatch peeks the message type and hands the payload to the first
// service accepting it. Each call is an independent unit of work.
func (r *Dispatcher) Dispatch(conn *Connection, payload []byte, responder Responder) error {
	peek := &Header{}
	err := json.Unmarshal(payload, peek)
	if err != nil {
		return errors.Wrap(err, "unable to decode message header")
	}

	if peek.Type == "" {
		return errors.New("inbound message carries no @type")
	}

	for _, svc := range r.services {
		if svc.Accept(peek.Type) {
			return svc.HandleInbound(conn, peek.Type, payload, responder)
		}
	}

	return errors.Errorf("unsupported message type %s", peek.Type)
}
