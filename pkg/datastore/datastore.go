/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package datastore

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned when a record does not exist in the store.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert would create a second record
	// for an identity that already exists with different content.
	ErrDuplicate = errors.New("duplicate record")
)

// Provider storage provider interface
type Provider interface {
	// Open opens the store and returns the handle
	Open() (Store, error)

	// Close closes the store created under this store provider
	Close() error
}

//go:generate mockery -name=Store
type Store interface {
	InsertService(s *Service) (string, error)
	ListServices(c *ServiceCriteria) (*ServiceList, error)
	GetService(id string) (*Service, error)
	UpdateService(s *Service) error
	DeleteService(id string) error

	// SaveIssue persists a service issue record with create-or-update
	// semantics keyed by the record's digest identity.
	SaveIssue(i *ServiceIssueRecord) (string, error)
	GetIssue(id string) (*ServiceIssueRecord, error)
	GetIssueByExchange(exchangeID, connectionID string) (*ServiceIssueRecord, error)
	ListIssues(c *IssueCriteria) (*IssueList, error)

	// SaveServiceDiscovery replaces the cached catalog for the
	// record's connection.
	SaveServiceDiscovery(d *ServiceDiscovery) error
	GetServiceDiscovery(connectionID string) (*ServiceDiscovery, error)

	InsertWebhook(w *Webhook) error
	ListWebhooks(typ string) ([]*Webhook, error)

	InsertConsentGiven(c *ConsentGiven) (string, error)
	ListConsentsGiven(connectionID string) ([]*ConsentGiven, error)
}
