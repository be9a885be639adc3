/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mem

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/calyptra/verity/pkg/datastore"
)

// Provider is an in-memory implementation of the datastore.Provider
// interface, used for tests and single-process deployments.
type Provider struct {
	store *memStore
	once  sync.Once
}

type memStore struct {
	lock     sync.RWMutex
	services map[string]*datastore.Service
	issues   map[string]*datastore.ServiceIssueRecord
	catalogs map[string]*datastore.ServiceDiscovery
	webhooks []*datastore.Webhook
	consents map[string]*datastore.ConsentGiven
}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Open() (datastore.Store, error) {
	p.once.Do(func() {
		p.store = &memStore{
			services: map[string]*datastore.Service{},
			issues:   map[string]*datastore.ServiceIssueRecord{},
			catalogs: map[string]*datastore.ServiceDiscovery{},
			consents: map[string]*datastore.ConsentGiven{},
		}
	})

	return p.store, nil
}

func (p *Provider) Close() error {
	return nil
}

func (r *memStore) InsertService(s *datastore.Service) (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	if _, ok := r.services[s.ID]; ok {
		return "", datastore.ErrDuplicate
	}

	cp := *s
	r.services[s.ID] = &cp

	return s.ID, nil
}

func (r *memStore) ListServices(c *datastore.ServiceCriteria) (*datastore.ServiceList, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if c == nil {
		c = &datastore.ServiceCriteria{}
	}

	out := &datastore.ServiceList{}
	for _, s := range r.services {
		if c.Label != "" && s.Label != c.Label {
			continue
		}

		cp := *s
		out.Services = append(out.Services, &cp)
	}
	out.Count = len(out.Services)

	return out, nil
}

func (r *memStore) GetService(id string) (*datastore.Service, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	s, ok := r.services[id]
	if !ok {
		return nil, errors.Wrapf(datastore.ErrNotFound, "service %s", id)
	}

	cp := *s

	return &cp, nil
}

func (r *memStore) UpdateService(s *datastore.Service) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.services[s.ID]; !ok {
		return errors.Wrapf(datastore.ErrNotFound, "service %s", s.ID)
	}

	cp := *s
	r.services[s.ID] = &cp

	return nil
}

func (r *memStore) DeleteService(id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.services[id]; !ok {
		return errors.Wrapf(datastore.ErrNotFound, "service %s", id)
	}

	delete(r.services, id)

	return nil
}

// SaveIssue implements create-or-update keyed by the record's digest
// identity. The id is computed only when the record does not carry one
// yet; a second creation attempt for the same (connection, exchange)
// pair lands on the existing record instead of forking a sibling.
func (r *memStore) SaveIssue(i *datastore.ServiceIssueRecord) (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	now := time.Now().UTC()
	i.UpdatedAt = now

	if i.ID == "" {
		i.ID = datastore.IssueID(i.ConnectionID, i.ExchangeID)

		if existing, ok := r.issues[i.ID]; ok {
			if existing.Author != i.Author {
				return "", errors.Wrapf(datastore.ErrDuplicate, "issue %s", i.ID)
			}

			i.CreatedAt = existing.CreatedAt
		} else {
			i.CreatedAt = now
		}
	} else if existing, ok := r.issues[i.ID]; ok {
		i.CreatedAt = existing.CreatedAt
	}

	cp := *i
	r.issues[i.ID] = &cp

	return i.ID, nil
}

func (r *memStore) GetIssue(id string) (*datastore.ServiceIssueRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	rec, ok := r.issues[id]
	if !ok {
		return nil, errors.Wrapf(datastore.ErrNotFound, "issue %s", id)
	}

	cp := *rec

	return &cp, nil
}

func (r *memStore) GetIssueByExchange(exchangeID, connectionID string) (*datastore.ServiceIssueRecord, error) {
	return r.GetIssue(datastore.IssueID(connectionID, exchangeID))
}

func (r *memStore) ListIssues(c *datastore.IssueCriteria) (*datastore.IssueList, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if c == nil {
		c = &datastore.IssueCriteria{}
	}

	out := &datastore.IssueList{}
	for _, rec := range r.issues {
		if !c.Matches(rec) {
			continue
		}

		cp := *rec
		out.Issues = append(out.Issues, &cp)
	}
	out.Count = len(out.Issues)

	return out, nil
}

func (r *memStore) SaveServiceDiscovery(d *datastore.ServiceDiscovery) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if d.ConnectionID == "" {
		return errors.New("service discovery record requires a connection id")
	}

	d.UpdatedAt = time.Now().UTC()

	cp := *d
	r.catalogs[d.ConnectionID] = &cp

	return nil
}

func (r *memStore) GetServiceDiscovery(connectionID string) (*datastore.ServiceDiscovery, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	d, ok := r.catalogs[connectionID]
	if !ok {
		return nil, errors.Wrapf(datastore.ErrNotFound, "service discovery for connection %s", connectionID)
	}

	cp := *d

	return &cp, nil
}

func (r *memStore) InsertWebhook(w *datastore.Webhook) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	cp := *w
	r.webhooks = append(r.webhooks, &cp)

	return nil
}

func (r *memStore) ListWebhooks(typ string) ([]*datastore.Webhook, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var out []*datastore.Webhook
	for _, w := range r.webhooks {
		if w.Type == typ {
			cp := *w
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (r *memStore) InsertConsentGiven(c *datastore.ConsentGiven) (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC()

	cp := *c
	r.consents[c.ID] = &cp

	return c.ID, nil
}

func (r *memStore) ListConsentsGiven(connectionID string) ([]*datastore.ConsentGiven, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var out []*datastore.ConsentGiven
	for _, c := range r.consents {
		if connectionID != "" && c.ConnectionID != connectionID {
			continue
		}

		cp := *c
		out = append(out, &cp)
	}

	return out, nil
}
