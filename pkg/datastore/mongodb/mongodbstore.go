/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mongodb

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/calyptra/verity/pkg/datastore"
)

const (
	servicesC = "Services"
	issuesC   = "ServiceIssues"
	catalogsC = "ServiceDiscovery"
	webhooksC = "Webhooks"
	consentsC = "ConsentsGiven"
)

type Config struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// Provider represents a Mongo DB implementation of the datastore.Provider interface
type Provider struct {
	db    *mongo.Database
	store *mongoDBStore
	sync.Mutex
}

type mongoDBStore struct {
	db *mongo.Database
}

// NewProvider instantiates Provider
func NewProvider(config *Config) (*Provider, error) {
	if config == nil {
		return nil, errors.New("config missing")
	}

	tM := reflect.TypeOf(bson.M{})
	reg := bson.NewRegistryBuilder().RegisterTypeMapEntry(bsontype.EmbeddedDocument, tM).Build()
	clientOpts := options.Client().SetRegistry(reg).ApplyURI(config.URL)

	mongoClient, err := mongo.NewClient(clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "error creating mongo client")
	}

	err = mongoClient.Connect(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to mongo")
	}

	p := &Provider{
		db: mongoClient.Database(config.Database),
	}

	return p, nil
}

// Open returns the store handle backed by this provider's database.
func (p *Provider) Open() (datastore.Store, error) {
	p.Lock()
	defer p.Unlock()

	if p.store == nil {
		p.store = &mongoDBStore{db: p.db}
	}

	return p.store, nil
}

// Close closes the provider.
func (p *Provider) Close() error {
	p.Lock()
	defer p.Unlock()

	p.store = nil

	return p.db.Client().Disconnect(context.Background())
}

func (r *mongoDBStore) InsertService(s *datastore.Service) (string, error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	_, err := r.db.Collection(servicesC).InsertOne(context.Background(), s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", errors.Wrapf(datastore.ErrDuplicate, "service %s", s.ID)
		}

		return "", errors.Wrap(err, "unable to insert service")
	}

	return s.ID, nil
}

func (r *mongoDBStore) ListServices(c *datastore.ServiceCriteria) (*datastore.ServiceList, error) {
	if c == nil {
		c = &datastore.ServiceCriteria{}
	}

	bc := bson.M{}
	if c.Label != "" {
		bc["label"] = c.Label
	}

	opts := &options.FindOptions{}
	if c.PageSize > 0 {
		opts = opts.SetSkip(int64(c.Start)).SetLimit(int64(c.PageSize))
	}

	ctx := context.Background()
	count, err := r.db.Collection(servicesC).CountDocuments(ctx, bc)
	if err != nil {
		return nil, errors.Wrap(err, "unable to count services")
	}

	results, err := r.db.Collection(servicesC).Find(ctx, bc, opts)
	if err != nil {
		return nil, errors.Wrap(err, "error trying to find services")
	}

	out := datastore.ServiceList{
		Count:    int(count),
		Services: []*datastore.Service{},
	}

	err = results.All(ctx, &out.Services)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode services")
	}

	return &out, nil
}

func (r *mongoDBStore) GetService(id string) (*datastore.Service, error) {
	out := &datastore.Service{}

	err := r.db.Collection(servicesC).FindOne(context.Background(), bson.M{"_id": id}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(datastore.ErrNotFound, "service %s", id)
	} else if err != nil {
		return nil, errors.Wrap(err, "unable to find service")
	}

	return out, nil
}

func (r *mongoDBStore) UpdateService(s *datastore.Service) error {
	res, err := r.db.Collection(servicesC).ReplaceOne(context.Background(), bson.M{"_id": s.ID}, s)
	if err != nil {
		return errors.Wrap(err, "unable to update service")
	}

	if res.MatchedCount == 0 {
		return errors.Wrapf(datastore.ErrNotFound, "service %s", s.ID)
	}

	return nil
}

func (r *mongoDBStore) DeleteService(id string) error {
	res, err := r.db.Collection(servicesC).DeleteOne(context.Background(), bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "unable to delete service")
	}

	if res.DeletedCount == 0 {
		return errors.Wrapf(datastore.ErrNotFound, "service %s", id)
	}

	return nil
}

// SaveIssue upserts by the record's digest identity. The replace-by-_id
// write is atomic on the server, so concurrent saves for the same pair
// cannot fork the record.
func (r *mongoDBStore) SaveIssue(i *datastore.ServiceIssueRecord) (string, error) {
	ctx := context.Background()
	now := time.Now().UTC()
	i.UpdatedAt = now

	if i.ID == "" {
		i.ID = datastore.IssueID(i.ConnectionID, i.ExchangeID)

		existing := &datastore.ServiceIssueRecord{}
		err := r.db.Collection(issuesC).FindOne(ctx, bson.M{"_id": i.ID}).Decode(existing)
		if err == nil {
			if existing.Author != i.Author {
				return "", errors.Wrapf(datastore.ErrDuplicate, "issue %s", i.ID)
			}

			i.CreatedAt = existing.CreatedAt
		} else if err == mongo.ErrNoDocuments {
			i.CreatedAt = now
		} else {
			return "", errors.Wrap(err, "unable to check for existing issue")
		}
	}

	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.db.Collection(issuesC).ReplaceOne(ctx, bson.M{"_id": i.ID}, i, opts)
	if err != nil {
		return "", errors.Wrap(err, "unable to save issue")
	}

	return i.ID, nil
}

func (r *mongoDBStore) GetIssue(id string) (*datastore.ServiceIssueRecord, error) {
	out := &datastore.ServiceIssueRecord{}

	err := r.db.Collection(issuesC).FindOne(context.Background(), bson.M{"_id": id}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(datastore.ErrNotFound, "issue %s", id)
	} else if err != nil {
		return nil, errors.Wrap(err, "unable to find issue")
	}

	return out, nil
}

func (r *mongoDBStore) GetIssueByExchange(exchangeID, connectionID string) (*datastore.ServiceIssueRecord, error) {
	return r.GetIssue(datastore.IssueID(connectionID, exchangeID))
}

func (r *mongoDBStore) ListIssues(c *datastore.IssueCriteria) (*datastore.IssueList, error) {
	if c == nil {
		c = &datastore.IssueCriteria{}
	}

	bc := bson.M{}
	for _, f := range []struct{ tag, value string }{
		{"connection_id", c.ConnectionID},
		{"exchange_id", c.ExchangeID},
		{"service_id", c.ServiceID},
		{"service_consent_match_id", c.ConsentMatchID},
		{"state", c.State},
		{"author", c.Author},
		{"label", c.Label},
	} {
		if f.value != "" {
			bc[f.tag] = f.value
		}
	}

	opts := &options.FindOptions{}
	if c.PageSize > 0 {
		opts = opts.SetSkip(int64(c.Start)).SetLimit(int64(c.PageSize))
	}

	ctx := context.Background()
	count, err := r.db.Collection(issuesC).CountDocuments(ctx, bc)
	if err != nil {
		return nil, errors.Wrap(err, "unable to count issues")
	}

	results, err := r.db.Collection(issuesC).Find(ctx, bc, opts)
	if err != nil {
		return nil, errors.Wrap(err, "error trying to find issues")
	}

	out := datastore.IssueList{
		Count:  int(count),
		Issues: []*datastore.ServiceIssueRecord{},
	}

	err = results.All(ctx, &out.Issues)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode issues")
	}

	return &out, nil
}

func (r *mongoDBStore) SaveServiceDiscovery(d *datastore.ServiceDiscovery) error {
	if d.ConnectionID == "" {
		return errors.New("service discovery record requires a connection id")
	}

	d.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.db.Collection(catalogsC).ReplaceOne(context.Background(), bson.M{"_id": d.ConnectionID}, d, opts)
	if err != nil {
		return errors.Wrap(err, "unable to save service discovery")
	}

	return nil
}

func (r *mongoDBStore) GetServiceDiscovery(connectionID string) (*datastore.ServiceDiscovery, error) {
	out := &datastore.ServiceDiscovery{}

	err := r.db.Collection(catalogsC).FindOne(context.Background(), bson.M{"_id": connectionID}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(datastore.ErrNotFound, "service discovery for connection %s", connectionID)
	} else if err != nil {
		return nil, errors.Wrap(err, "unable to find service discovery")
	}

	return out, nil
}

func (r *mongoDBStore) InsertWebhook(w *datastore.Webhook) error {
	_, err := r.db.Collection(webhooksC).InsertOne(context.Background(), w)
	if err != nil {
		return errors.Wrap(err, "unable to insert webhook")
	}

	return nil
}

func (r *mongoDBStore) ListWebhooks(typ string) ([]*datastore.Webhook, error) {
	ctx := context.Background()

	results, err := r.db.Collection(webhooksC).Find(ctx, bson.M{"type": typ})
	if err != nil {
		return nil, errors.Wrap(err, "error trying to find webhooks")
	}

	var out []*datastore.Webhook
	err = results.All(ctx, &out)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode webhooks")
	}

	return out, nil
}

func (r *mongoDBStore) InsertConsentGiven(c *datastore.ConsentGiven) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC()

	_, err := r.db.Collection(consentsC).InsertOne(context.Background(), c)
	if err != nil {
		return "", errors.Wrap(err, "unable to insert consent given")
	}

	return c.ID, nil
}

func (r *mongoDBStore) ListConsentsGiven(connectionID string) ([]*datastore.ConsentGiven, error) {
	ctx := context.Background()

	bc := bson.M{}
	if connectionID != "" {
		bc["connection_id"] = connectionID
	}

	results, err := r.db.Collection(consentsC).Find(ctx, bc)
	if err != nil {
		return nil, errors.Wrap(err, "error trying to find consents given")
	}

	var out []*datastore.ConsentGiven
	err = results.All(ctx, &out)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode consents given")
	}

	return out, nil
}
