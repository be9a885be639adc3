/*
Copyright Calyptra Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mongodb

import (
	"context"
	"reflect"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/calyptra/verity/pkg/pds"
)

const payloadsC = "Payloads"

type Config struct {
	URL         string `mapstructure:"url"`
	Database    string `mapstructure:"database"`
	UsagePolicy string `mapstructure:"usagePolicy"`
}

type payload struct {
	DRI       string `bson:"_id"`
	SchemaDRI string `bson:"schema_dri,omitempty"`
	Body      []byte `bson:"body"`
}

// Store is a Mongo DB-backed content-addressed payload store.
type Store struct {
	db     *mongo.Database
	policy string
}

func New(config *Config) (*Store, error) {
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

	return &Store{
		db:     mongoClient.Database(config.Database),
		policy: config.UsagePolicy,
	}, nil
}

func (r *Store) Save(body []byte, schemaDRI string) (string, error) {
	dri := pds.DRI(body)

	p := &payload{
		DRI:       dri,
		SchemaDRI: schemaDRI,
		Body:      body,
	}

	// Same content, same address: replacing is a no-op in effect.
	opts := options.Replace().SetUpsert(true)
	_, err := r.db.Collection(payloadsC).ReplaceOne(context.Background(), bson.M{"_id": dri}, p, opts)
	if err != nil {
		return "", errors.Wrap(err, "unable to save payload")
	}

	return dri, nil
}

func (r *Store) Load(dri string) ([]byte, error) {
	out := &payload{}

	err := r.db.Collection(payloadsC).FindOne(context.Background(), bson.M{"_id": dri}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(pds.ErrNotFound, "dri %s", dri)
	} else if err != nil {
		return nil, errors.Wrap(err, "unable to load payload")
	}

	return out.Body, nil
}

func (r *Store) UsagePolicy() string {
	return r.policy
}
