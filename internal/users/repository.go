package users

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the key-value persistence port for user records, keyed by
// Auth0 subject ID. Records are raw maps: fields this service does not
// know about must survive a Get/Set round-trip untouched. Get returns
// (nil, nil) when no record exists.
type Store interface {
	Get(ctx context.Context, sub string) (map[string]interface{}, error)
	Set(ctx context.Context, sub string, record map[string]interface{}) error
	List(ctx context.Context) ([]map[string]interface{}, error)
	Ping(ctx context.Context) error
}

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (s *MongoStore) Get(ctx context.Context, sub string) (map[string]interface{}, error) {
	var doc bson.M
	if err := s.col.FindOne(ctx, bson.M{"auth0_id": sub}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	delete(doc, "_id")
	return doc, nil
}

func (s *MongoStore) Set(ctx context.Context, sub string, record map[string]interface{}) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.col.ReplaceOne(ctx, bson.M{"auth0_id": sub}, bson.M(record), opts)
	return err
}

func (s *MongoStore) List(ctx context.Context) ([]map[string]interface{}, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []map[string]interface{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		delete(doc, "_id")
		out = append(out, doc)
	}
	return out, cur.Err()
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.col.Database().Client().Ping(ctx, nil)
}
