package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"school-admin-api/internal/config"
)

type mongoDatabase struct {
	client *mongo.Client
	db     *mongo.Database
}

func OpenMongo(ctx context.Context, cfg config.MongoConfig) (Database, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &mongoDatabase{client: client, db: client.Database(cfg.Name)}, nil
}

func (d *mongoDatabase) Collection(name string) Collection {
	return &mongoCollection{coll: d.db.Collection(name)}
}

func (d *mongoDatabase) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}

func (d *mongoDatabase) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) Name() string {
	return c.coll.Name()
}

func toBSON(filter Filter) bson.M {
	m := bson.M{}
	for k, v := range filter {
		m[k] = v
	}
	return m
}

func mapMongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNoDocuments
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	default:
		return err
	}
}

func (c *mongoCollection) Find(ctx context.Context, filter Filter, results interface{}) error {
	cursor, err := c.coll.Find(ctx, toBSON(filter), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}

func (c *mongoCollection) FindOne(ctx context.Context, filter Filter, result interface{}) error {
	return mapMongoErr(c.coll.FindOne(ctx, toBSON(filter)).Decode(result))
}

// InsertOne refuses documents without a string _id so the driver never
// generates an ObjectID the other backends could not store.
func (c *mongoCollection) InsertOne(ctx context.Context, doc interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	if id, ok := bson.Raw(raw).Lookup("_id").StringValueOK(); !ok || id == "" {
		return ErrMissingID
	}
	_, err = c.coll.InsertOne(ctx, bson.Raw(raw))
	return mapMongoErr(err)
}

func (c *mongoCollection) ReplaceOne(ctx context.Context, filter Filter, doc interface{}) error {
	res, err := c.coll.ReplaceOne(ctx, toBSON(filter), doc)
	if err != nil {
		return mapMongoErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNoDocuments
	}
	return nil
}

func (c *mongoCollection) UpdateOne(ctx context.Context, filter Filter, set Document) (UpdateResult, error) {
	update := bson.M{"$set": bson.M(set)}
	res, err := c.coll.UpdateOne(ctx, toBSON(filter), update)
	if err != nil {
		return UpdateResult{}, mapMongoErr(err)
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (c *mongoCollection) Pull(ctx context.Context, filter Filter, field string, value interface{}) (UpdateResult, error) {
	update := bson.M{"$pull": bson.M{field: value}}
	res, err := c.coll.UpdateOne(ctx, toBSON(filter), update)
	if err != nil {
		return UpdateResult{}, mapMongoErr(err)
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (c *mongoCollection) DeleteOne(ctx context.Context, filter Filter, deleted interface{}) error {
	res := c.coll.FindOneAndDelete(ctx, toBSON(filter))
	if err := res.Err(); err != nil {
		return mapMongoErr(err)
	}
	if deleted == nil {
		return nil
	}
	return res.Decode(deleted)
}
