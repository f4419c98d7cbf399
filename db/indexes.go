package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the verticals rely on: uniqueness for
// usernames and idempotency keys, TTL expiry for idempotency records and
// split bills, and sort keys for the hot list endpoints.
func EnsureIndexes(ctx context.Context) error {
	type idx struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}

	all := []idx{
		{UserCollection, []mongo.IndexModel{
			{Keys: bson.M{"username": 1}, Options: options.Index().SetUnique(true).SetName("unique_username")},
		}},
		{IdempotencyCollection, []mongo.IndexModel{
			{Keys: bson.M{"key": 1}, Options: options.Index().SetUnique(true).SetName("unique_key")},
			{Keys: bson.M{"expires_at": 1}, Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at")},
		}},
		{SplitBillsCollection, []mongo.IndexModel{
			{Keys: bson.M{"expires_at": 1}, Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at")},
		}},
		{FeedCollection, []mongo.IndexModel{
			{Keys: bson.M{"created_at": -1}, Options: options.Index().SetName("feed_created_at")},
		}},
		{EventsCollection, []mongo.IndexModel{
			{Keys: bson.M{"date": 1}, Options: options.Index().SetName("event_date")},
		}},
		{LoansCollection, []mongo.IndexModel{
			{Keys: bson.M{"borrower.userid": 1, "created_at": -1}, Options: options.Index().SetName("loan_borrower")},
		}},
	}

	for _, i := range all {
		if _, err := i.coll.Indexes().CreateMany(ctx, i.models); err != nil {
			return err
		}
	}
	return nil
}
