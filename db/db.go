package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection        *mongo.Collection
	GuildCollection       *mongo.Collection
	EventsCollection      *mongo.Collection
	MerchantsCollection   *mongo.Collection
	TradesCollection      *mongo.Collection
	TradeItemsCollection  *mongo.Collection
	LoansCollection       *mongo.Collection
	DonationsCollection   *mongo.Collection
	SplitBillsCollection  *mongo.Collection
	TournamentsCollection *mongo.Collection
	FeedCollection        *mongo.Collection
	IdempotencyCollection *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	// .env is optional; system environment wins
	_ = godotenv.Load()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("guilddb")
	UserCollection = database.Collection("users")
	GuildCollection = database.Collection("guild")
	EventsCollection = database.Collection("events")
	MerchantsCollection = database.Collection("trademerchants")
	TradesCollection = database.Collection("trades")
	TradeItemsCollection = database.Collection("tradeitems")
	LoansCollection = database.Collection("loans")
	DonationsCollection = database.Collection("donations")
	SplitBillsCollection = database.Collection("splitbills")
	TournamentsCollection = database.Collection("tournaments")
	FeedCollection = database.Collection("feed")
	IdempotencyCollection = database.Collection("idempotency")
}
