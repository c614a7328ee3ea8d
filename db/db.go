package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	FinalDaysCollection   *mongo.Collection
	BudgetItemsCollection *mongo.Collection
	ToursCollection       *mongo.Collection
	AIPlansCollection     *mongo.Collection
	Client                *mongo.Client
)

// Connect dials MongoDB and wires the collection handles. Called once from
// main; services receive the handles they need rather than reaching for
// package globals at request time.
func Connect(uri, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	database := client.Database(dbName)
	FinalDaysCollection = database.Collection("finaldays")
	BudgetItemsCollection = database.Collection("budgetitems")
	ToursCollection = database.Collection("tours")
	AIPlansCollection = database.Collection("aiplans")
	return nil
}

// Close disconnects the client; used during graceful shutdown.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
