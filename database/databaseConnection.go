package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func DBinstance() *mongo.Client {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	MongoDb := os.Getenv("MONGODB_URL")
	if MongoDb == "" {
		MongoDb = "mongodb://localhost:27017"
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(MongoDb))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Connected to MongoDB")

	return client
}

var Client *mongo.Client = DBinstance()

func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		databaseName = "jewelry"
	}
	return client.Database(databaseName).Collection(collectionName)
}

// CounterIndexModel is the unique index on counter_id. Without it, two
// concurrent first upserts of a day's counter could both insert, and the
// day's sequence would fork.
func CounterIndexModel() mongo.IndexModel {
	unique := true
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "counter_id", Value: 1}},
		Options: &options.IndexOptions{Unique: &unique},
	}
}

// EnsureIndexes creates the indexes the write paths rely on. Called once at
// startup.
func EnsureIndexes(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := OpenCollection(client, "counters").Indexes().CreateOne(ctx, CounterIndexModel())
	if err != nil {
		log.Println("counter index creation failed:", err)
	}
}
