package helpers

import (
	"context"
	"fmt"
	"time"

	"go-jewelry-order-management/database"
	"go-jewelry-order-management/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var counterCollection *mongo.Collection = database.OpenCollection(database.Client, "counters")

// NextOrderCode reserves the next order code for today. The per-day sequence
// is a single atomic $inc with upsert, so concurrent creations can never
// observe the same value.
func NextOrderCode(ctx context.Context) (string, error) {
	day := time.Now().UTC().Format("20060102")
	seq, err := nextSequence(ctx, "order-"+day)
	if err != nil {
		return "", err
	}
	return FormatOrderCode(day, seq), nil
}

func FormatOrderCode(day string, sequence int64) string {
	return fmt.Sprintf("ORD-%s-%05d", day, sequence)
}

// OtpSendCount bumps and returns the number of OTP sends for a phone within
// the current hour. Shares the counter collection with order codes.
func OtpSendCount(ctx context.Context, phone string) (int64, error) {
	hour := time.Now().UTC().Format("2006010215")
	return nextSequence(ctx, "otp-"+phone+"-"+hour)
}

func nextSequence(ctx context.Context, counterId string) (int64, error) {
	filter := bson.M{"counter_id": counterId}
	update := bson.M{
		"$inc": bson.M{"sequence": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	err := counterCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// two requests can race the first upsert of a key; the unique
		// index rejects the loser, which retries against the document
		// the winner inserted
		err = counterCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	}
	if err != nil {
		return 0, err
	}
	return counter.Sequence, nil
}
