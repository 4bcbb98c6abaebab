package helpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestFormatOrderCode(t *testing.T) {
	assert.Equal(t, "ORD-20260831-00001", FormatOrderCode("20260831", 1))
	assert.Equal(t, "ORD-20260831-00042", FormatOrderCode("20260831", 42))
	assert.Equal(t, "ORD-20260831-12345", FormatOrderCode("20260831", 12345))
}

func TestFormatOrderCodeZeroPadding(t *testing.T) {
	code := FormatOrderCode("20260101", 7)
	assert.Len(t, code, len("ORD-YYYYMMDD-")+5)
	assert.Equal(t, "ORD-20260101-00007", code)
}

// Two requests can both attempt the first upsert of a day's counter; the
// unique index rejects one with a duplicate key error and the sequence must
// recover by retrying.
func TestNextOrderCodeRetriesFirstUpsertRace(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("duplicate key retry", func(mt *mtest.T) {
		saved := counterCollection
		counterCollection = mt.Coll
		defer func() { counterCollection = saved }()

		day := time.Now().UTC().Format("20060102")
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    11000,
				Message: "E11000 duplicate key error",
				Name:    "DuplicateKey",
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "counter_id", Value: "order-" + day},
				{Key: "sequence", Value: int64(2)},
			}}),
		)

		code, err := NextOrderCode(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, FormatOrderCode(day, 2), code)
	})
}

func TestFormatOrderCodeSequenceOrdering(t *testing.T) {
	// Lexicographic order of codes within a day must follow the sequence,
	// so sorted listings show creation order.
	var prev string
	for seq := int64(1); seq <= 120; seq++ {
		code := FormatOrderCode("20260831", seq)
		if prev != "" {
			assert.Greater(t, code, prev, fmt.Sprintf("sequence %d", seq))
		}
		prev = code
	}
}
