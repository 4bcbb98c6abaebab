package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCounterIndexModelIsUnique(t *testing.T) {
	model := CounterIndexModel()

	require.NotNil(t, model.Options)
	require.NotNil(t, model.Options.Unique)
	assert.True(t, *model.Options.Unique)

	keys, ok := model.Keys.(bson.D)
	require.True(t, ok)
	require.Len(t, keys, 1)
	assert.Equal(t, "counter_id", keys[0].Key)
	assert.Equal(t, 1, keys[0].Value)
}
