package cart

import (
	"testing"

	"campuskitchen/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// A filter keyed differently than the stored document matches nothing and
// DeleteOne silently succeeds, leaving orphaned carts behind. Pin the
// filter to the Cart struct's actual bson key.
func TestOwnerFilterMatchesStoredKey(t *testing.T) {
	raw, err := bson.Marshal(models.Cart{UserID: "u123"})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	filter := OwnerFilter("u123")
	require.Len(t, filter, 1)
	for key, want := range filter {
		got, ok := doc[key]
		require.True(t, ok, "stored cart document has no %q field", key)
		assert.Equal(t, want, got)
	}
}
