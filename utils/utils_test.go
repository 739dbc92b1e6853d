package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderID(t *testing.T) {
	now := time.Date(2026, 1, 11, 12, 0, 0, 0, time.UTC)

	id := GenerateOrderID(now)

	parts := strings.SplitN(id, "-", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "order", parts[0])
	assert.Equal(t, "1768132800000", parts[1])
	assert.Len(t, parts[2], 8)
	assert.Equal(t, strings.ToLower(parts[2]), parts[2], "suffix is lowercase")
}

func TestGenerateIDLength(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := GenerateID(10)
		assert.Len(t, id, 10)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1, "ids should not collide constantly")
}
