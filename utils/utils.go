package utils

import (
	"fmt"
	rndm "math/rand"
	"time"

	"github.com/google/uuid"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")
var lowerRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateID creates a random lowercase id of length n.
func GenerateID(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = lowerRunes[rndm.Intn(len(lowerRunes))]
	}
	return string(b)
}

// GenerateOrderID builds an order id from the checkout timestamp plus a
// random suffix. Practically unique, not guaranteed unique.
func GenerateOrderID(now time.Time) string {
	return fmt.Sprintf("order-%d-%s", now.UnixMilli(), GenerateID(8))
}

func GetUUID() string {
	return uuid.New().String()
}
