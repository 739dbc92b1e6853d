package globals

import (
	"context"
	"os"
)

var JwtSecret = jwtSecretFromEnv()

func jwtSecretFromEnv() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("campus-kitchen-dev-secret")
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var Ctx = context.Background()
