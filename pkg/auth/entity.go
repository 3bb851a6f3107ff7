package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account of the web chat.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
