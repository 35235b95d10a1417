// pkg/utils/session.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewSessionID returns a fresh browser session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidateSessionID reports whether a cookie value looks like one of ours.
func ValidateSessionID(sessionID string) bool {
	_, err := uuid.Parse(sessionID)
	return err == nil
}

// GenerateRandomID generates a random hex ID of the given length
func GenerateRandomID(length int) string {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based ID
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)[:length]
}
