package id

import "github.com/google/uuid"

// GenerateID creates a unique identifier for candidates, questions and chat
// messages.
func GenerateID() string {
	return uuid.NewString()
}
