package uid

import "github.com/google/uuid"

// GenerateMatchID returns a random UUID for an AI-vs-AI match.
func GenerateMatchID() string {
	return uuid.NewString()
}

// IsMatchID reports whether id has the shape GenerateMatchID produces.
func IsMatchID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
