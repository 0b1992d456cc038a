// Package models holds the server-side domain types persisted by the
// repositories.
package models

import "time"

// User is an account. PasswordHash is a bcrypt hash and never leaves the
// server.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	ProfilePic   string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Sentiments is populated only by calls that load the journal.
	Sentiments []SentimentEntry
}

// UserSummary is the non-sensitive projection returned by user listings.
type UserSummary struct {
	ID       string
	FullName string
}
