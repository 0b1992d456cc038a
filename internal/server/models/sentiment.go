package models

import "time"

// DateLayout is the wire and storage format of a sentiment entry date.
const DateLayout = "2006-01-02"

// SentimentEntry is one dated journal record owned by a user.
type SentimentEntry struct {
	Date       time.Time
	Sentiment  string
	Confidence float64
}
