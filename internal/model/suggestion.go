package model

import "time"

const DefaultSuggestionCategory = "Sugestão"

// Suggestion is a customer-submitted improvement idea.
type Suggestion struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Votes       int       `db:"votes" json:"votes"`
	Category    string    `db:"category" json:"category"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
