package domain

import "time"

// Question is a post authored by a user. AuthorID is immutable after
// creation; only Content and UpdatedAt change on edit.
type Question struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
