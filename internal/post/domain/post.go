// Package domain defines the post domain entities and types.
package domain

import (
	"github.com/allisson/analytics/internal/errors"
)

// Post represents an article from the external posts feed.
type Post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Post-specific error definitions.
var (
	// ErrPostNotFound indicates the upstream feed has no post with that ID.
	ErrPostNotFound = errors.Wrap(errors.ErrNotFound, "post not found")

	// ErrUpstreamUnavailable indicates the upstream feed could not be reached
	// or returned an unexpected response.
	ErrUpstreamUnavailable = errors.New("posts feed unavailable")
)
