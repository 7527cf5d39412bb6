package model

import "github.com/google/uuid"

// Id prefixes per entity kind.
const (
	BoardPrefix = "board"
	ListPrefix  = "list"
	CardPrefix  = "card"
)

// NewID returns a fresh opaque id such as "card-1b4e28ba-2fa1-4d3b-a3f5-ef1a5c3f7e21".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
