package domain

// Identity carries the acting user's identifier for the duration of one
// request. It is derived from a verified bearer token and never persisted.
type Identity struct {
	UserID string
}
