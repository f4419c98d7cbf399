package models

import "time"

// IdempotencyRecord backs the Idempotency-Key middleware. A unique index on
// key makes the first writer win; a TTL index on expires_at cleans up.
type IdempotencyRecord struct {
	Key         string          `bson:"key"`
	Method      string          `bson:"method"`
	Path        string          `bson:"path"`
	UserID      string          `bson:"user_id"`
	RequestHash string          `bson:"request_hash"`
	Response    *CachedResponse `bson:"response,omitempty"`
	CreatedAt   time.Time       `bson:"created_at"`
	ExpiresAt   time.Time       `bson:"expires_at"`
}

// CachedResponse is the stored outcome of the first request with a key,
// replayed verbatim to duplicates. Body holds the raw JSON bytes the handler
// wrote, so the replay round-trips through bson without type surprises.
type CachedResponse struct {
	Status int    `bson:"status"`
	Body   string `bson:"body"`
}
