// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ViewKind identifies the family of cached read views.
type ViewKind string

const (
	ViewKindSingle    ViewKind = "single"
	ViewKindTimeRange ViewKind = "timerange"
	ViewKindCategory  ViewKind = "category"
	ViewKindQuery     ViewKind = "query"
)

// ViewKey is a fully-built cache key. Keys are only constructed through the
// builders below so that populate and invalidate call sites can never drift
// apart on the key scheme: ledger:{ownerID}:{kind}:{discriminator}.
type ViewKey string

const viewKeyNamespace = "ledger"

func buildViewKey(userID uuid.UUID, kind ViewKind, discriminator string) ViewKey {
	return ViewKey(fmt.Sprintf("%s:%s:%s:%s", viewKeyNamespace, userID, kind, discriminator))
}

// SingleViewKey keys the materialized view of one transaction.
func SingleViewKey(userID, transactionID uuid.UUID) ViewKey {
	return buildViewKey(userID, ViewKindSingle, transactionID.String())
}

// TimeRangeViewKey keys a time-range list view (DAY, WEEK or MONTH).
func TimeRangeViewKey(userID uuid.UUID, label string) ViewKey {
	return buildViewKey(userID, ViewKindTimeRange, label)
}

// CategoryViewKey keys the list view of one category.
func CategoryViewKey(userID, categoryID uuid.UUID) ViewKey {
	return buildViewKey(userID, ViewKindCategory, categoryID.String())
}

// QueryViewKey keys a free-text search result view. These entries are
// TTL-expired rather than explicitly invalidated because the set of queries
// affected by a mutation is not enumerable.
func QueryViewKey(userID uuid.UUID, query string) ViewKey {
	return buildViewKey(userID, ViewKindQuery, query)
}

// ViewCache is a key-value store for materialized read views. It holds no
// authoritative data: every entry is reconstructible from the ledger, so
// implementations may degrade (miss on error) but must never block a read
// or mutation on cache availability.
type ViewCache interface {
	// Get returns the cached payload and whether the key was present.
	Get(ctx context.Context, key ViewKey) ([]byte, bool, error)

	// Put stores a payload under the key. A zero ttl means no expiry.
	Put(ctx context.Context, key ViewKey, payload []byte, ttl time.Duration) error

	// Invalidate removes the given keys. Invalidating an absent key is a no-op.
	Invalidate(ctx context.Context, keys ...ViewKey) error
}
