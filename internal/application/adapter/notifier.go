// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// LimitNotifier alerts a user that their monthly spending limit has been
// crossed. Delivery is best effort and asynchronous: implementations enqueue
// the alert and return; a failure here never rolls back the ledger mutation
// that triggered it.
type LimitNotifier interface {
	SendLimitReachedEmail(ctx context.Context, name, email string) error
}
