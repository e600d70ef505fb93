package datagateway

import "context"

// Tx is a unit of work on the journal. Commit and Rollback are no-ops when no
// transaction is open, so a deferred Rollback after Commit is safe.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
