package repository

import "context"

// TransactionManager runs a function inside a database transaction. The
// context passed to fn carries the transaction; repositories invoked with
// it join the transaction, and any error rolls the whole unit back.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
