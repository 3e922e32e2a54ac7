package repository

import "context"

// TxManager runs a function inside a single database transaction. Repository
// calls made with the context passed to fn join that transaction; fn returning
// an error rolls the whole unit back.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
