package repository

import "context"

// Atomic runs fn inside a single database transaction. Repositories
// invoked with the ctx given to fn share that transaction; any error
// rolls everything back.
type Atomic interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
