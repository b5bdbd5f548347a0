package memory

import (
	"context"
	"sync"

	"github.com/damdam-laundry/hris-backend-go/internal/pkg/database"
)

type txKey struct{}

// transactor serializes transactions. There is no rollback: a failed fn leaves
// whatever writes it already made.
type transactor struct {
	mu sync.Mutex
}

func NewTransactor() database.Transactor {
	return &transactor{}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}
