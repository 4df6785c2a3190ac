package committer

import (
	"context"
	"errors"

	"cloud.google.com/go/spanner"
)

// ErrNoClient is returned when a non-empty plan reaches an adapter without
// a Spanner client.
var ErrNoClient = errors.New("committer: spanner client is nil")

// Precondition runs inside the write transaction before the plan is
// buffered. Returning an error aborts the transaction.
type Precondition func(ctx context.Context, tx *spanner.ReadWriteTransaction) error

// Adapter applies plans against a Spanner client.
type Adapter struct {
	client *spanner.Client
}

func NewAdapter(client *spanner.Client) *Adapter {
	return &Adapter{client: client}
}

// Apply buffers every mutation of the plan inside one read-write transaction.
// Driver errors are returned unwrapped so callers can inspect spanner.ErrCode.
func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	return a.ApplyChecked(ctx, plan, nil)
}

// ApplyChecked is Apply with reads that must hold at commit time. The check
// sees the same snapshot the mutations commit against, so a row it found
// cannot vanish before the write lands.
func (a *Adapter) ApplyChecked(ctx context.Context, plan *Plan, check Precondition) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	if a.client == nil {
		return ErrNoClient
	}

	opts := spanner.TransactionOptions{TransactionTag: plan.Tag()}
	_, err := a.client.ReadWriteTransactionWithOptions(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		if check != nil {
			if err := check(ctx, tx); err != nil {
				return err
			}
		}
		return tx.BufferWrite(plan.Mutations())
	}, opts)
	return err
}
