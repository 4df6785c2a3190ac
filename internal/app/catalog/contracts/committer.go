package contracts

import (
	"context"

	"github.com/murkotick/catalog-service/internal/pkg/committer"
)

// Committer atomically applies a Spanner mutation plan. ApplyChecked runs
// check in the same transaction first, for writes that depend on a read.
type Committer interface {
	Apply(ctx context.Context, plan *committer.Plan) error
	ApplyChecked(ctx context.Context, plan *committer.Plan, check committer.Precondition) error
}
