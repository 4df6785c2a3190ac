// Package spannerstore is the Cloud Spanner catalog store. Writes are
// mutation plans built by the repo package and applied by the committer.
package spannerstore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-service/internal/app/catalog/repo"
	"github.com/murkotick/catalog-service/internal/models/m_entity"
	"github.com/murkotick/catalog-service/internal/pkg/committer"
)

var (
	_ contracts.EntityStore  = (*Store)(nil)
	_ contracts.ReadModel    = (*Store)(nil)
	_ contracts.OutboxWriter = (*Store)(nil)
	_ contracts.OutboxAcker  = (*Store)(nil)
)

type Store struct {
	client     *spanner.Client
	entityRepo *repo.EntityRepo
	outboxRepo *repo.OutboxRepo
	committer  contracts.Committer
}

func New(client *spanner.Client) *Store {
	return &Store{
		client:     client,
		entityRepo: repo.NewEntityRepo(),
		outboxRepo: repo.NewOutboxRepo(),
		committer:  committer.NewAdapter(client),
	}
}

// Open creates a client for db, e.g.
// projects/p/instances/i/databases/catalog.
func Open(ctx context.Context, db string) (*Store, error) {
	client, err := spanner.NewClient(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("spanner client: %w", err)
	}
	return New(client), nil
}

func (s *Store) Client() *spanner.Client {
	return s.client
}

func (s *Store) Save(ctx context.Context, e *domain.Entity) error {
	plan := committer.NewPlan("catalog.save." + e.Kind().String())
	plan.Add(s.entityRepo.InsertMut(e))
	plan.Add(s.entityRepo.UpdateMut(e))
	plan.Add(s.entityRepo.TranslationMuts(e)...)

	if err := s.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("save %s %s: %w", e.Kind(), e.ID(), mapWriteError(err))
	}
	return nil
}

// Delete checks the kind inside the transaction because delete mutations
// succeed silently on missing rows.
func (s *Store) Delete(ctx context.Context, kind domain.Kind, id string) error {
	plan := committer.NewPlan("catalog.delete." + kind.String())
	plan.Add(s.entityRepo.DeleteMut(id))

	err := s.committer.ApplyChecked(ctx, plan, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		row, err := tx.ReadRow(ctx, m_entity.TableName, spanner.Key{id}, []string{m_entity.ColKind})
		if spanner.ErrCode(err) == codes.NotFound {
			return contracts.ErrEntityNotFound
		}
		if err != nil {
			return err
		}
		var k string
		if err := row.Column(0, &k); err != nil {
			return err
		}
		if k != kind.String() {
			return contracts.ErrEntityNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, mapDeleteError(err))
	}
	return nil
}

func (s *Store) AppendOutbox(ctx context.Context, e contracts.OutboxEvent) error {
	plan := committer.NewPlan("catalog.outbox")
	plan.Add(s.outboxRepo.InsertMut(&e))
	if err := s.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("append outbox event %s: %w", e.EventID, err)
	}
	return nil
}

func (s *Store) MarkOutboxProcessed(ctx context.Context, eventID string, at time.Time) error {
	plan := committer.NewPlan("catalog.outbox.ack")
	plan.Add(s.outboxRepo.MarkProcessedMut(eventID, at))
	err := s.committer.Apply(ctx, plan)
	if spanner.ErrCode(err) == codes.NotFound {
		err = contracts.ErrOutboxEventNotFound
	}
	if err != nil {
		return fmt.Errorf("ack outbox event %s: %w", eventID, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	iter := s.client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	defer iter.Stop()
	_, err := iter.Next()
	return err
}

func (s *Store) Close() error {
	s.client.Close()
	return nil
}
