package shared

import (
	"context"
	"errors"
	"fmt"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-service/internal/pkg/slug"
)

const (
	// MaxSaveAttempts bounds how often a save is retried after losing a slug
	// race to a concurrent writer.
	MaxSaveAttempts = 100
	// maxProbe bounds the existence probe for one candidate base.
	maxProbe = 10000
)

// ErrSlugExhausted means no free slug was found within the attempt limits.
var ErrSlugExhausted = errors.New("no free slug found")

// SaveWithUniqueSlugs assigns a slug to every pending translation of e and
// saves it. Candidates are probed against the read model first; the store's
// unique index on (kind, slug, language) decides races, and a rejected save
// is retried with the next suffix.
func SaveWithUniqueSlugs(ctx context.Context, store contracts.EntityStore, rm contracts.ReadModel, e *domain.Entity) error {
	pending := e.PendingTranslations()
	if len(pending) == 0 {
		return store.Save(ctx, e)
	}

	next := make(map[string]int, len(pending))
	for attempt := 0; attempt < MaxSaveAttempts; attempt++ {
		for _, t := range pending {
			base := slug.Make(t.Name, e.Kind().String())
			candidate, n, err := freeSlug(ctx, rm, e.Kind(), base, t.LanguageCode, next[t.LanguageCode])
			if err != nil {
				return err
			}
			next[t.LanguageCode] = n
			e.AssignSlug(t.LanguageCode, candidate)
		}

		err := store.Save(ctx, e)
		if !errors.Is(err, contracts.ErrSlugTaken) {
			return err
		}
		// The store does not say which translation collided, so every
		// pending language moves on to its next suffix.
		for _, t := range pending {
			next[t.LanguageCode]++
		}
	}
	return fmt.Errorf("%w after %d attempts", ErrSlugExhausted, MaxSaveAttempts)
}

// freeSlug returns the first candidate from suffix n on that the read model
// does not know, together with the suffix it used.
func freeSlug(ctx context.Context, rm contracts.ReadModel, kind domain.Kind, base, lang string, n int) (string, int, error) {
	for i := 0; i < maxProbe; i, n = i+1, n+1 {
		candidate := slug.WithSuffix(base, n)
		taken, err := rm.SlugExists(ctx, kind.String(), candidate, lang)
		if err != nil {
			return "", 0, fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, n, nil
		}
	}
	return "", 0, fmt.Errorf("%w for %q", ErrSlugExhausted, base)
}
