package shared

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// slugBook is a store and read model that only knows about slugs.
// Hidden slugs are invisible to the probe but still rejected on save,
// which is what a concurrent writer committing in between looks like.
type slugBook struct {
	contracts.ReadModel
	mu     sync.Mutex
	taken  map[string]bool
	hidden map[string]bool
	saves  int
}

func newSlugBook() *slugBook {
	return &slugBook{taken: map[string]bool{}, hidden: map[string]bool{}}
}

func (b *slugBook) SlugExists(_ context.Context, kind, slug, lang string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.taken[kind+"/"+slug+"/"+lang], nil
}

func (b *slugBook) Save(_ context.Context, e *domain.Entity) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saves++
	for _, t := range e.PendingTranslations() {
		k := e.Kind().String() + "/" + t.Slug + "/" + t.LanguageCode
		if b.taken[k] || b.hidden[k] {
			return contracts.ErrSlugTaken
		}
	}
	for _, t := range e.PendingTranslations() {
		b.taken[e.Kind().String()+"/"+t.Slug+"/"+t.LanguageCode] = true
	}
	return nil
}

func (b *slugBook) Delete(context.Context, domain.Kind, string) error {
	return nil
}

func category(t *testing.T, name string) *domain.Entity {
	t.Helper()
	e, err := domain.NewEntity("id-"+name, domain.KindCategory, domain.NewEntityParams{Name: name, LanguageCode: "en"}, now)
	require.NoError(t, err)
	return e
}

func slugOf(t *testing.T, e *domain.Entity) string {
	t.Helper()
	tr, ok := e.Translation("en")
	require.True(t, ok)
	return tr.Slug
}

func TestSaveWithUniqueSlugs_ProbesSuffixes(t *testing.T) {
	b := newSlugBook()
	b.taken["category/garden-tools/en"] = true
	b.taken["category/garden-tools-1/en"] = true

	e := category(t, "Garden Tools")
	require.NoError(t, SaveWithUniqueSlugs(context.Background(), b, b, e))
	assert.Equal(t, "garden-tools-2", slugOf(t, e))
	assert.Equal(t, 1, b.saves)
}

func TestSaveWithUniqueSlugs_RetriesLostRace(t *testing.T) {
	b := newSlugBook()
	b.hidden["category/tools/en"] = true

	e := category(t, "Tools")
	require.NoError(t, SaveWithUniqueSlugs(context.Background(), b, b, e))
	assert.Equal(t, "tools-1", slugOf(t, e))
	assert.Equal(t, 2, b.saves)

	ev, ok := e.DomainEvents()[0].(*domain.EntityCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "tools-1", ev.Slug)
}

func TestSaveWithUniqueSlugs_GivesUp(t *testing.T) {
	b := newSlugBook()
	for i := 0; i <= MaxSaveAttempts; i++ {
		s := "tools"
		if i > 0 {
			s += "-" + strconv.Itoa(i)
		}
		b.hidden["category/"+s+"/en"] = true
	}

	err := SaveWithUniqueSlugs(context.Background(), b, b, category(t, "Tools"))
	assert.ErrorIs(t, err, ErrSlugExhausted)
	assert.Equal(t, MaxSaveAttempts, b.saves)
}

func TestSaveWithUniqueSlugs_FallbackSlug(t *testing.T) {
	b := newSlugBook()
	e := category(t, "!!!")
	require.NoError(t, SaveWithUniqueSlugs(context.Background(), b, b, e))
	assert.Equal(t, "category", slugOf(t, e))
}
