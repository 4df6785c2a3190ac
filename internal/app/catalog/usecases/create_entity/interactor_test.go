package create_entity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/shared"
	"github.com/murkotick/catalog-service/internal/pkg/clock"
	"github.com/murkotick/catalog-service/internal/store/sqlitestore"
	"github.com/murkotick/catalog-service/internal/testsupport"
)

type fixture struct {
	store *sqlitestore.Store
	inv   *testsupport.RecordingInvalidator
	pub   *testsupport.RecordingPublisher
	uc    *Interactor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: testsupport.NewSQLiteStore(t),
		inv:   &testsupport.RecordingInvalidator{},
		pub:   &testsupport.RecordingPublisher{},
	}
	fx := shared.Effects{Invalidator: f.inv, Publisher: f.pub, Logger: testsupport.DiscardLogger()}
	clk := clock.NewFake(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	f.uc = NewInteractor(f.store, f.store, fx, clk)
	return f
}

func (f *fixture) category(t *testing.T, name string) string {
	t.Helper()
	id, err := f.uc.Execute(context.Background(), Request{Kind: domain.KindCategory, Name: name, LanguageCode: "en"})
	require.NoError(t, err)
	return id
}

func TestCreate_Product(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catID := f.category(t, "Tools")

	id, err := f.uc.Execute(ctx, Request{
		Kind: domain.KindProduct, Name: "Café Crème", LanguageCode: "EN",
		Description: "  hot  ", ParentID: catID, Price: domain.NewMoney(999, 100),
	})
	require.NoError(t, err)

	rec, err := f.store.GetEntity(ctx, "product", id)
	require.NoError(t, err)
	require.Len(t, rec.Translations, 1)
	assert.Equal(t, "en", rec.Translations[0].LanguageCode)
	assert.Equal(t, "cafe-creme", rec.Translations[0].Slug)
	assert.Equal(t, "hot", rec.Translations[0].Description)
	assert.Equal(t, catID, rec.ParentID)

	assert.Equal(t, []string{"category::", "product::"}, f.inv.Prefixes())
	assert.Equal(t, []string{"catalog.category.created", "catalog.product.created"}, f.pub.Types())
	assert.Equal(t, id, f.pub.Events()[1].AggregateID)
}

func TestCreate_ValidationHappensBeforeWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catID := f.category(t, "Tools")

	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"blank name", Request{Kind: domain.KindCategory, Name: "  ", LanguageCode: "en"}, domain.ErrNameRequired},
		{"no language", Request{Kind: domain.KindCategory, Name: "X"}, domain.ErrLanguageCodeRequired},
		{"zero price", Request{Kind: domain.KindProduct, Name: "X", LanguageCode: "en", ParentID: catID, Price: domain.NewMoney(0, 1)}, domain.ErrPriceMustBePositive},
		{"missing price", Request{Kind: domain.KindProduct, Name: "X", LanguageCode: "en", ParentID: catID}, domain.ErrPriceRequired},
		{"no category", Request{Kind: domain.KindProduct, Name: "X", LanguageCode: "en", Price: domain.NewMoney(1, 1)}, domain.ErrCategoryRequired},
		{"unknown category", Request{Kind: domain.KindProduct, Name: "X", LanguageCode: "en", ParentID: "nope", Price: domain.NewMoney(1, 1)}, domain.ErrCategoryNotFound},
		{"unknown parent", Request{Kind: domain.KindCategory, Name: "X", LanguageCode: "en", ParentID: "nope"}, domain.ErrCategoryNotFound},
		{"priced category", Request{Kind: domain.KindCategory, Name: "X", LanguageCode: "en", Price: domain.NewMoney(1, 1)}, domain.ErrPriceNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Execute(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Equal(t, []string{"category::"}, f.inv.Prefixes(), "only the fixture category was written")
}

func TestCreate_SameNameGetsSuffix(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.category(t, "Garden")
	second := f.category(t, "Garden")

	a, err := f.store.GetEntity(ctx, "category", first)
	require.NoError(t, err)
	b, err := f.store.GetEntity(ctx, "category", second)
	require.NoError(t, err)
	assert.Equal(t, "garden", a.Translations[0].Slug)
	assert.Equal(t, "garden-1", b.Translations[0].Slug)

	// Slugs are unique per language and kind only.
	id, err := f.uc.Execute(ctx, Request{Kind: domain.KindCategory, Name: "Garden", LanguageCode: "de"})
	require.NoError(t, err)
	c, err := f.store.GetEntity(ctx, "category", id)
	require.NoError(t, err)
	assert.Equal(t, "garden", c.Translations[0].Slug)
}

func TestCreate_ConcurrentSameNameDistinctSlugs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catID := f.category(t, "Tools")

	const n = 8
	var wg sync.WaitGroup
	ids := make([]string, n)
	errs := make([]error, n)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			ids[i], errs[i] = f.uc.Execute(ctx, Request{
				Kind: domain.KindProduct, Name: "Widget", LanguageCode: "en",
				ParentID: catID, Price: domain.NewMoney(1, 1),
			})
		}(i)
	}
	close(start)
	wg.Wait()

	slugs := map[string]bool{}
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		rec, err := f.store.GetEntity(ctx, "product", ids[i])
		require.NoError(t, err)
		slugs[rec.Translations[0].Slug] = true
	}
	assert.Len(t, slugs, n)
	assert.True(t, slugs["widget"])
}
