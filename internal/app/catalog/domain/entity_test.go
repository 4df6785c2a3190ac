package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newProduct(t *testing.T) *Entity {
	t.Helper()
	e, err := NewEntity("prod-1", KindProduct, NewEntityParams{
		Name:         "  Widget ",
		LanguageCode: "EN",
		Description:  "A widget",
		ParentID:     "cat-1",
		Price:        NewMoney(999, 100),
	}, testNow)
	require.NoError(t, err)
	return e
}

func TestNewEntity_Product(t *testing.T) {
	e := newProduct(t)

	assert.Equal(t, "prod-1", e.ID())
	assert.Equal(t, KindProduct, e.Kind())
	assert.Equal(t, "cat-1", e.ParentID())
	assert.True(t, e.IsNew())
	assert.Equal(t, "9.99", e.Price().String())

	tr, ok := e.Translation("en")
	require.True(t, ok)
	assert.Equal(t, "Widget", tr.Name)
	assert.Equal(t, "en", tr.LanguageCode)
	assert.Empty(t, tr.Slug)

	require.Len(t, e.PendingTranslations(), 1)
	require.Len(t, e.DomainEvents(), 1)
	created, ok := e.DomainEvents()[0].(*EntityCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "catalog.product.created", created.EventType())
	assert.Equal(t, "prod-1", created.AggregateID())
	assert.Equal(t, testNow, created.OccurredAt())
}

func TestNewEntity_Validation(t *testing.T) {
	price := NewMoney(1, 1)
	tests := []struct {
		name   string
		kind   Kind
		params NewEntityParams
		want   error
	}{
		{"blank name", KindProduct, NewEntityParams{Name: "   ", LanguageCode: "en", ParentID: "c", Price: price}, ErrNameRequired},
		{"long name", KindProduct, NewEntityParams{Name: strings.Repeat("x", 256), LanguageCode: "en", ParentID: "c", Price: price}, ErrNameTooLong},
		{"missing language", KindProduct, NewEntityParams{Name: "n", ParentID: "c", Price: price}, ErrLanguageCodeRequired},
		{"bad language", KindProduct, NewEntityParams{Name: "n", LanguageCode: "not a tag", ParentID: "c", Price: price}, ErrLanguageCodeInvalid},
		{"missing price", KindProduct, NewEntityParams{Name: "n", LanguageCode: "en", ParentID: "c"}, ErrPriceRequired},
		{"zero price", KindProduct, NewEntityParams{Name: "n", LanguageCode: "en", ParentID: "c", Price: NewMoney(0, 1)}, ErrPriceMustBePositive},
		{"negative price", KindProduct, NewEntityParams{Name: "n", LanguageCode: "en", ParentID: "c", Price: NewMoney(-5, 1)}, ErrPriceMustBePositive},
		{"product without category", KindProduct, NewEntityParams{Name: "n", LanguageCode: "en", Price: price}, ErrCategoryRequired},
		{"category with price", KindCategory, NewEntityParams{Name: "n", LanguageCode: "en", Price: price}, ErrPriceNotAllowed},
		{"self parent", KindCategory, NewEntityParams{Name: "n", LanguageCode: "en", ParentID: "id"}, ErrInvalidParent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntity("id", tt.kind, tt.params, testNow)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewEntity_RootCategory(t *testing.T) {
	e, err := NewEntity("cat-1", KindCategory, NewEntityParams{Name: "Tools", LanguageCode: "de"}, testNow)
	require.NoError(t, err)
	assert.Empty(t, e.ParentID())
	assert.Nil(t, e.Price())
}

func TestAddTranslation(t *testing.T) {
	e := ReconstructEntity("prod-1", KindProduct, "cat-1", NewMoney(5, 1), []Translation{
		{LanguageCode: "en", Name: "Widget", Slug: "widget", CreatedAt: testNow},
	}, testNow, testNow)

	later := testNow.Add(time.Hour)
	require.NoError(t, e.AddTranslation("fr", "Gadget", "", later))

	assert.Equal(t, later, e.UpdatedAt())
	assert.True(t, e.Changes().Dirty(FieldTranslations))
	assert.Equal(t, []string{FieldTranslations, FieldUpdatedAt}, e.Changes().DirtyFields())

	pending := e.PendingTranslations()
	require.Len(t, pending, 1)
	assert.Equal(t, "fr", pending[0].LanguageCode)

	e.AssignSlug("fr", "gadget")
	tr, _ := e.Translation("fr")
	assert.Equal(t, "gadget", tr.Slug)

	ev, ok := e.DomainEvents()[0].(*TranslationAddedEvent)
	require.True(t, ok)
	assert.Equal(t, "gadget", ev.Slug)
	assert.Equal(t, "catalog.product.translation_added", ev.EventType())
}

func TestAddTranslation_DuplicateLanguage(t *testing.T) {
	e := ReconstructEntity("prod-1", KindProduct, "cat-1", NewMoney(5, 1), []Translation{
		{LanguageCode: "en", Name: "Widget", Slug: "widget", CreatedAt: testNow},
	}, testNow, testNow)

	err := e.AddTranslation("EN", "Other", "", testNow)
	require.ErrorIs(t, err, ErrTranslationAlreadyExists)

	assert.Len(t, e.Translations(), 1)
	assert.Empty(t, e.PendingTranslations())
	assert.Empty(t, e.DomainEvents())
	assert.False(t, e.Changes().HasChanges())
}

func TestMarkPersisted(t *testing.T) {
	e := newProduct(t)
	e.MarkPersisted()

	assert.False(t, e.IsNew())
	assert.Empty(t, e.PendingTranslations())
	assert.Len(t, e.Translations(), 1)
}

func TestDelete_RaisesEvent(t *testing.T) {
	e := ReconstructEntity("cat-1", KindCategory, "", nil, nil, testNow, testNow)
	e.Delete(testNow)

	require.Len(t, e.DomainEvents(), 1)
	assert.Equal(t, "catalog.category.deleted", e.DomainEvents()[0].EventType())
}

func TestError_IsMatchesByKey(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrCategoryNotFound)
	assert.ErrorIs(t, wrapped, ErrCategoryNotFound)
	assert.NotErrorIs(t, wrapped, ErrProductNotFound)

	de, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "categoryNotFound", de.Key)
	assert.Equal(t, ClassNotFound, de.Class)

	_, ok = AsError(errors.New("boom"))
	assert.False(t, ok)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"product": KindProduct, "Products": KindProduct,
		"category": KindCategory, "categories": KindCategory,
	} {
		got, ok := ParseKind(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got)
	}

	_, ok := ParseKind("orders")
	assert.False(t, ok)
	assert.Equal(t, "product::", KindProduct.CacheNamespace())
	assert.Equal(t, ErrCategoryNotFound, KindCategory.NotFound())
}

func TestNormalizeLanguageCode(t *testing.T) {
	got, err := NormalizeLanguageCode(" en-us ")
	require.NoError(t, err)
	assert.Equal(t, "en-US", got)
}
