package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 4000
)

// Translation is the language-specific part of an entity. An entity owns at
// most one translation per language code.
type Translation struct {
	LanguageCode string
	Name         string
	Slug         string
	Description  string
	CreatedAt    time.Time
}

// NewEntityParams carries the user supplied fields of a new entity.
type NewEntityParams struct {
	Name         string
	LanguageCode string
	Description  string
	// ParentID is the owning category of a product or the parent of a category.
	ParentID string
	Price    *Money
}

// Entity is the aggregate root of the catalog: a product or a category
// together with its translations.
type Entity struct {
	id           string
	kind         Kind
	parentID     string
	price        *Money
	translations []Translation
	pending      []string
	isNew        bool
	createdAt    time.Time
	updatedAt    time.Time
	changes      *ChangeTracker
	events       []DomainEvent
}

// NewEntity validates params and creates an entity with its first
// translation. The slug of that translation is assigned later with AssignSlug.
func NewEntity(id string, kind Kind, params NewEntityParams, now time.Time) (*Entity, error) {
	name, description, err := validateText(params.Name, params.Description)
	if err != nil {
		return nil, err
	}
	lang, err := NormalizeLanguageCode(params.LanguageCode)
	if err != nil {
		return nil, err
	}
	parentID := strings.TrimSpace(params.ParentID)
	if err := validatePricing(kind, params.Price); err != nil {
		return nil, err
	}
	if kind == KindProduct && parentID == "" {
		return nil, ErrCategoryRequired
	}
	if parentID == id {
		return nil, ErrInvalidParent
	}

	e := &Entity{
		id:        id,
		kind:      kind,
		parentID:  parentID,
		price:     params.Price,
		isNew:     true,
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
		events:    make([]DomainEvent, 0, 1),
	}
	e.translations = append(e.translations, Translation{
		LanguageCode: lang,
		Name:         name,
		Description:  description,
		CreatedAt:    now,
	})
	e.pending = append(e.pending, lang)

	e.events = append(e.events, &EntityCreatedEvent{
		EntityID:     id,
		Kind:         kind,
		Name:         name,
		LanguageCode: lang,
		ParentID:     parentID,
		Price:        params.Price,
		CreatedAt:    now,
	})

	return e, nil
}

// ReconstructEntity rebuilds an entity from persisted state.
func ReconstructEntity(id string, kind Kind, parentID string, price *Money, translations []Translation, createdAt, updatedAt time.Time) *Entity {
	ts := make([]Translation, len(translations))
	copy(ts, translations)
	return &Entity{
		id:           id,
		kind:         kind,
		parentID:     parentID,
		price:        price,
		translations: ts,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		changes:      NewChangeTracker(),
		events:       make([]DomainEvent, 0),
	}
}

func (e *Entity) ID() string {
	return e.id
}

func (e *Entity) Kind() Kind {
	return e.kind
}

func (e *Entity) ParentID() string {
	return e.parentID
}

func (e *Entity) Price() *Money {
	return e.price
}

func (e *Entity) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entity) UpdatedAt() time.Time {
	return e.updatedAt
}

// IsNew reports whether the entity has not been persisted yet.
func (e *Entity) IsNew() bool {
	return e.isNew
}

func (e *Entity) Changes() *ChangeTracker {
	return e.changes
}

func (e *Entity) DomainEvents() []DomainEvent {
	return e.events
}

func (e *Entity) ClearEvents() {
	e.events = make([]DomainEvent, 0)
}

// Translations returns a copy of all translations, persisted and pending.
func (e *Entity) Translations() []Translation {
	out := make([]Translation, len(e.translations))
	copy(out, e.translations)
	return out
}

// Translation returns the translation for lang, if present.
func (e *Entity) Translation(lang string) (Translation, bool) {
	for _, t := range e.translations {
		if strings.EqualFold(t.LanguageCode, lang) {
			return t, true
		}
	}
	return Translation{}, false
}

// PendingTranslations returns the translations that still need to be written.
func (e *Entity) PendingTranslations() []Translation {
	out := make([]Translation, 0, len(e.pending))
	for _, lang := range e.pending {
		if t, ok := e.Translation(lang); ok {
			out = append(out, t)
		}
	}
	return out
}

// AddTranslation adds a language variant. Only one translation per
// language is allowed.
func (e *Entity) AddTranslation(languageCode, name, description string, now time.Time) error {
	n, d, err := validateText(name, description)
	if err != nil {
		return err
	}
	lang, err := NormalizeLanguageCode(languageCode)
	if err != nil {
		return err
	}
	if _, exists := e.Translation(lang); exists {
		return ErrTranslationAlreadyExists
	}

	e.translations = append(e.translations, Translation{
		LanguageCode: lang,
		Name:         n,
		Description:  d,
		CreatedAt:    now,
	})
	e.pending = append(e.pending, lang)
	e.updatedAt = now
	e.changes.MarkDirty(FieldTranslations, FieldUpdatedAt)

	e.events = append(e.events, &TranslationAddedEvent{
		EntityID:     e.id,
		Kind:         e.kind,
		LanguageCode: lang,
		Name:         n,
		AddedAt:      now,
	})
	return nil
}

// AssignSlug sets the slug of the pending translation for lang. Events
// raised for that translation carry the same slug.
func (e *Entity) AssignSlug(lang, slug string) {
	for i := range e.translations {
		if e.translations[i].LanguageCode == lang {
			e.translations[i].Slug = slug
		}
	}
	for _, ev := range e.events {
		switch v := ev.(type) {
		case *EntityCreatedEvent:
			if v.LanguageCode == lang {
				v.Slug = slug
			}
		case *TranslationAddedEvent:
			if v.LanguageCode == lang {
				v.Slug = slug
			}
		}
	}
}

// MarkPersisted is called once the store accepted the pending changes.
func (e *Entity) MarkPersisted() {
	e.isNew = false
	e.pending = nil
	e.changes.Clear()
}

// Delete records the removal of the entity.
func (e *Entity) Delete(now time.Time) {
	e.events = append(e.events, &EntityDeletedEvent{
		EntityID:  e.id,
		Kind:      e.kind,
		DeletedAt: now,
	})
}

// NormalizeLanguageCode validates a BCP 47 tag and returns its canonical
// spelling, e.g. "EN-us" becomes "en-US".
func NormalizeLanguageCode(code string) (string, error) {
	c := strings.TrimSpace(code)
	if c == "" {
		return "", ErrLanguageCodeRequired
	}
	tag, err := language.Parse(c)
	if err != nil || tag == language.Und {
		return "", ErrLanguageCodeInvalid
	}
	return tag.String(), nil
}

func validateText(name, description string) (string, string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", "", ErrNameRequired
	}
	if utf8.RuneCountInString(n) > maxNameLength {
		return "", "", ErrNameTooLong
	}
	d := strings.TrimSpace(description)
	if utf8.RuneCountInString(d) > maxDescriptionLength {
		return "", "", ErrDescriptionTooLong
	}
	return n, d, nil
}

func validatePricing(kind Kind, price *Money) error {
	if !kind.HasPrice() {
		if price != nil {
			return ErrPriceNotAllowed
		}
		return nil
	}
	if price == nil {
		return ErrPriceRequired
	}
	if !price.IsPositive() {
		return ErrPriceMustBePositive
	}
	return nil
}
