package domain

import "time"

// DomainEvent describes something that happened to a catalog entity.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

func eventType(k Kind, name string) string {
	return "catalog." + string(k) + "." + name
}

// EntityCreatedEvent is raised when a product or category is created.
type EntityCreatedEvent struct {
	EntityID     string
	Kind         Kind
	Name         string
	Slug         string
	LanguageCode string
	ParentID     string
	Price        *Money
	CreatedAt    time.Time
}

func (e *EntityCreatedEvent) EventType() string {
	return eventType(e.Kind, "created")
}

func (e *EntityCreatedEvent) AggregateID() string {
	return e.EntityID
}

func (e *EntityCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// TranslationAddedEvent is raised when a language variant is added.
type TranslationAddedEvent struct {
	EntityID     string
	Kind         Kind
	LanguageCode string
	Name         string
	Slug         string
	AddedAt      time.Time
}

func (e *TranslationAddedEvent) EventType() string {
	return eventType(e.Kind, "translation_added")
}

func (e *TranslationAddedEvent) AggregateID() string {
	return e.EntityID
}

func (e *TranslationAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}

// EntityDeletedEvent is raised when an entity and its translations are removed.
type EntityDeletedEvent struct {
	EntityID  string
	Kind      Kind
	DeletedAt time.Time
}

func (e *EntityDeletedEvent) EventType() string {
	return eventType(e.Kind, "deleted")
}

func (e *EntityDeletedEvent) AggregateID() string {
	return e.EntityID
}

func (e *EntityDeletedEvent) OccurredAt() time.Time {
	return e.DeletedAt
}
