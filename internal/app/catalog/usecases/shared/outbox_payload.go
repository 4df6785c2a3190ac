package shared

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
)

// MarshalDomainEventPayload converts a domain event into a JSON payload.
// Money is written as numerator/denominator so consumers keep exact values.
func MarshalDomainEventPayload(ev domain.DomainEvent) (json.RawMessage, error) {
	if ev == nil {
		return json.RawMessage("{}"), nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.EntityCreatedEvent:
		payload = map[string]interface{}{
			"entity_id":     e.EntityID,
			"kind":          e.Kind,
			"name":          e.Name,
			"slug":          e.Slug,
			"language_code": e.LanguageCode,
			"created_at":    e.CreatedAt,
		}
		if e.ParentID != "" {
			payload["parent_id"] = e.ParentID
		}
		if e.Price != nil {
			payload["price"] = map[string]interface{}{
				"numerator":   e.Price.Numerator(),
				"denominator": e.Price.Denominator(),
			}
		}

	case *domain.TranslationAddedEvent:
		payload = map[string]interface{}{
			"entity_id":     e.EntityID,
			"kind":          e.Kind,
			"language_code": e.LanguageCode,
			"name":          e.Name,
			"slug":          e.Slug,
			"added_at":      e.AddedAt,
		}

	case *domain.EntityDeletedEvent:
		payload = map[string]interface{}{
			"entity_id":  e.EntityID,
			"kind":       e.Kind,
			"deleted_at": e.DeletedAt,
		}

	default:
		b, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("marshal payload for %T: %w", ev, err)
		}
		return b, nil
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload for %s: %w", ev.EventType(), err)
	}
	return b, nil
}

// ToIntegrationEvent wraps a domain event with a fresh event id.
func ToIntegrationEvent(ev domain.DomainEvent) (contracts.IntegrationEvent, error) {
	payload, err := MarshalDomainEventPayload(ev)
	if err != nil {
		return contracts.IntegrationEvent{}, err
	}
	return contracts.IntegrationEvent{
		ID:          uuid.New().String(),
		Type:        ev.EventType(),
		AggregateID: ev.AggregateID(),
		OccurredAt:  ev.OccurredAt().UTC(),
		Payload:     payload,
	}, nil
}
