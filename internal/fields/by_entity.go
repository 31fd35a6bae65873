package fields

import "github.com/ArowuTest/paymethods-config-backend/internal/models"

// EntityFields holds fields grouped by owning entity, in order of first appearance
type EntityFields struct {
	ids      []string
	types    map[string]models.EntityType
	byEntity map[string]*fieldSet
}

// EntityFieldList is the serialized form of one entity's fields
type EntityFieldList struct {
	EntityID   string            `json:"entityId"`
	EntityType models.EntityType `json:"entityType"`
	Fields     []Field           `json:"fields"`
}

// ByEntity groups rows by entity id and folds rows of the same key into one field.
// Currency is not considered; callers pass rows already filtered to one tier.
func ByEntity(rows []Row) *EntityFields {
	e := &EntityFields{
		types:    make(map[string]models.EntityType),
		byEntity: make(map[string]*fieldSet),
	}
	for _, r := range rows {
		s, ok := e.byEntity[r.EntityID]
		if !ok {
			s = newFieldSet()
			e.ids = append(e.ids, r.EntityID)
			e.types[r.EntityID] = r.EntityType
			e.byEntity[r.EntityID] = s
		}
		s.fold(r)
	}
	return e
}

// Fields returns the fields of entityID, or an empty slice when it has none
func (e *EntityFields) Fields(entityID string) []Field {
	s, ok := e.byEntity[entityID]
	if !ok {
		return []Field{}
	}
	return s.list()
}

// List returns every entity with its fields
func (e *EntityFields) List() []EntityFieldList {
	out := make([]EntityFieldList, 0, len(e.ids))
	for _, id := range e.ids {
		out = append(out, EntityFieldList{
			EntityID:   id,
			EntityType: e.types[id],
			Fields:     e.byEntity[id].list(),
		})
	}
	return out
}
