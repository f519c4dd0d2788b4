package store

import (
	"encoding/json"
	"fmt"
)

// Namespace tags for the per-entity collections. Each store is a closed
// namespace: identifiers from one entity type are never looked up in
// another's collection.
const (
	NamespaceDepartments   = "departments"
	NamespaceDoctors       = "doctors"
	NamespacePatients      = "patients"
	NamespaceConsultations = "consultations"
	NamespaceChats         = "chats"
)

// Collection is a durable keyed mapping from identifier to record value,
// bound to one namespace of the shared DB. Values() returns records in
// insertion order; overwriting a key keeps its original position.
type Collection[V any] struct {
	db        *DB
	namespace string
}

func NewCollection[V any](db *DB, namespace string) *Collection[V] {
	return &Collection[V]{db: db, namespace: namespace}
}

// Insert upserts the value under key.
func (c *Collection[V]) Insert(key string, v V) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s record: %w", c.namespace, err)
	}
	return c.db.put(c.namespace, key, raw)
}

// Get returns the value under key and whether it exists.
func (c *Collection[V]) Get(key string) (V, bool, error) {
	var v V
	raw, ok, err := c.db.get(c.namespace, key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("failed to decode %s record %s: %w", c.namespace, key, err)
	}
	return v, true, nil
}

// Remove deletes the value under key. Removing an absent key is a no-op;
// callers that need existence semantics check with Get first.
func (c *Collection[V]) Remove(key string) error {
	return c.db.remove(c.namespace, key)
}

// Values returns every record in the collection in insertion order.
func (c *Collection[V]) Values() ([]V, error) {
	raws, err := c.db.values(c.namespace)
	if err != nil {
		return nil, err
	}
	out := make([]V, 0, len(raws))
	for _, raw := range raws {
		var v V
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %w", c.namespace, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Len returns the number of records in the collection.
func (c *Collection[V]) Len() (int, error) {
	return c.db.count(c.namespace)
}
