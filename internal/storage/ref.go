package storage

import (
	"encoding/json"
	"fmt"
)

// Ref is an asset id in configuration that is resolved against a store
// once the store is loaded.
type Ref[T ValidatingSpec] struct {
	id       Identifier
	val      T
	resolved bool
}

func NewRef[T ValidatingSpec](id Identifier) Ref[T] {
	return Ref[T]{id: id}
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &r.id)
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.id)
}

func (r Ref[T]) Validate() error {
	if r.id == "" {
		return fmt.Errorf("asset id is required")
	}
	if !identifierPattern.MatchString(r.id.String()) {
		return fmt.Errorf("asset id %q must be alphanumeric", r.id)
	}
	return nil
}

// Resolve looks the id up in st.
func (r *Ref[T]) Resolve(st Storer[T]) error {
	val, err := st.Get(r.id)
	if err != nil {
		return err
	}
	r.val = val
	r.resolved = true
	return nil
}

func (r Ref[T]) Id() Identifier {
	return r.id
}

// Get returns the resolved asset.
func (r Ref[T]) Get() (T, bool) {
	return r.val, r.resolved
}
