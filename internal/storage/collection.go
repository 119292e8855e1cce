package storage

import (
	"encoding/json"
	"fmt"
)

// Collection is a typed view over one named collection of a Provider.
type Collection[T any] struct {
	provider Provider
	name     string
}

func NewCollection[T any](provider Provider, name string) *Collection[T] {
	return &Collection[T]{provider: provider, name: name}
}

func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) Get(id string) (T, error) {
	var v T
	data, err := c.provider.Get(c.name, id)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("failed to decode %s record %s: %w", c.name, id, err)
	}
	return v, nil
}

func (c *Collection[T]) GetAll() ([]T, error) {
	rows, err := c.provider.GetAll(c.name)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for _, data := range rows {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %w", c.name, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Collection[T]) Put(id string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s record %s: %w", c.name, id, err)
	}
	return c.provider.Put(c.name, id, data)
}

func (c *Collection[T]) Delete(id string) error {
	return c.provider.Delete(c.name, id)
}

func (c *Collection[T]) Clear() error {
	return c.provider.Clear(c.name)
}
