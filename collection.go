package dataprep

import (
	"iter"
)

// Collection is an ordered mapping from key to table.
// Keys are unique; iteration follows insertion order.
type Collection struct {
	keys   []string
	tables map[string]*Table
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{
		tables: make(map[string]*Table),
	}
}

// Add stores t under key. Adding an existing key replaces the table and keeps its position.
func (c *Collection) Add(key string, t *Table) {
	if _, ok := c.tables[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.tables[key] = t
}

// Get returns the table stored under key.
func (c *Collection) Get(key string) (*Table, bool) {
	t, ok := c.tables[key]
	return t, ok
}

// Keys returns the keys in insertion order.
func (c *Collection) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.keys)
}

// All iterates over key and table pairs in insertion order.
func (c *Collection) All() iter.Seq2[string, *Table] {
	return func(yield func(string, *Table) bool) {
		for _, key := range c.keys {
			if !yield(key, c.tables[key]) {
				return
			}
		}
	}
}
