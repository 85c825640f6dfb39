package plugincache

import (
	"fmt"
	"iter"
)

// PluginEntry is one record in a plugin cache: an identifier unique
// within its category, the fully-qualified implementation class, a
// display name, and the two registry flags. Category names the owning
// category; it is never serialized directly and is reconstructed from
// the enclosing group on decode.
type PluginEntry struct {
	Key       string
	ClassName string
	Name      string
	Printable bool
	Defer     bool
	Category  string
}

// String renders the entry in the format used by cache dumps.
func (e PluginEntry) String() string {
	return fmt.Sprintf(
		"PluginEntry(key=%s, class_name=%s, name=%s, printable=%t, defer=%t, category=%s)",
		e.Key, e.ClassName, e.Name, e.Printable, e.Defer, e.Category,
	)
}

// Category is a named group of plugin entries keyed by entry key.
//
// Iteration order is insertion order, and replacing an entry in place
// keeps the position its key was first seen at. That guarantee is what
// the merge rules in [Decode] rely on.
type Category struct {
	name    string
	keys    []string
	entries map[string]PluginEntry
}

// NewCategory returns an empty category with the given name.
func NewCategory(name string) *Category {
	return &Category{
		name:    name,
		entries: make(map[string]PluginEntry),
	}
}

// Name returns the category name.
func (c *Category) Name() string { return c.name }

// Len returns the number of entries in the category.
func (c *Category) Len() int { return len(c.keys) }

// Put stores e under e.Key. A new key is appended to the iteration
// order; an existing key has its entry replaced without moving.
// Reports whether the key was already present.
func (c *Category) Put(e PluginEntry) bool {
	_, exists := c.entries[e.Key]
	if !exists {
		c.keys = append(c.keys, e.Key)
	}
	c.entries[e.Key] = e
	return exists
}

// Get returns the entry stored under key.
func (c *Category) Get(key string) (PluginEntry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Keys returns the entry keys in iteration order. The returned slice
// is a copy.
func (c *Category) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Entries returns an iterator over the entries in iteration order.
func (c *Category) Entries() iter.Seq[PluginEntry] {
	return func(yield func(PluginEntry) bool) {
		for _, key := range c.keys {
			if !yield(c.entries[key]) {
				return
			}
		}
	}
}

// Cache is an ordered registry of categories. Category order is
// insertion order. A Cache used as the target of repeated [Decode]
// calls acts as the accumulator that consolidates multiple
// independently-produced caches.
type Cache struct {
	names      []string
	categories map[string]*Category
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{categories: make(map[string]*Category)}
}

// Category returns the category with the given name, creating it empty
// at the end of the cache's order if it does not exist yet.
func (c *Cache) Category(name string) *Category {
	if cat, ok := c.categories[name]; ok {
		return cat
	}
	cat := NewCategory(name)
	c.names = append(c.names, name)
	c.categories[name] = cat
	return cat
}

// Lookup returns the category with the given name without creating it.
func (c *Cache) Lookup(name string) (*Category, bool) {
	cat, ok := c.categories[name]
	return cat, ok
}

// Len returns the number of categories.
func (c *Cache) Len() int { return len(c.names) }

// Names returns the category names in iteration order. The returned
// slice is a copy.
func (c *Cache) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Categories returns an iterator over the categories in iteration
// order.
func (c *Cache) Categories() iter.Seq[*Category] {
	return func(yield func(*Category) bool) {
		for _, name := range c.names {
			if !yield(c.categories[name]) {
				return
			}
		}
	}
}

// Equal reports whether two caches hold the same categories with the
// same entries in the same iteration order. Entry equality is
// structural across all fields, including Category.
func (c *Cache) Equal(other *Cache) bool {
	if len(c.names) != len(other.names) {
		return false
	}
	for i, name := range c.names {
		if other.names[i] != name {
			return false
		}
		a, b := c.categories[name], other.categories[name]
		if len(a.keys) != len(b.keys) {
			return false
		}
		for j, key := range a.keys {
			if b.keys[j] != key || a.entries[key] != b.entries[key] {
				return false
			}
		}
	}
	return true
}
