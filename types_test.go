package plugincache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryPut(t *testing.T) {
	t.Parallel()

	t.Run("appends new keys in order", func(t *testing.T) {
		t.Parallel()
		cat := NewCategory("cat1")
		assert.False(t, cat.Put(PluginEntry{Key: "b", Category: "cat1"}))
		assert.False(t, cat.Put(PluginEntry{Key: "a", Category: "cat1"}))
		assert.False(t, cat.Put(PluginEntry{Key: "c", Category: "cat1"}))

		assert.Equal(t, []string{"b", "a", "c"}, cat.Keys(), "iteration order must be insertion order")
	})

	t.Run("replace keeps position", func(t *testing.T) {
		t.Parallel()
		cat := NewCategory("cat1")
		cat.Put(PluginEntry{Key: "a", ClassName: "old", Category: "cat1"})
		cat.Put(PluginEntry{Key: "b", Category: "cat1"})

		assert.True(t, cat.Put(PluginEntry{Key: "a", ClassName: "new", Category: "cat1"}))

		assert.Equal(t, []string{"a", "b"}, cat.Keys(), "replaced key must not move")
		e, ok := cat.Get("a")
		require.True(t, ok)
		assert.Equal(t, "new", e.ClassName, "replaced entry must carry the new content")
	})
}

func TestCacheCategory(t *testing.T) {
	t.Parallel()

	c := NewCache()
	cat := c.Category("cat2")
	assert.Equal(t, "cat2", cat.Name())
	assert.Same(t, cat, c.Category("cat2"), "get-or-create must return the existing category")

	c.Category("cat1")
	assert.Equal(t, []string{"cat2", "cat1"}, c.Names(), "category order must be insertion order")

	_, ok := c.Lookup("cat3")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len(), "Lookup must not create categories")
}

func TestCacheEqual(t *testing.T) {
	t.Parallel()

	build := func() *Cache {
		c := NewCache()
		cat := c.Category("cat1")
		cat.Put(PluginEntry{Key: "key1", ClassName: "class1", Name: "name1", Printable: true, Category: "cat1"})
		cat.Put(PluginEntry{Key: "key2", ClassName: "class2", Name: "name2", Defer: true, Category: "cat1"})
		return c
	}

	t.Run("equal", func(t *testing.T) {
		t.Parallel()
		assert.True(t, build().Equal(build()))
	})

	t.Run("field difference", func(t *testing.T) {
		t.Parallel()
		other := build()
		other.Category("cat1").Put(PluginEntry{Key: "key1", ClassName: "changed", Name: "name1", Printable: true, Category: "cat1"})
		assert.False(t, build().Equal(other))
	})

	t.Run("order difference", func(t *testing.T) {
		t.Parallel()
		other := NewCache()
		cat := other.Category("cat1")
		cat.Put(PluginEntry{Key: "key2", ClassName: "class2", Name: "name2", Defer: true, Category: "cat1"})
		cat.Put(PluginEntry{Key: "key1", ClassName: "class1", Name: "name1", Printable: true, Category: "cat1"})
		assert.False(t, build().Equal(other), "same entries in different order must not be equal")
	})

	t.Run("extra category", func(t *testing.T) {
		t.Parallel()
		other := build()
		other.Category("cat2")
		assert.False(t, build().Equal(other))
	})
}

func TestPluginEntryString(t *testing.T) {
	t.Parallel()

	e := PluginEntry{Key: "key1", ClassName: "class1", Name: "name1", Printable: true, Defer: false, Category: "cat1"}
	assert.Equal(t,
		"PluginEntry(key=key1, class_name=class1, name=name1, printable=true, defer=false, category=cat1)",
		e.String())
}
