package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Empty(t, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"source.type": "sqlite", "output.indent": false},
		map[string]any{"source.type": "doorstop"},
	)

	assert.Equal(t, "doorstop", store.GetString("source.type"), "later maps win")
	_, ok := store.Get("output.indent")
	assert.True(t, ok)
	assert.Equal(t, []string{"output.indent", "source.type"}, store.Keys())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("header.title", "Brakes"))
	require.NoError(t, store.Set("n.int", 7))
	require.NoError(t, store.Set("validation.strict", true))
	require.NoError(t, store.Set("pipeline.processors", []any{"depth-clamp", 3, "trim-text"}))

	assert.Equal(t, "Brakes", store.GetString("header.title"))
	assert.True(t, store.GetBool("validation.strict"))
	assert.Equal(t, []string{"depth-clamp", "trim-text"}, store.GetStringSlice("pipeline.processors"))

	assert.Equal(t, "", store.GetString("n.int"))
	assert.False(t, store.GetBool("header.title"))
	assert.Nil(t, store.GetStringSlice("header.title"))
}

func TestConfigStore_Delete(t *testing.T) {
	store := NewConfigStore(map[string]any{"output.path": "a.reqif", "header.title": "Brakes"})

	require.NoError(t, store.Delete("output.path"))
	require.NoError(t, store.Delete("missing"))

	_, ok := store.Get("output.path")
	assert.False(t, ok)
	assert.Equal(t, []string{"header.title"}, store.Keys())
}

func TestConfigStore_SaveLoadNoOp(t *testing.T) {
	store := NewConfigStore(map[string]any{"a": "b"})
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, "b", store.GetString("a"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("source.option_%d", n)
			_ = store.Set(key, n)
			_ = store.GetString(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 20)
}
