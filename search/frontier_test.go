package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrontierOrdering(t *testing.T) {
	t.Run("bfs pops oldest first", func(t *testing.T) {
		f := newFrontier[string](BFS)
		f.push(entry[string]{node: "a"})
		f.push(entry[string]{node: "b"})
		f.push(entry[string]{node: "c"})

		var popped []string
		for f.len() > 0 {
			e, ok := f.pop()
			assert.True(t, ok)
			popped = append(popped, e.node)
		}
		assert.Equal(t, []string{"a", "b", "c"}, popped)
	})

	t.Run("dfs pops newest first", func(t *testing.T) {
		f := newFrontier[string](DFS)
		f.push(entry[string]{node: "a"})
		f.push(entry[string]{node: "b"})
		f.push(entry[string]{node: "c"})

		var popped []string
		for f.len() > 0 {
			e, ok := f.pop()
			assert.True(t, ok)
			popped = append(popped, e.node)
		}
		assert.Equal(t, []string{"c", "b", "a"}, popped)
	})

	t.Run("heap pops by priority", func(t *testing.T) {
		f := newFrontier[string](Dijkstra)
		f.push(entry[string]{node: "slow", priority: 5})
		f.push(entry[string]{node: "fast", priority: 1})
		f.push(entry[string]{node: "mid", priority: 3})

		var popped []string
		for f.len() > 0 {
			e, ok := f.pop()
			assert.True(t, ok)
			popped = append(popped, e.node)
		}
		assert.Equal(t, []string{"fast", "mid", "slow"}, popped)
	})

	t.Run("heap breaks ties by insertion order", func(t *testing.T) {
		f := newFrontier[string](AStar)
		f.push(entry[string]{node: "first", priority: 2})
		f.push(entry[string]{node: "second", priority: 2})
		f.push(entry[string]{node: "third", priority: 2})

		var popped []string
		for f.len() > 0 {
			e, ok := f.pop()
			assert.True(t, ok)
			popped = append(popped, e.node)
		}
		assert.Equal(t, []string{"first", "second", "third"}, popped)
	})

	t.Run("empty pop reports false", func(t *testing.T) {
		for _, s := range []Strategy{BFS, DFS, Greedy} {
			f := newFrontier[string](s)
			_, ok := f.pop()
			assert.False(t, ok)
		}
	})
}
