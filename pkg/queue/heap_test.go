package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePopsByDistanceThenId(t *testing.T) {
	q := NewQueue(NewQueueItem("c", 2, ""))
	q.Push(NewQueueItem("b", 1, ""))
	q.Push(NewQueueItem("a", 2, ""))
	q.Push(NewQueueItem("d", 0.5, ""))

	order := make([]string, 0)
	for q.Len() > 0 {
		order = append(order, q.Pop().ItemId)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, order)
}

func TestQueueUpdate(t *testing.T) {
	far := NewQueueItem("far", 10, "")
	q := NewQueue(far)
	near := NewQueueItem("near", 5, "")
	q.Push(near)
	require.Equal(t, 1, near.Index())

	q.Update(far, 1)
	first := q.Pop()
	assert.Equal(t, "far", first.ItemId)
	assert.Equal(t, -1, first.Index())
	assert.Equal(t, 1, q.Len())
}

func TestMinHeapFromItems(t *testing.T) {
	items := []*Item{NewQueueItem("x", 3, ""), NewQueueItem("y", 1, ""), NewQueueItem("z", 2, "")}
	h := NewMinHeap(items)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, "0: y, 1\n", h.String()[:len("0: y, 1\n")])

	assert.Equal(t, "y", h.Pop().ItemId)
	assert.Equal(t, "z", h.Pop().ItemId)
	assert.Equal(t, "x", h.Pop().ItemId)
	assert.Equal(t, 0, h.Len())
}
