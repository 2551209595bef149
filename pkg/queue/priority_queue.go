package queue

import (
	"container/heap"
	"fmt"
)

// Item is a plain queue entry for label-setting searches without heuristic
type Item struct {
	ItemId      string  // node id of this item
	Distance    float64 // distance from origin to this node
	Predecessor string  // node id of the predecessor, empty for the origin
	index       int     // index of the item in the heap
}

func NewQueueItem(itemId string, distance float64, predecessor string) *Item {
	return &Item{ItemId: itemId, Distance: distance, Predecessor: predecessor, index: -1}
}

func (item *Item) Priority() float64  { return item.Distance }
func (item *Item) Key() string        { return item.ItemId }
func (item *Item) Index() int         { return item.index }
func (item *Item) SetIndex(index int) { item.index = index }
func (item *Item) String() string {
	return fmt.Sprintf("%v: %v, %v\n", item.index, item.ItemId, item.Distance)
}

// A Queue holds Items and pops the closest one first
type Queue struct {
	h MinHeap[*Item]
}

func NewQueue(initialItem *Item) *Queue {
	q := &Queue{h: *NewMinHeap[*Item](nil)}
	if initialItem != nil {
		q.Push(initialItem)
	}
	return q
}

func (q *Queue) Len() int        { return q.h.Len() }
func (q *Queue) Push(item *Item) { q.h.Push(item) }
func (q *Queue) Pop() *Item      { return q.h.Pop() }

// Update lowers (or raises) the distance of a queued item and restores the heap order
func (q *Queue) Update(item *Item, distance float64) {
	item.Distance = distance
	heap.Fix(&q.h.Queue, item.index)
}
