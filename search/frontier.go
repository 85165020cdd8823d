package search

import "container/heap"

// entry is a frontier element. cost is the path cost from start;
// priority is the strategy's ordering key.
type entry[N comparable] struct {
	node     N
	cost     int
	priority int
}

// frontier is the strategy-specific half of the search loop: how
// discovered nodes wait and in what order they come back out.
type frontier[N comparable] interface {
	push(entry[N])
	pop() (entry[N], bool)
	len() int
}

func newFrontier[N comparable](s Strategy) frontier[N] {
	switch s {
	case BFS:
		return &fifoFrontier[N]{}
	case DFS:
		return &lifoFrontier[N]{}
	default:
		return &heapFrontier[N]{}
	}
}

// fifoFrontier pops entries in insertion order.
type fifoFrontier[N comparable] struct {
	entries []entry[N]
}

func (f *fifoFrontier[N]) push(e entry[N]) {
	f.entries = append(f.entries, e)
}

func (f *fifoFrontier[N]) pop() (entry[N], bool) {
	if len(f.entries) == 0 {
		var zero entry[N]
		return zero, false
	}
	e := f.entries[0]
	f.entries = f.entries[1:]
	return e, true
}

func (f *fifoFrontier[N]) len() int {
	return len(f.entries)
}

// lifoFrontier pops the most recent insertion first.
type lifoFrontier[N comparable] struct {
	entries []entry[N]
}

func (f *lifoFrontier[N]) push(e entry[N]) {
	f.entries = append(f.entries, e)
}

func (f *lifoFrontier[N]) pop() (entry[N], bool) {
	if len(f.entries) == 0 {
		var zero entry[N]
		return zero, false
	}
	last := len(f.entries) - 1
	e := f.entries[last]
	f.entries = f.entries[:last]
	return e, true
}

func (f *lifoFrontier[N]) len() int {
	return len(f.entries)
}

// heapFrontier pops the lowest priority first, breaking ties by
// insertion sequence so equal-priority nodes come out in the order
// they went in.
type heapFrontier[N comparable] struct {
	pq  nodePQ[N]
	seq int
}

func (f *heapFrontier[N]) push(e entry[N]) {
	f.seq++
	heap.Push(&f.pq, &pqEntry[N]{entry: e, seq: f.seq})
}

func (f *heapFrontier[N]) pop() (entry[N], bool) {
	if f.pq.Len() == 0 {
		var zero entry[N]
		return zero, false
	}
	return heap.Pop(&f.pq).(*pqEntry[N]).entry, true
}

func (f *heapFrontier[N]) len() int {
	return f.pq.Len()
}

type pqEntry[N comparable] struct {
	entry entry[N]
	seq   int
}

type nodePQ[N comparable] []*pqEntry[N]

func (pq nodePQ[N]) Len() int { return len(pq) }

func (pq nodePQ[N]) Less(i, j int) bool {
	if pq[i].entry.priority != pq[j].entry.priority {
		return pq[i].entry.priority < pq[j].entry.priority
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ[N]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *nodePQ[N]) Push(x any) {
	*pq = append(*pq, x.(*pqEntry[N]))
}

func (pq *nodePQ[N]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
