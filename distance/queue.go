package distance

import "container/heap"

type entry struct {
	node     int
	priority int
	order    int
}

// queue is a min-priority queue of nodes. Equal priorities pop in insertion order.
type queue struct {
	entries entries
	pushed  int
}

func (q *queue) Len() int {
	return len(q.entries)
}

func (q *queue) push(node, priority int) {
	heap.Push(&q.entries, entry{node: node, priority: priority, order: q.pushed})
	q.pushed++
}

func (q *queue) pop() int {
	return heap.Pop(&q.entries).(entry).node
}

type entries []entry

func (e entries) Len() int { return len(e) }

func (e entries) Less(i, j int) bool {
	if e[i].priority != e[j].priority {
		return e[i].priority < e[j].priority
	}
	return e[i].order < e[j].order
}

func (e entries) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

func (e *entries) Push(x any) { *e = append(*e, x.(entry)) }

func (e *entries) Pop() any {
	old := *e
	n := len(old)
	x := old[n-1]
	*e = old[:n-1]
	return x
}
