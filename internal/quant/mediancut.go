package quant

import (
	"container/heap"
	"errors"
)

// queuedBox is a box waiting in the split queue. seq records insertion
// order and breaks priority ties in favor of the earlier box.
type queuedBox struct {
	box      *colorBox
	priority int
	seq      int
}

// boxQueue implements heap.Interface as a max-heap on priority.
type boxQueue []queuedBox

func (q boxQueue) Len() int { return len(q) }

func (q boxQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority > q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q boxQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *boxQueue) Push(x any) { *q = append(*q, x.(queuedBox)) }

func (q *boxQueue) Pop() any {
	old := *q
	n := len(old) - 1
	item := old[n]
	*q = old[:n]
	return item
}

// medianCut splits root into at most k boxes and returns them in the order
// they became final.
type medianCut struct {
	priority Priority
	queue    boxQueue
	final    []*colorBox
	seq      int
}

func (m *medianCut) push(b *colorBox) {
	p := b.population
	if m.priority == PriorityPopulationVolume {
		p *= b.volume()
	}
	heap.Push(&m.queue, queuedBox{box: b, priority: p, seq: m.seq})
	m.seq++
}

func (m *medianCut) count() int {
	return len(m.queue) + len(m.final)
}

// quantize runs median cut on root until k boxes exist or no queued box can
// be split. Boxes that cannot split become final as soon as they are popped;
// boxes still queued when the target is reached are finalized in priority
// order.
func quantize(root *colorBox, k int, priority Priority) []*colorBox {
	if k <= 0 || root == nil || root.population == 0 {
		return nil
	}

	m := &medianCut{priority: priority}
	m.push(root)

	for m.count() < k && len(m.queue) > 0 {
		b := heap.Pop(&m.queue).(queuedBox).box
		left, right, err := b.split(b.longestAxis())
		if errors.Is(err, errUnsplittable) {
			m.final = append(m.final, b)
			continue
		}
		m.push(left)
		m.push(right)
	}

	for len(m.queue) > 0 {
		m.final = append(m.final, heap.Pop(&m.queue).(queuedBox).box)
	}
	return m.final
}
