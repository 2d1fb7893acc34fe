package input

import (
	"container/heap"
	"time"
)

// deferred is one scheduled follow-up of a dispatched action.
type deferred struct {
	owner *slot
	due   time.Time
	seq   uint64
	fn    func() error
	index int
}

type deferredHeap []*deferred

func (h deferredHeap) Len() int { return len(h) }
func (h deferredHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}
func (h deferredHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *deferredHeap) Push(x any)   { it := x.(*deferred); it.index = len(*h); *h = append(*h, it) }
func (h *deferredHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	it.index = -1
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

// scheduler is the timer queue of deferred work, keyed by owning binding.
type scheduler struct {
	h   deferredHeap
	seq uint64
}

func (s *scheduler) add(owner *slot, due time.Time, fn func() error) {
	s.seq++
	heap.Push(&s.h, &deferred{owner: owner, due: due, seq: s.seq, fn: fn})
}

// popDue removes and returns the earliest item due at or before now.
func (s *scheduler) popDue(now time.Time) *deferred {
	if len(s.h) == 0 || s.h[0].due.After(now) {
		return nil
	}
	return heap.Pop(&s.h).(*deferred)
}

// take removes every item of owner (all items when owner is nil) and
// returns them in due order.
func (s *scheduler) take(owner *slot) []*deferred {
	var out []*deferred
	keep := s.h[:0]
	for _, it := range s.h {
		if owner == nil || it.owner == owner {
			out = append(out, it)
			continue
		}
		keep = append(keep, it)
	}
	for i := len(keep); i < len(s.h); i++ {
		s.h[i] = nil
	}
	s.h = keep
	for i, it := range s.h {
		it.index = i
	}
	heap.Init(&s.h)
	ordered := deferredHeap(out)
	heap.Init(&ordered)
	sorted := make([]*deferred, 0, len(out))
	for ordered.Len() > 0 {
		sorted = append(sorted, heap.Pop(&ordered).(*deferred))
	}
	return sorted
}

func (s *scheduler) pending(owner *slot) int {
	n := 0
	for _, it := range s.h {
		if it.owner == owner {
			n++
		}
	}
	return n
}

func (s *scheduler) len() int { return len(s.h) }
