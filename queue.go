package bough

// Queue is an immutable FIFO of pending animation targets. Every operation
// returns a new Queue and leaves the receiver untouched, so a Queue can be
// shared and compared in tests without timers.
type Queue struct {
	items []any
}

// NewQueue returns a queue holding vs in order.
func NewQueue(vs ...any) Queue {
	if len(vs) == 0 {
		return Queue{}
	}
	items := make([]any, len(vs))
	copy(items, vs)
	return Queue{items: items}
}

// Len returns the number of pending targets.
func (q Queue) Len() int {
	return len(q.items)
}

// Front returns the oldest target.
func (q Queue) Front() (any, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	return q.items[0], true
}

// Enqueue returns a queue with vs appended.
func (q Queue) Enqueue(vs ...any) Queue {
	items := make([]any, 0, len(q.items)+len(vs))
	items = append(items, q.items...)
	items = append(items, vs...)
	return Queue{items: items}
}

// DequeueFront returns the oldest target and the queue without it.
func (q Queue) DequeueFront() (any, Queue, bool) {
	if len(q.items) == 0 {
		return nil, q, false
	}
	return q.items[0], Queue{items: q.items[1:len(q.items):len(q.items)]}, true
}

// Items returns a copy of the pending targets.
func (q Queue) Items() []any {
	out := make([]any, len(q.items))
	copy(out, q.items)
	return out
}
