package bough

import "testing"

func TestQueueImmutable(t *testing.T) {
	q := NewQueue(1, 2)
	q2 := q.Enqueue(3)
	if q.Len() != 2 {
		t.Errorf("original Len = %d, want 2", q.Len())
	}
	if q2.Len() != 3 {
		t.Errorf("enqueued Len = %d, want 3", q2.Len())
	}

	v, rest, ok := q2.DequeueFront()
	if !ok || v != 1 {
		t.Fatalf("DequeueFront = %v, %v, want 1, true", v, ok)
	}
	if rest.Len() != 2 || q2.Len() != 3 {
		t.Errorf("rest Len = %d, q2 Len = %d, want 2 and 3", rest.Len(), q2.Len())
	}

	// Appending to the dequeued queue must not clobber q2's storage.
	_ = rest.Enqueue(99)
	if items := q2.Items(); items[2] != 3 {
		t.Errorf("q2 items = %v, want [1 2 3]", items)
	}
}

func TestQueueEmpty(t *testing.T) {
	var q Queue
	if _, ok := q.Front(); ok {
		t.Error("Front on empty queue should report false")
	}
	if _, rest, ok := q.DequeueFront(); ok || rest.Len() != 0 {
		t.Error("DequeueFront on empty queue should report false")
	}
	if NewQueue().Len() != 0 {
		t.Error("NewQueue() should be empty")
	}
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue("a").Enqueue("b", "c")
	var got []any
	for q.Len() > 0 {
		var v any
		v, q, _ = q.DequeueFront()
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("order = %v, want [a b c]", got)
	}
}
