package queue

import (
	"slices"
	"sync"
	"testing"
)

func TestQueue(t *testing.T) {
	t.Run("Append and Snapshot", func(t *testing.T) {
		q := New[string](0)
		for _, v := range []string{"A", "B", "C"} {
			q.Append(v)
		}

		if got := q.Snapshot(); !slices.Equal(got, []string{"A", "B", "C"}) {
			t.Errorf("Snapshot() = %v", got)
		}
		if q.Len() != 3 {
			t.Errorf("Len() = %d, want 3", q.Len())
		}
	})

	t.Run("Move", func(t *testing.T) {
		q := New[string](0)
		for _, v := range []string{"A", "B", "C"} {
			q.Append(v)
		}

		q.Move(0, 2)

		if got := q.Snapshot(); !slices.Equal(got, []string{"B", "C", "A"}) {
			t.Errorf("Snapshot() = %v, want [B C A]", got)
		}
	})

	t.Run("Offer respects max length", func(t *testing.T) {
		q := New[string](2)

		if !q.Offer("A") || !q.Offer("B") {
			t.Fatal("Offer should accept values below the cap")
		}
		if q.Offer("C") {
			t.Error("Offer should reject values at the cap")
		}
		if q.Len() != 2 {
			t.Errorf("Len() = %d, want 2", q.Len())
		}

		q.Append("C")
		if q.Len() != 3 {
			t.Errorf("Append should ignore the cap, Len() = %d", q.Len())
		}
	})

	t.Run("OfferAll is all or nothing", func(t *testing.T) {
		q := New[string](3)
		q.Append("A")

		if q.OfferAll("B", "C", "D") {
			t.Error("OfferAll should reject a batch that overflows the cap")
		}
		if got := q.Snapshot(); !slices.Equal(got, []string{"A"}) {
			t.Errorf("rejected batch changed the queue: %v", got)
		}
		if !q.OfferAll("B", "C") {
			t.Error("OfferAll should accept a batch that fits exactly")
		}
		if got := q.Snapshot(); !slices.Equal(got, []string{"A", "B", "C"}) {
			t.Errorf("Snapshot() = %v", got)
		}
	})

	t.Run("Negative max length is unbounded", func(t *testing.T) {
		q := New[int](-5)
		if q.MaxLen() != 0 {
			t.Errorf("MaxLen() = %d, want 0", q.MaxLen())
		}
		for i := range 100 {
			if !q.Offer(i) {
				t.Fatalf("Offer(%d) rejected on unbounded queue", i)
			}
		}
	})

	t.Run("RemoveAt", func(t *testing.T) {
		q := New[string](0)
		for _, v := range []string{"A", "B", "C"} {
			q.Append(v)
		}

		if !q.RemoveAt(1) {
			t.Error("RemoveAt(1) should report removal")
		}
		if q.RemoveAt(5) {
			t.Error("RemoveAt(5) should report nothing removed")
		}
		if got := q.Snapshot(); !slices.Equal(got, []string{"A", "C"}) {
			t.Errorf("Snapshot() = %v, want [A C]", got)
		}
	})

	t.Run("At", func(t *testing.T) {
		q := New[string](0)
		q.Append("A")

		if v, ok := q.At(0); !ok || v != "A" {
			t.Errorf("At(0) = %q, %v", v, ok)
		}
		if _, ok := q.At(1); ok {
			t.Error("At(1) should report missing")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		q := New[string](0)
		q.Append("A")
		q.Clear()

		if q.Len() != 0 || len(q.Snapshot()) != 0 {
			t.Error("queue should be empty after Clear")
		}
	})
}

func TestQueueConcurrency(t *testing.T) {
	const (
		writers = 8
		perW    = 200
	)

	q := New[int](0)
	var wg sync.WaitGroup

	for w := range writers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range perW {
				q.Append(w*perW + i)
				q.Move(i%7, (i*3)%11)
				_ = q.Snapshot()
			}
		}(w)
	}
	wg.Wait()

	if q.Len() != writers*perW {
		t.Fatalf("Len() = %d, want %d", q.Len(), writers*perW)
	}

	seen := make(map[int]bool, writers*perW)
	for _, v := range q.Snapshot() {
		if seen[v] {
			t.Fatalf("value %d appears twice", v)
		}
		seen[v] = true
	}
	if len(seen) != writers*perW {
		t.Errorf("snapshot holds %d distinct values, want %d", len(seen), writers*perW)
	}

	q.mu.RLock()
	checkInvariants(t, q.list)
	q.mu.RUnlock()
}
