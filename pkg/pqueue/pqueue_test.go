package pqueue

import (
	"math/rand"
	"sort"
	"testing"
)

func intCmp(a, b int) int { return a - b }

func TestQueue_InsertPollOrder(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   []int
	}{
		{name: "already sorted", values: []int{1, 2, 3, 4}, want: []int{1, 2, 3, 4}},
		{name: "reverse sorted", values: []int{4, 3, 2, 1}, want: []int{1, 2, 3, 4}},
		{name: "duplicates", values: []int{3, 1, 3, 1, 2}, want: []int{1, 1, 2, 3, 3}},
		{name: "single", values: []int{7}, want: []int{7}},
		{name: "empty", values: []int{}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New(intCmp)
			for _, v := range tt.values {
				q.Insert(v)
			}
			var got []int
			for {
				v, ok := q.Poll()
				if !ok {
					break
				}
				got = append(got, v)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v want %v", got, tt.want)
				}
			}
		})
	}
}

func TestQueue_PeekDoesNotRemove(t *testing.T) {
	q := New(intCmp)
	q.Insert(5)
	q.Insert(1)
	v, ok := q.Peek()
	if !ok || v != 1 {
		t.Fatalf("peek = %v,%v want 1,true", v, ok)
	}
	if q.Size() != 2 {
		t.Fatalf("size = %d, want 2", q.Size())
	}
}

func TestQueue_DeleteByHandlePreservesOrder(t *testing.T) {
	// Given any sequence of inserts with unique values, deleting each via
	// its handle in arbitrary order should yield an empty heap and
	// preserve min-extract order over the survivors.
	q := New(intCmp)
	values := []int{10, 3, 7, 1, 9, 5, 2, 8, 4, 6}
	handles := make([]*Handle[int], len(values))
	for i, v := range values {
		handles[i] = q.Insert(v)
	}

	toDelete := map[int]bool{1: true, 4: true, 7: true} // indices into values
	deleteOrder := []int{7, 1, 4}
	for _, idx := range deleteOrder {
		if err := q.Delete(handles[idx]); err != nil {
			t.Fatalf("delete: %v", err)
		}
	}

	var want []int
	for i, v := range values {
		if !toDelete[i] {
			want = append(want, v)
		}
	}
	sort.Ints(want)

	var got []int
	for {
		v, ok := q.Poll()
		if !ok {
			break
		}
		got = append(got, v)
	}

	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if q.Size() != 0 {
		t.Fatalf("size after draining = %d, want 0", q.Size())
	}
}

func TestQueue_DeleteRoot(t *testing.T) {
	q := New(intCmp)
	h1 := q.Insert(1)
	q.Insert(2)
	q.Insert(3)

	if err := q.Delete(h1); err != nil {
		t.Fatalf("delete root: %v", err)
	}
	v, ok := q.Peek()
	if !ok || v != 2 {
		t.Fatalf("peek after deleting root = %v,%v want 2,true", v, ok)
	}
}

func TestQueue_DecreaseRejectsIncrease(t *testing.T) {
	q := New(intCmp)
	h := q.Insert(5)
	if err := q.Decrease(h, 10); err == nil {
		t.Fatalf("expected error increasing value via Decrease")
	}
	if err := q.Decrease(h, 2); err != nil {
		t.Fatalf("decrease: %v", err)
	}
	v, _ := q.Peek()
	if v != 2 {
		t.Fatalf("peek after decrease = %v, want 2", v)
	}
}

func TestQueue_DecreaseReordersExtraction(t *testing.T) {
	q := New(intCmp)
	h1 := q.Insert(5)
	q.Insert(3)
	q.Insert(8)

	if err := q.Decrease(h1, 1); err != nil {
		t.Fatalf("decrease: %v", err)
	}

	var got []int
	for {
		v, ok := q.Poll()
		if !ok {
			break
		}
		got = append(got, v)
	}
	want := []int{1, 3, 8}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestQueue_UnknownHandleErrors(t *testing.T) {
	q1 := New(intCmp)
	q2 := New(intCmp)
	h := q1.Insert(1)

	if err := q2.Delete(h); err == nil {
		t.Fatalf("expected ErrUnknownHandle deleting foreign handle")
	}
	if err := q1.Delete(h); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := q1.Delete(h); err == nil {
		t.Fatalf("expected ErrUnknownHandle deleting an already-removed handle")
	}
}

func TestQueue_ClearInvalidatesSize(t *testing.T) {
	q := New(intCmp)
	for i := 0; i < 10; i++ {
		q.Insert(i)
	}
	q.Clear()
	if !q.IsEmpty() || q.Size() != 0 {
		t.Fatalf("queue not empty after Clear")
	}
	if _, ok := q.Peek(); ok {
		t.Fatalf("peek succeeded after Clear")
	}
}

func TestQueue_RandomizedAgainstSort(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	q := New(intCmp)
	values := make([]int, 200)
	for i := range values {
		values[i] = rng.Intn(1000)
		q.Insert(values[i])
	}
	sort.Ints(values)

	for i := 0; i < len(values); i++ {
		v, ok := q.Poll()
		if !ok {
			t.Fatalf("queue drained early at i=%d", i)
		}
		if v != values[i] {
			t.Fatalf("poll[%d] = %d, want %d", i, v, values[i])
		}
	}
}

func TestQueue_IterateVisitsAll(t *testing.T) {
	q := New(intCmp)
	values := []int{5, 1, 9, 3, 7}
	for _, v := range values {
		q.Insert(v)
	}
	seen := map[int]int{}
	q.Iterate(func(v int) bool {
		seen[v]++
		return true
	})
	if len(seen) != len(values) {
		t.Fatalf("iterate saw %d distinct values, want %d", len(seen), len(values))
	}
	for _, v := range values {
		if seen[v] != 1 {
			t.Fatalf("value %d seen %d times, want 1", v, seen[v])
		}
	}
}
