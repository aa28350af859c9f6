package pqueue

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
)

type scored struct {
	name  string
	score int
}

func byScore(a, b *scored) bool {
	return a.score < b.score
}

func TestQueue_PopOrder(t *testing.T) {
	tests := map[string]struct {
		scores []int
	}{
		"empty":      {scores: nil},
		"single":     {scores: []int{4}},
		"sorted":     {scores: []int{1, 2, 3, 4, 5}},
		"reversed":   {scores: []int{5, 4, 3, 2, 1}},
		"duplicates": {scores: []int{3, 1, 3, 2, 1, 2}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			q := New(byScore)
			for _, s := range tt.scores {
				q.Push(&scored{score: s})
			}
			testutil.AssertEqual(t, "len", q.Len(), len(tt.scores))

			var got []int
			for {
				item, ok := q.Pop()
				if !ok {
					break
				}
				got = append(got, item.score)
			}

			exp := slices.Clone(tt.scores)
			slices.Sort(exp)
			if !slices.Equal(got, exp) {
				t.Errorf("pop order %v, expected %v", got, exp)
			}
		})
	}
}

func TestQueue_PopEmpty(t *testing.T) {
	q := New(byScore)

	item, ok := q.Pop()
	testutil.AssertEqual(t, "ok", ok, false)
	if item != nil {
		t.Errorf("expected nil item, got %v", item)
	}

	_, ok = q.Peek()
	testutil.AssertEqual(t, "peek ok", ok, false)
}

func TestQueue_Rescore(t *testing.T) {
	q := New(byScore)
	a := &scored{name: "a", score: 10}
	b := &scored{name: "b", score: 20}
	c := &scored{name: "c", score: 30}
	q.Push(a)
	q.Push(b)
	q.Push(c)

	c.score = 5
	testutil.AssertEqual(t, "rescored", q.Rescore(c), true)

	top, _ := q.Peek()
	testutil.AssertEqual(t, "top", top.name, "c")

	missing := &scored{name: "c", score: 5}
	testutil.AssertEqual(t, "rescore by value", q.Rescore(missing), false)
	testutil.AssertEqual(t, "contains by value", q.Contains(missing), false)
}

func TestQueue_PushQueuedItemRescores(t *testing.T) {
	q := New(byScore)
	a := &scored{name: "a", score: 10}
	b := &scored{name: "b", score: 20}
	q.Push(a)
	q.Push(b)

	b.score = 1
	q.Push(b)

	testutil.AssertEqual(t, "len", q.Len(), 2)
	top, _ := q.Pop()
	testutil.AssertEqual(t, "top", top.name, "b")
}

func TestQueue_Clear(t *testing.T) {
	q := New(byScore)
	a := &scored{score: 1}
	q.Push(a)
	q.Push(&scored{score: 2})

	q.Clear()

	testutil.AssertEqual(t, "len", q.Len(), 0)
	testutil.AssertEqual(t, "contains", q.Contains(a), false)

	q.Push(a)
	top, ok := q.Pop()
	testutil.AssertEqual(t, "ok", ok, true)
	testutil.AssertEqual(t, "top", top, a)
}

func TestQueue_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	q := New(byScore)
	live := map[*scored]bool{}

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(live) == 0:
			item := &scored{score: rng.Intn(1000)}
			q.Push(item)
			live[item] = true
		case op == 1:
			for item := range live {
				item.score -= rng.Intn(100)
				q.Rescore(item)
				break
			}
		default:
			min := -1
			for item := range live {
				if min == -1 || item.score < min {
					min = item.score
				}
			}
			item, ok := q.Pop()
			if !ok {
				t.Fatalf("step %d: pop on non-empty queue failed", step)
			}
			if item.score != min {
				t.Fatalf("step %d: popped %d, minimum is %d", step, item.score, min)
			}
			delete(live, item)
		}
		testutil.AssertEqual(t, "len", q.Len(), len(live))
	}
}

func TestQueue_ArenaIndices(t *testing.T) {
	keys := []float64{7, 3, 9, 1}
	q := New(func(a, b int) bool { return keys[a] < keys[b] })
	for i := range keys {
		q.Push(i)
	}

	keys[2] = 0
	q.Rescore(2)

	var got []int
	for q.Len() > 0 {
		i, _ := q.Pop()
		got = append(got, i)
	}
	if !slices.Equal(got, []int{2, 3, 1, 0}) {
		t.Errorf("pop order %v, expected [2 3 1 0]", got)
	}
}
