package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(cs []Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Title
	}
	return out
}

func TestAddListRemove(t *testing.T) {
	r := New()
	a := r.Add("contribution", "A", 1)
	b := r.Add("variance", "B", 2)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, []string{"A", "B"}, titles(r.List()))

	require.NoError(t, r.Remove(a.ID))
	assert.Equal(t, []string{"B"}, titles(r.List()))
	assert.ErrorIs(t, r.Remove(a.ID), ErrNotFound)
}

func TestMove(t *testing.T) {
	r := New()
	a := r.Add("k", "A", nil)
	r.Add("k", "B", nil)
	c := r.Add("k", "C", nil)

	require.NoError(t, r.Move(c.ID, 0))
	assert.Equal(t, []string{"C", "A", "B"}, titles(r.List()))
	require.NoError(t, r.Move(a.ID, 99))
	assert.Equal(t, []string{"C", "B", "A"}, titles(r.List()))
	assert.ErrorIs(t, r.Move(uuid.New(), 0), ErrNotFound)
}

func TestListIsACopy(t *testing.T) {
	r := New()
	r.Add("k", "A", nil)
	l := r.List()
	l[0].Title = "changed"
	assert.Equal(t, "A", r.List()[0].Title)
}

func TestSubscribe(t *testing.T) {
	r := New()
	var events []Event
	unsub := r.Subscribe(func(e Event) { events = append(events, e) })

	a := r.Add("k", "A", nil)
	b := r.Add("k", "B", nil)
	require.NoError(t, r.Move(b.ID, 0))
	require.NoError(t, r.Remove(a.ID))
	require.Len(t, events, 4)
	assert.Equal(t, Added, events[0].Type)
	assert.Equal(t, 1, events[1].Index)
	assert.Equal(t, Moved, events[2].Type)
	assert.Equal(t, 1, events[2].From)
	assert.Equal(t, 0, events[2].Index)
	assert.Equal(t, Removed, events[3].Type)
	assert.Equal(t, a.ID, events[3].Card.ID)

	unsub()
	unsub()
	r.Add("k", "C", nil)
	assert.Len(t, events, 4, "no events after unsubscribe")
}

func TestHandlerMayReadRegistry(t *testing.T) {
	r := New()
	var seen int
	r.Subscribe(func(Event) { seen = r.Len() })
	r.Add("k", "A", nil)
	assert.Equal(t, 1, seen)
}

func TestConcurrentAdds(t *testing.T) {
	r := New()
	var mu sync.Mutex
	count := 0
	r.Subscribe(func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Add("k", "x", nil)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, r.Len())
	assert.Equal(t, 50, count)
}
