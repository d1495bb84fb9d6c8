// Package session keeps an ordered list of analysis results ("cards") for a
// single CLI run and notifies subscribers when the list changes.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Card is one analysis result in the list.
type Card struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	Result    any       `json:"result"`
}

type EventType string

const (
	Added   EventType = "added"
	Removed EventType = "removed"
	Moved   EventType = "moved"
)

// Event describes a change. Index is the card's position after the change,
// or its former position for Removed.
type Event struct {
	Type  EventType
	Card  Card
	Index int
	From  int
}

// ErrNotFound is returned when no card has the given id.
var ErrNotFound = errors.New("card not found")

// Registry is safe for concurrent use. Handlers run synchronously on the
// goroutine that made the change, after the lock is released.
type Registry struct {
	mu     sync.RWMutex
	cards  []Card
	subs   map[int]func(Event)
	nextID int
	now    func() time.Time
}

func New() *Registry {
	return &Registry{subs: map[int]func(Event){}, now: time.Now}
}

// Subscribe registers fn for every subsequent change and returns a function
// that removes it.
func (r *Registry) Subscribe(fn func(Event)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
		})
	}
}

// Add appends a card with a fresh id and returns it.
func (r *Registry) Add(kind, title string, result any) Card {
	r.mu.Lock()
	c := Card{ID: uuid.New(), Kind: kind, Title: title, CreatedAt: r.now().UTC(), Result: result}
	r.cards = append(r.cards, c)
	idx := len(r.cards) - 1
	handlers := r.handlers()
	r.mu.Unlock()

	publish(handlers, Event{Type: Added, Card: c, Index: idx, From: idx})
	return c
}

func (r *Registry) Remove(id uuid.UUID) error {
	r.mu.Lock()
	idx := r.indexOf(id)
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	c := r.cards[idx]
	r.cards = append(r.cards[:idx], r.cards[idx+1:]...)
	handlers := r.handlers()
	r.mu.Unlock()

	publish(handlers, Event{Type: Removed, Card: c, Index: idx, From: idx})
	return nil
}

// Move places the card at position to, clamped to the list bounds.
func (r *Registry) Move(id uuid.UUID, to int) error {
	r.mu.Lock()
	from := r.indexOf(id)
	if from < 0 {
		r.mu.Unlock()
		return fmt.Errorf("move %s: %w", id, ErrNotFound)
	}
	if to < 0 {
		to = 0
	}
	if to > len(r.cards)-1 {
		to = len(r.cards) - 1
	}
	if to == from {
		r.mu.Unlock()
		return nil
	}
	c := r.cards[from]
	r.cards = append(r.cards[:from], r.cards[from+1:]...)
	r.cards = append(r.cards[:to], append([]Card{c}, r.cards[to:]...)...)
	handlers := r.handlers()
	r.mu.Unlock()

	publish(handlers, Event{Type: Moved, Card: c, Index: to, From: from})
	return nil
}

// List returns a copy of the cards in order.
func (r *Registry) List() []Card {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Card, len(r.cards))
	copy(out, r.cards)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cards)
}

func (r *Registry) indexOf(id uuid.UUID) int {
	for i, c := range r.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// handlers snapshots subscribers in registration order. Caller holds mu.
func (r *Registry) handlers() []func(Event) {
	out := make([]func(Event), 0, len(r.subs))
	for id := 0; id < r.nextID; id++ {
		if fn, ok := r.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func publish(handlers []func(Event), ev Event) {
	for _, fn := range handlers {
		fn(ev)
	}
}
