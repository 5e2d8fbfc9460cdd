// Package queue stages card names and quantities before they are committed
// to a deck in a single batch.
package queue

import "strings"

// Entry is one distinct card name in the queue
type Entry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Input is the add-card form bound to a queue
type Input struct {
	Name     string
	Quantity int
}

// NewInput returns an empty form with the default quantity of 1
func NewInput() Input {
	return Input{Quantity: 1}
}

// Reset clears the form back to its defaults
func (in *Input) Reset() {
	in.Name = ""
	in.Quantity = 1
}

// Queue accumulates card names with quantities. Names are unique
// case-insensitively and kept in insertion order.
// Not safe for concurrent use; owners guard it with their own lock.
type Queue struct {
	entries []Entry
}

// New creates an empty queue
func New() *Queue {
	return &Queue{}
}

// Add merges quantity copies of name into the queue. An empty name or a
// quantity below 1 is ignored. Reports whether the queue changed.
func (q *Queue) Add(name string, quantity int) bool {
	if name == "" || quantity < 1 {
		return false
	}

	if i := q.indexOf(name); i >= 0 {
		q.entries[i].Quantity += quantity
		return true
	}

	q.entries = append(q.entries, Entry{Name: name, Quantity: quantity})
	return true
}

// AddInput adds the form's card to the queue and resets the form when the
// add was accepted
func (q *Queue) AddInput(in *Input) bool {
	if !q.Add(in.Name, in.Quantity) {
		return false
	}
	in.Reset()
	return true
}

// Remove deletes the entry at index; out of range indexes are ignored
func (q *Queue) Remove(index int) {
	if index < 0 || index >= len(q.entries) {
		return
	}
	q.entries = append(q.entries[:index], q.entries[index+1:]...)
}

// Clear empties the queue
func (q *Queue) Clear() {
	q.entries = nil
}

// Len returns the number of distinct names queued
func (q *Queue) Len() int {
	return len(q.entries)
}

// Total returns the sum of all quantities
func (q *Queue) Total() int {
	total := 0
	for _, e := range q.entries {
		total += e.Quantity
	}
	return total
}

// Entries returns a copy of the queued entries
func (q *Queue) Entries() []Entry {
	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Flatten expands the queue into one name per card, e.g. 4 Forest and
// 1 Sol Ring become [Forest Forest Forest Forest Sol Ring]
func (q *Queue) Flatten() []string {
	names := make([]string, 0, q.Total())
	for _, e := range q.entries {
		for i := 0; i < e.Quantity; i++ {
			names = append(names, e.Name)
		}
	}
	return names
}

func (q *Queue) indexOf(name string) int {
	for i, e := range q.entries {
		if strings.EqualFold(e.Name, name) {
			return i
		}
	}
	return -1
}
