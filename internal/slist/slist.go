// Package slist provides an intrusive, removal-safe listener list.
// Compositor listeners are free to unsubscribe (or destroy the object
// being listened to) from inside their own callback; a plain slice
// iteration would skip or double-call neighbors when that happens, so
// listeners are linked through prev/next pointers the way the
// reference event queue links its pending entries, and Emit walks the
// list by following the captured next pointer rather than indexing.
package slist

// List is a doubly-linked list of listener entries of type T.
type List[T any] struct {
	head *Entry[T]
	tail *Entry[T]
}

// Entry is one registered listener. The zero value is not usable;
// entries are created by List.Add.
type Entry[T any] struct {
	Value T

	list       *List[T]
	prev, next *Entry[T]
	removed    bool
}

// Add appends a new listener entry and returns a handle that can be
// passed to Remove.
func (l *List[T]) Add(v T) *Entry[T] {
	e := &Entry[T]{Value: v, list: l}
	if l.tail != nil {
		l.tail.next = e
		e.prev = l.tail
		l.tail = e
	} else {
		l.head = e
		l.tail = e
	}
	return e
}

// Remove unlinks an entry. Safe to call while the list is being
// walked by Emit, including from within the callback for the entry
// being removed.
func (l *List[T]) Remove(e *Entry[T]) {
	if e == nil || e.removed || e.list != l {
		return
	}
	e.removed = true
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	// e.next is left pointing at whatever followed it at the moment of
	// removal, rather than nulled: an Emit already past this entry may
	// still be holding it as its "next" stop and needs a path forward
	// to the entries after it. Entries are never reused once removed,
	// so a stale forward pointer here can't resurrect a removed node
	// into a later, independent Emit walk (those all start at l.head).
	e.prev = nil
}

// Len reports the number of live entries.
func (l *List[T]) Len() int {
	n := 0
	for e := l.head; e != nil; e = e.next {
		n++
	}
	return n
}

// Emit calls fn for every listener in the list, tolerating removal of
// the current entry or a not-yet-visited entry, and the addition of
// new entries mid-iteration. An entry added by fn is visited by the
// same Emit, unless it was added while fn was running for the entry
// that was then last in the list.
func Emit[T any](l *List[T], fn func(T)) {
	for e := l.head; e != nil; {
		next := e.next
		if !e.removed {
			fn(e.Value)
		}
		e = next
	}
}
