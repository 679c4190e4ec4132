package console

// Ring is a fixed-capacity buffer. Push is O(1); once the buffer is full the
// oldest entry is evicted silently. Snapshots are returned newest-first.
type Ring[T any] struct {
	items []T
	head  int
	count int
}

func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

func (r *Ring[T]) Push(item T) {
	r.items[r.head] = item
	r.head = (r.head + 1) % len(r.items)
	if r.count < len(r.items) {
		r.count++
	}
}

func (r *Ring[T]) Len() int {
	return r.count
}

// Snapshot copies the buffered entries, newest first.
func (r *Ring[T]) Snapshot() []T {
	out := make([]T, 0, r.count)
	for i := 1; i <= r.count; i++ {
		idx := (r.head - i + len(r.items)) % len(r.items)
		out = append(out, r.items[idx])
	}
	return out
}
