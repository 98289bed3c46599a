package ringbuffer

// RingBuffer is a fixed capacity FIFO buffer. It is not safe for concurrent use.
type RingBuffer[T any] struct {
	buf  []T
	head int
	tail int
	size int
}

// New creates a RingBuffer with the given capacity.
// A default capacity of 1 is used if the given value is zero.
func New[T any](capacity uint) *RingBuffer[T] {
	return &RingBuffer[T]{
		buf: make([]T, max(1, capacity)),
	}
}

// Size returns the number of elements currently in the buffer.
func (r *RingBuffer[T]) Size() int {
	return r.size
}

// Cap returns the buffer capacity.
func (r *RingBuffer[T]) Cap() int {
	return len(r.buf)
}

// IsFull returns true if the buffer is full.
func (r *RingBuffer[T]) IsFull() bool {
	return r.size == len(r.buf)
}

// Push adds the provided item to the buffer. It returns false if the buffer is full and a push cannot be done.
func (r *RingBuffer[T]) Push(item T) bool {
	if r.IsFull() {
		return false
	}

	r.buf[r.tail] = item
	r.tail = (r.tail + 1) % len(r.buf)
	r.size++
	return true
}

// Overwrite adds item to the buffer, evicting the oldest item first if the buffer is full.
// The evicted item is returned along with true if an eviction happened.
func (r *RingBuffer[T]) Overwrite(item T) (T, bool) {
	evicted, ok := r.zero(), false
	if r.IsFull() {
		evicted, ok = r.Pop()
	}

	r.Push(item)
	return evicted, ok
}

// Pop removes and returns the oldest item. If empty, it returns (zero[T], false).
func (r *RingBuffer[T]) Pop() (T, bool) {
	if r.size == 0 {
		return r.zero(), false
	}

	item := r.buf[r.head]
	r.buf[r.head] = r.zero()
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	return item, true
}

// Items returns the buffered items, oldest first, without removing them.
func (r *RingBuffer[T]) Items() []T {
	items := make([]T, 0, r.size)
	for i := range r.size {
		items = append(items, r.buf[(r.head+i)%len(r.buf)])
	}
	return items
}

func (r *RingBuffer[T]) zero() T {
	var zero T
	return zero
}
