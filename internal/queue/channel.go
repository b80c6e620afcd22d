package queue

// Channel is the standard library baseline for Ring: a buffered channel
// driven with select/default.
type Channel[T any] struct {
	ch chan T
}

// NewChannel creates a Channel holding up to size items.
func NewChannel[T any](size int) *Channel[T] {
	return &Channel[T]{
		ch: make(chan T, size),
	}
}

func (q *Channel[T]) Push(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

func (q *Channel[T]) Pop() (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

func (q *Channel[T]) Len() int { return len(q.ch) }
func (q *Channel[T]) Cap() int { return cap(q.ch) }
