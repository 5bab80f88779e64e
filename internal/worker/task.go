package worker

import "sync/atomic"

// Task is the handle of one spawned computation.
type Task[T any] struct {
	done     chan struct{}
	result   T
	consumed atomic.Bool
}

// Spawn schedules fn on the pool and returns immediately. A panic inside fn
// is logged and the task completes with the zero value of T.
func Spawn[T any](p *Pool, fn func() T) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}

	p.submit(func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				p.recovered(r)
			}
		}()
		t.result = fn()
	})

	return t
}

// Poll never blocks. It returns the result and true exactly once, on the first
// call after the computation finished; every other call returns false.
func (t *Task[T]) Poll() (T, bool) {
	var zero T

	select {
	case <-t.done:
	default:
		return zero, false
	}

	if !t.consumed.CompareAndSwap(false, true) {
		return zero, false
	}

	result := t.result
	t.result = zero
	return result, true
}

// Done reports completion without taking the result.
func (t *Task[T]) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (t *Task[T]) Consumed() bool {
	return t.consumed.Load()
}
