package worker

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitDone[T any](t *testing.T, task *Task[T]) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !task.Done() {
		if time.Now().After(deadline) {
			t.Fatal("task did not finish")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPollExactlyOnce(t *testing.T) {
	pool := NewPool(2)
	task := Spawn(pool, func() []int { return []int{1, 2, 3} })
	waitDone(t, task)

	got, ok := task.Poll()
	if !ok || len(got) != 3 {
		t.Fatalf("first Poll = %v, %v", got, ok)
	}
	if !task.Consumed() {
		t.Error("task not marked consumed")
	}

	for i := 0; i < 3; i++ {
		if again, ok := task.Poll(); ok || again != nil {
			t.Errorf("Poll after consumption returned %v, %v", again, ok)
		}
	}
}

func TestPollBeforeCompletion(t *testing.T) {
	pool := NewPool(1)
	release := make(chan struct{})
	task := Spawn(pool, func() int {
		<-release
		return 7
	})

	if _, ok := task.Poll(); ok {
		t.Error("Poll returned a result before completion")
	}
	if task.Consumed() {
		t.Error("unfinished task marked consumed")
	}

	close(release)
	waitDone(t, task)

	if v, ok := task.Poll(); !ok || v != 7 {
		t.Errorf("Poll = %v, %v", v, ok)
	}
}

func TestConcurrentPollDeliversOnce(t *testing.T) {
	pool := NewPool(1)
	task := Spawn(pool, func() int { return 1 })
	waitDone(t, task)

	var deliveries atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := task.Poll(); ok {
				deliveries.Add(1)
			}
		}()
	}
	wg.Wait()

	if deliveries.Load() != 1 {
		t.Errorf("result delivered %d times", deliveries.Load())
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const size = 3
	pool := NewPool(size)

	var current, peak atomic.Int32
	tasks := make([]*Task[struct{}], 20)
	for i := range tasks {
		tasks[i] = Spawn(pool, func() struct{} {
			n := current.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			current.Add(-1)
			return struct{}{}
		})
	}
	pool.Wait()

	if peak.Load() > size {
		t.Errorf("peak concurrency %d exceeds pool size %d", peak.Load(), size)
	}

	stats := pool.Stats()
	if stats.Completed != int64(len(tasks)) || stats.Running != 0 || stats.Queued != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestSpawnDoesNotBlock(t *testing.T) {
	pool := NewPool(1)
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	for i := 0; i < 10; i++ {
		Spawn(pool, func() int {
			<-release
			return 0
		})
	}
	if time.Since(start) > time.Second {
		t.Error("Spawn blocked on a saturated pool")
	}
}

func TestPanicDeliversZeroValue(t *testing.T) {
	pool := NewPool(1)
	task := Spawn(pool, func() []string { panic("boom") })
	waitDone(t, task)

	v, ok := task.Poll()
	if !ok || v != nil {
		t.Errorf("Poll = %v, %v; want nil, true", v, ok)
	}
	if pool.Stats().Panicked != 1 {
		t.Errorf("panicked = %d, want 1", pool.Stats().Panicked)
	}
}

func TestNewPoolMinimumSize(t *testing.T) {
	if NewPool(0).Size() != 1 {
		t.Error("pool size should be at least 1")
	}
}
