package parallel

import (
	"sync/atomic"
	"testing"
)

func TestPoolRun(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var count atomic.Int64
	tasks := make([]func(), 100)
	for i := range tasks {
		tasks[i] = func() { count.Add(1) }
	}

	p.Run(tasks)

	if got := count.Load(); got != 100 {
		t.Errorf("Run executed %d tasks, want 100", got)
	}
}

func TestPoolRunEmpty(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	p.Run(nil)
	p.Run([]func(){})
}

func TestPoolDefaultWorkers(t *testing.T) {
	p := NewPool(0)
	defer p.Close()

	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", p.Workers())
	}
}

func TestPoolCloseTwice(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()

	// Run after Close must be a no-op, not a deadlock.
	var count atomic.Int64
	p.Run([]func(){func() { count.Add(1) }})
	if count.Load() != 0 {
		t.Error("Run after Close should not execute tasks")
	}
}

func TestPoolUnevenTasks(t *testing.T) {
	p := NewPool(3)
	defer p.Close()

	var sum atomic.Int64
	tasks := make([]func(), 64)
	for i := range tasks {
		n := int64(i)
		tasks[i] = func() {
			total := int64(0)
			for j := int64(0); j <= n*100; j++ {
				total += j
			}
			sum.Add(n + total - total)
		}
	}

	p.Run(tasks)

	// Sum of 0..63.
	if got := sum.Load(); got != 2016 {
		t.Errorf("task sum = %d, want 2016", got)
	}
}

func BenchmarkPoolRun(b *testing.B) {
	p := NewPool(0)
	defer p.Close()

	tasks := make([]func(), 32)
	for i := range tasks {
		tasks[i] = func() {}
	}

	for b.Loop() {
		p.Run(tasks)
	}
}
