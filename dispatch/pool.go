package dispatch

import (
	"sync"
	"sync/atomic"

	"github.com/segmentio/fasthash/fnv1a"
)

// Pool runs tasks on a fixed set of workers. Tasks submitted with the same
// key always land on the same worker and run in submission order.
type Pool struct {
	maxWorkers int
	taskQueues []chan func()
	wg         sync.WaitGroup
	stopped    atomic.Bool
}

// NewPool starts maxWorkers workers, each with a queue of queueBuffer tasks.
func NewPool(maxWorkers int, queueBuffer int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if queueBuffer < 1 {
		queueBuffer = 1
	}

	p := &Pool{
		maxWorkers: maxWorkers,
		taskQueues: make([]chan func(), maxWorkers),
	}

	for i := 0; i < maxWorkers; i++ {
		p.taskQueues[i] = make(chan func(), queueBuffer)
		p.wg.Add(1)
		go p.startWorker(p.taskQueues[i])
	}

	return p
}

func (p *Pool) startWorker(queue chan func()) {
	defer p.wg.Done()
	for task := range queue {
		task()
	}
}

// Submit queues task on the worker owning key. It blocks while that worker's
// queue is full and returns false once the pool is stopped, including when
// Stop runs while Submit is waiting. Tasks may submit further tasks.
func (p *Pool) Submit(key string, task func()) (accepted bool) {
	if task == nil || p.stopped.Load() {
		return false
	}

	// Stop closes the queues; a send blocked on a closed queue panics.
	defer func() {
		if recover() != nil {
			accepted = false
		}
	}()

	idx := fnv1a.HashString64(key) % uint64(p.maxWorkers)
	p.taskQueues[idx] <- task
	return true
}

// Stop rejects new tasks, waits for queued tasks to finish and shuts the
// workers down.
func (p *Pool) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	for _, q := range p.taskQueues {
		close(q)
	}

	p.wg.Wait()
}
