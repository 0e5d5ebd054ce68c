package capturekit

import "sync"

// serialQueue runs submitted jobs one at a time, in submission order, on a
// single goroutine. It is the only writer of session state, which removes
// data races on the shared session by construction.
type serialQueue struct {
	mu     sync.Mutex
	jobs   chan func()
	closed bool
}

func newSerialQueue() *serialQueue {
	q := &serialQueue{jobs: make(chan func(), 64)}
	go q.run()
	return q
}

func (q *serialQueue) run() {
	for job := range q.jobs {
		job()
	}
}

// do submits a job without waiting for it. Jobs submitted after close are
// dropped; it reports whether the job was accepted.
func (q *serialQueue) do(job func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.jobs <- job
	return true
}

// doWait submits a job and blocks until it ran. Used where the caller needs
// a value computed on the queue.
func (q *serialQueue) doWait(job func()) {
	done := make(chan struct{})
	if !q.do(func() {
		defer close(done)
		job()
	}) {
		return
	}
	<-done
}

func (q *serialQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.jobs)
}
