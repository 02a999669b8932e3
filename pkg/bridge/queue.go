// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

import "sync"

// call is one unit of work for the transport worker.
type call struct {
	op   string
	fn   func()
	done chan struct{} // closed when fn returns; nil for fire-and-forget
}

// callQueue is an unbounded FIFO of calls.
//
// It is unbounded so that Close can enqueue the foreign close without
// blocking. The signal channel has a buffer of one and coalesces wakeups.
type callQueue struct {
	mu     sync.Mutex
	calls  []*call
	closed bool
	signal chan struct{}
}

func newCallQueue() *callQueue {
	return &callQueue{
		calls:  make([]*call, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends c. It returns false if the queue is closed.
func (q *callQueue) Enqueue(c *call) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.calls = append(q.calls, c)
	queueDepthAdd(1)

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// Dequeue removes the front call, blocking until one is available. It
// returns false once the queue is closed and drained.
func (q *callQueue) Dequeue() (*call, bool) {
	for {
		if c, ok := q.tryDequeue(); ok {
			return c, true
		}

		q.mu.Lock()
		if q.closed && len(q.calls) == 0 {
			q.mu.Unlock()
			return nil, false
		}
		q.mu.Unlock()

		<-q.signal
	}
}

func (q *callQueue) tryDequeue() (*call, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.calls) == 0 {
		return nil, false
	}

	c := q.calls[0]
	q.calls[0] = nil
	if len(q.calls) == 1 {
		q.calls = q.calls[:0]
	} else {
		q.calls = q.calls[1:]
	}
	queueDepthAdd(-1)
	return c, true
}

// Len returns the number of calls waiting to run.
func (q *callQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.calls)
}

// Close stops further enqueues. Calls already queued are still dequeued.
func (q *callQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
