package telegram

import "sync"

// keyedQueue runs tasks one at a time per key, in submission order. Tasks
// with different keys run concurrently.
type keyedQueue struct {
	mu      sync.Mutex
	pending map[int64][]func()
	wg      sync.WaitGroup
}

func newKeyedQueue() *keyedQueue {
	return &keyedQueue{
		pending: make(map[int64][]func()),
	}
}

func (q *keyedQueue) Submit(key int64, task func()) {
	q.mu.Lock()
	q.pending[key] = append(q.pending[key], task)
	start := len(q.pending[key]) == 1
	if start {
		q.wg.Add(1)
	}
	q.mu.Unlock()

	if start {
		go q.drain(key)
	}
}

// drain owns the key while its slice is non-empty; the running task stays at
// index 0 until it returns.
func (q *keyedQueue) drain(key int64) {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		task := q.pending[key][0]
		q.mu.Unlock()

		task()

		q.mu.Lock()
		rest := q.pending[key][1:]
		if len(rest) == 0 {
			delete(q.pending, key)
			q.mu.Unlock()
			return
		}
		q.pending[key] = rest
		q.mu.Unlock()
	}
}

func (q *keyedQueue) Wait() {
	q.wg.Wait()
}
