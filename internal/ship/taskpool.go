package ship

import "sync"

// TaskPool keeps a fixed set of goroutines that split an index range
// between them. Run blocks until every worker has finished its share.
type TaskPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	workers int

	step    int
	pending int
	closed  bool
	n       int
	task    func(start, end int)
}

// NewTaskPool starts workers goroutines. A pool of one runs tasks on the
// caller's goroutine.
func NewTaskPool(workers int) *TaskPool {
	if workers < 1 {
		workers = 1
	}
	tp := &TaskPool{workers: workers}
	tp.cond = sync.NewCond(&tp.mu)
	if workers > 1 {
		for i := 0; i < workers; i++ {
			go tp.workerLoop(i)
		}
	}
	return tp
}

// Workers returns the number of goroutines sharing each Run.
func (tp *TaskPool) Workers() int {
	return tp.workers
}

// Run calls fn over [0, n) split into contiguous chunks, one per worker.
func (tp *TaskPool) Run(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if tp.workers == 1 || n < tp.workers {
		fn(0, n)
		return
	}
	tp.mu.Lock()
	if tp.closed {
		tp.mu.Unlock()
		fn(0, n)
		return
	}
	tp.n = n
	tp.task = fn
	tp.pending = tp.workers
	tp.step++
	tp.cond.Broadcast()
	for tp.pending > 0 {
		tp.cond.Wait()
	}
	tp.task = nil
	tp.mu.Unlock()
}

// Close stops the workers. Later Runs execute inline.
func (tp *TaskPool) Close() {
	tp.mu.Lock()
	tp.closed = true
	tp.step++
	tp.cond.Broadcast()
	tp.mu.Unlock()
}

// workerLoop executes this worker's chunk of every Run until Close.
func (tp *TaskPool) workerLoop(index int) {
	lastStep := 0
	tp.mu.Lock()
	for {
		for tp.step == lastStep {
			tp.cond.Wait()
		}
		lastStep = tp.step
		if tp.closed {
			tp.mu.Unlock()
			return
		}
		fn := tp.task
		start, end := chunk(tp.n, tp.workers, index)
		tp.mu.Unlock()

		if start < end {
			fn(start, end)
		}

		tp.mu.Lock()
		tp.pending--
		if tp.pending == 0 {
			tp.cond.Broadcast()
		}
	}
}

// chunk returns worker index's share of n items.
func chunk(n, workers, index int) (start, end int) {
	size := (n + workers - 1) / workers
	start = min(index*size, n)
	end = min(start+size, n)
	return start, end
}
