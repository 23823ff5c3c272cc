package worker // import "github.com/libris-io/libris/worker"

import (
	"github.com/libris-io/libris/model"
	"github.com/libris-io/libris/store"
)

type Pool struct {
	queue chan model.Job
}

// NewPool creates a pool of background workers.
func NewPool(store *store.Store, size int) *Pool {
	workerPool := &Pool{
		queue: make(chan model.Job),
	}

	for i := 0; i < size; i++ {
		worker := &DebtorScanWorker{id: i, store: store}
		go worker.Run(workerPool.queue)
	}
	return workerPool
}

// Implement WorkPool interface
func (p *Pool) Push(job model.Job) {
	p.queue <- job
}

func (p *Pool) GetQueue() chan model.Job {
	return p.queue
}
