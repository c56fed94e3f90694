package ingest

import (
	"container/list"
	"sync"

	"github.com/martin2250/vitalsampler/sampler"
)

// Queue is a simple fifo queue for measurements with thread-safe access
type Queue struct {
	fifo *list.List
	mux  sync.Mutex
}

// NewQueue initializes a Queue
func NewQueue() *Queue {
	return &Queue{
		fifo: list.New(),
	}
}

// AddMeasurement pushes a measurement onto the queue
func (q *Queue) AddMeasurement(m sampler.Measurement) {
	q.mux.Lock()
	q.fifo.PushBack(m)
	q.mux.Unlock()
}

// GetMeasurement pops the oldest measurement from the queue
func (q *Queue) GetMeasurement() (sampler.Measurement, bool) {
	q.mux.Lock()
	defer q.mux.Unlock()

	e := q.fifo.Front()
	if e == nil {
		return sampler.Measurement{}, false
	}
	q.fifo.Remove(e)

	return e.Value.(sampler.Measurement), true
}

// Drain pops up to max measurements at once, max <= 0 pops everything
func (q *Queue) Drain(max int) []sampler.Measurement {
	q.mux.Lock()
	defer q.mux.Unlock()

	n := q.fifo.Len()
	if max > 0 && max < n {
		n = max
	}

	out := make([]sampler.Measurement, 0, n)
	for i := 0; i < n; i++ {
		e := q.fifo.Front()
		q.fifo.Remove(e)
		out = append(out, e.Value.(sampler.Measurement))
	}

	return out
}

// Len returns the number of queued measurements
func (q *Queue) Len() int {
	q.mux.Lock()
	defer q.mux.Unlock()
	return q.fifo.Len()
}
