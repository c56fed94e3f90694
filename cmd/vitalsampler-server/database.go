package main

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/martin2250/vitalsampler/database"
	"github.com/martin2250/vitalsampler/ingest"
	"github.com/martin2250/vitalsampler/metrics"
)

// flushWorker moves queued measurements into the database, at most batch measurements per call
func flushWorker(queue *ingest.Queue, db *database.Database, batch int) int {
	ms := queue.Drain(batch)
	if len(ms) == 0 {
		return 0
	}

	if rejected := db.Insert(ms); rejected > 0 {
		log.WithField("count", rejected).Warning("Insert failed")
	}

	return len(ms)
}

// flushQueue drains the queue using workers goroutines
func flushQueue(queue *ingest.Queue, db *database.Database, workers uint, batch int) {
	done := make(chan int)

	for i := uint(0); i < workers; i++ {
		go func() {
			total := 0
			for {
				n := flushWorker(queue, db, batch)
				if n == 0 {
					break
				}
				total += n
			}
			done <- total
		}()
	}

	total := 0
	for i := uint(0); i < workers; i++ {
		total += <-done
	}

	if total > 0 {
		log.WithField("count", total).Debug("Flushed measurements")
	}
}

// expire applies the retention to the database
func expire(db *database.Database, retention time.Duration, m *metrics.Metrics) {
	if retention <= 0 {
		return
	}

	n := db.Expire(time.Now().Add(-retention))
	if n > 0 {
		log.WithField("count", n).Info("Expired measurements")
	}
	m.AddExpired(n)
	m.SetStored(db.Len())
}
