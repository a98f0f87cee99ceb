package jobs

import (
	"log"
	"time"

	"github.com/sevasetu/seva-backend/internal/checkout"
)

// SessionCleanupJob periodically evicts abandoned checkout sessions so the
// in-memory session map does not grow without bound.
type SessionCleanupJob struct {
	flow      *checkout.Flow
	interval  time.Duration
	ttl       time.Duration
	stop      chan struct{}
	isRunning bool
}

// NewSessionCleanupJob creates the cleanup job with the given sweep interval
// and idle TTL.
func NewSessionCleanupJob(flow *checkout.Flow, interval, ttl time.Duration) *SessionCleanupJob {
	return &SessionCleanupJob{
		flow:     flow,
		interval: interval,
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
}

// Start begins the sweep loop.
func (j *SessionCleanupJob) Start() {
	if j.isRunning {
		log.Println("Session cleanup job already running")
		return
	}
	j.isRunning = true
	log.Println("Starting checkout session cleanup job...")

	go j.run()
}

// Stop halts the sweep loop.
func (j *SessionCleanupJob) Stop() {
	if !j.isRunning {
		return
	}
	j.isRunning = false
	close(j.stop)
	log.Println("Stopping checkout session cleanup job...")
}

func (j *SessionCleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := j.flow.Evict(j.ttl); removed > 0 {
				log.Printf("🧹 Evicted %d stale checkout sessions", removed)
			}
		case <-j.stop:
			return
		}
	}
}
