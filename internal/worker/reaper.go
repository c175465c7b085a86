// Package worker hosts the background deletion reaper.
package worker

import (
	"context"
	"log"
	"time"

	"github.com/gayu2216/MarketPulse/internal/metrics"
)

// Sweeper completes pending deletions. Satisfied by the deletion service.
type Sweeper interface {
	ResumePending(ctx context.Context, limit int) (int, error)
}

// Reaper periodically resumes accounts stuck in pending_deletion, so that
// a crash or collaborator failure mid-cleanup never strands a deletion.
type Reaper struct {
	sweeper   Sweeper
	interval  time.Duration
	batchSize int
	collector *metrics.Collector
}

func NewReaper(sweeper Sweeper, interval time.Duration, batchSize int, collector *metrics.Collector) *Reaper {
	return &Reaper{
		sweeper:   sweeper,
		interval:  interval,
		batchSize: batchSize,
		collector: collector,
	}
}

// Run sweeps until ctx is cancelled. The first sweep happens immediately so
// a restart picks up stranded deletions without waiting a full interval.
func (r *Reaper) Run(ctx context.Context) {
	log.Printf("Deletion reaper started: interval=%s batch=%d", r.interval, r.batchSize)

	r.sweep(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Deletion reaper stopping")
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	resumed, err := r.sweeper.ResumePending(ctx, r.batchSize)
	if err != nil {
		log.Printf("Reaper sweep failed: %v", err)
		return
	}
	r.collector.RecordReaperSweep(resumed)
	if resumed > 0 {
		log.Printf("Reaper completed %d pending deletion(s)", resumed)
	}
}
