package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
)

// RunPending processes every claim still waiting for a decisioning pass
// (status submitted, or the legacy pending) with a bounded pool of workers.
// Returns how many claims were processed. One claim's failure is logged and
// does not stop the batch.
func (p *Processor) RunPending(ctx context.Context, numWorkers int) (int, error) {
	if numWorkers < 1 {
		numWorkers = 1
	}

	all, err := p.store.Claims.ReadAll(ctx)
	if err != nil {
		return 0, err
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for claimID := range jobs {
				claim, err := p.Process(ctx, claimID)
				if err != nil {
					p.log.WithField("claim", claimID).WithError(err).Error("failed to process claim")
					continue
				}
				if claim != nil {
					processed.Add(1)
				}
			}
		}()
	}

	for _, claim := range all {
		if claim.Pending() {
			jobs <- claim.ID
		}
	}
	close(jobs)
	wg.Wait()

	return int(processed.Load()), nil
}
