package querycache

import (
	"context"
	"sync"
	"time"
)

// poller triggers a refetch on every tick until stopped.
type poller struct {
	interval time.Duration
	tick     func()

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

func newPoller(interval time.Duration, tick func()) *poller {
	return &poller{interval: interval, tick: tick}
}

// Start launches the polling loop.
func (p *poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.run(runCtx)
}

// Stop ends the loop and waits for it to exit. Fetches already triggered keep running.
func (p *poller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *poller) run(ctx context.Context) {
	defer p.wg.Done()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick()
		}
	}
}
