package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// pollSchedule refreshes the aggregate counters every 30 seconds.
const pollSchedule = "@every 30s"

// StatsPoller maintains studio-wide visit and concurrent-player totals
// across a fixed set of universes, refreshed on a schedule. Reads never
// block on the upstream API.
type StatsPoller struct {
	client      *Client
	universeIDs []string
	logger      *slog.Logger
	cron        *cron.Cron

	mu     sync.RWMutex
	visits int64
	ccu    int64
}

// NewStatsPoller creates a poller for the given universe IDs.
func NewStatsPoller(client *Client, universeIDs []string, logger *slog.Logger) *StatsPoller {
	return &StatsPoller{
		client:      client,
		universeIDs: universeIDs,
		logger:      logger,
		cron:        cron.New(),
	}
}

// Start refreshes the counters once immediately, then on the schedule.
func (p *StatsPoller) Start() error {
	p.refresh()
	if _, err := p.cron.AddFunc(pollSchedule, p.refresh); err != nil {
		return err
	}
	p.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (p *StatsPoller) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
}

// Totals returns the last polled visit and concurrent-player counts.
func (p *StatsPoller) Totals() (visits, ccu int64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.visits, p.ccu
}

func (p *StatsPoller) refresh() {
	var visits, ccu int64
	for _, id := range p.universeIDs {
		stats, err := p.client.Stats(context.Background(), id)
		if err != nil {
			p.logger.Warn("stats poll failed", "universe_id", id, "error", err)
			continue
		}
		visits += stats.Visits
		ccu += stats.Playing
	}

	p.mu.Lock()
	p.visits = visits
	p.ccu = ccu
	p.mu.Unlock()

	p.logger.Debug("stats refreshed", "visits", visits, "ccu", ccu)
}
