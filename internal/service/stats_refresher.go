package service

import (
	"context"
	"time"

	"styllobarber-pdv/internal/ws"

	"github.com/sirupsen/logrus"
)

// StatsRefresher pushes today's stats to websocket clients on a fixed
// interval, skipping ticks while a transaction is being saved.
type StatsRefresher struct {
	pdv      PDVService
	notifier Notifier
	interval time.Duration
	log      logrus.FieldLogger
}

func NewStatsRefresher(pdv PDVService, notifier Notifier, interval time.Duration, log logrus.FieldLogger) *StatsRefresher {
	return &StatsRefresher{pdv: pdv, notifier: notifier, interval: interval, log: log}
}

func (r *StatsRefresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Refresh(ctx)
		}
	}
}

// Refresh publishes one stats event and reports whether it did.
func (r *StatsRefresher) Refresh(ctx context.Context) bool {
	if r.pdv.Saving() {
		r.log.Debug("StatsRefresher: save in flight, skipping tick")
		return false
	}

	stats, err := r.pdv.GetDailyStats(ctx, StatsFilter{})
	if err != nil {
		r.log.WithError(err).Warn("StatsRefresher.Refresh")
		return false
	}

	return r.notifier.Publish(ws.Event{Type: ws.EventDailyStats, Payload: stats})
}
