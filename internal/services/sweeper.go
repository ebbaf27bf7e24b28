package services

import (
	"context"
	"log/slog"
	"time"

	"clubsite/internal/domain"
)

// StartStatusSweeper starts a background goroutine that periodically applies
// the date-based status derivation to all events. The sweep was previously
// driven by an admin-page timer in the browser; running it in-process keeps
// statuses fresh without an open tab. It is not durable across restarts, but
// a missed window self-heals on the next tick since statuses derive from
// absolute dates. The worker runs until stopCh is closed.
func StartStatusSweeper(svc domain.EventService, logger *slog.Logger, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				n, err := svc.SyncStatuses(ctx)
				cancel()
				if err != nil {
					logger.Error("status sweep failed", "err", err)
					continue
				}
				if n > 0 {
					logger.Info("status sweep applied", "updated", n)
				}
			case <-stopCh:
				logger.Info("status sweeper stopped")
				return
			}
		}
	}()
}
