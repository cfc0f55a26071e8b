package main

import (
	"context"
	"time"

	"github.com/SASASDAa/tgsg-sub000/internal/service"
)

// startTimeoutScanner ends idle human turns and drops finished matches until
// ctx is done.
func startTimeoutScanner(ctx context.Context, matches *service.Manager) {
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				matches.ExpireTurns(now)
				matches.Reap(now)
			}
		}
	}()
}
