package sweeper

import (
	"context"
	"log"
	"time"
)

// ExpiryPruner deletes rows whose expires_at has passed, reporting how many
// were removed.
type ExpiryPruner interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically prunes expired refresh-token and blacklist rows. It
// runs outside the request path and holds no locks that block lifecycle
// operations; a failed pass is logged and retried on the next tick.
type Sweeper struct {
	refreshTokens ExpiryPruner
	blacklist     ExpiryPruner
	interval      time.Duration
}

func New(refreshTokens, blacklist ExpiryPruner, interval time.Duration) *Sweeper {
	return &Sweeper{
		refreshTokens: refreshTokens,
		blacklist:     blacklist,
		interval:      interval,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	if err := s.Sweep(ctx); err != nil {
		log.Printf("sweeper: initial sweep failed: %v", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				log.Printf("sweeper: sweep failed: %v", err)
			}
		}
	}
}

// Sweep deletes all expired rows using the current time at the moment it
// executes. Running it twice in a row is harmless: the second pass deletes
// nothing.
func (s *Sweeper) Sweep(ctx context.Context) error {
	now := time.Now()

	refreshDeleted, err := s.refreshTokens.DeleteExpired(ctx, now)
	if err != nil {
		return err
	}
	blacklistDeleted, err := s.blacklist.DeleteExpired(ctx, now)
	if err != nil {
		return err
	}

	log.Printf("sweeper: pass completed refresh_tokens=%d token_blacklist=%d", refreshDeleted, blacklistDeleted)
	return nil
}
