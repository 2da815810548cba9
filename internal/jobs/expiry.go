package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ExpiryStore performs the bulk state change of the sweep.
type ExpiryStore interface {
	ExpirePurchases(ctx context.Context, now time.Time) (int64, error)
}

// ExpirySweeper periodically marks active purchases past their expiry date
// as expired. Coupons are left alone: their validity window is checked on
// every lookup, and switching them off would turn "expired" into "not found".
type ExpirySweeper struct {
	store    ExpiryStore
	interval time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewExpirySweeper(store ExpiryStore, interval time.Duration, log *zap.Logger) *ExpirySweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExpirySweeper{
		store:    store,
		interval: interval,
		log:      log.Named("expiry"),
		now:      time.Now,
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *ExpirySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("expiry sweeper started", zap.Duration("interval", s.interval))
	s.SweepOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("expiry sweeper stopped")
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

func (s *ExpirySweeper) SweepOnce(ctx context.Context) {
	purchases, err := s.store.ExpirePurchases(ctx, s.now())
	if err != nil {
		s.log.Error("expire purchases failed", zap.Error(err))
		return
	}
	if purchases > 0 {
		s.log.Info("purchases expired", zap.Int64("count", purchases))
	}
}
