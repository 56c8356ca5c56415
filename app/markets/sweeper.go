package markets

import (
	"context"
	"time"

	"github.com/joefazee/creda/internal/logger"
)

// Sweeper periodically closes markets whose close time has passed
type Sweeper struct {
	service  Service
	interval time.Duration
	logger   logger.Logger
}

// NewSweeper creates a new auto-close sweeper
func NewSweeper(service Service, interval time.Duration, lg logger.Logger) *Sweeper {
	return &Sweeper{
		service:  service,
		interval: interval,
		logger:   lg,
	}
}

// Start runs the sweep loop until the context is canceled
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.service.ProcessExpiredMarkets(ctx); err != nil {
				s.logger.Error(err, map[string]interface{}{"task": "market_sweep"})
			}
		}
	}
}
