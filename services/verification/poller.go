package verification

import (
	"context"
	"errors"
	"time"

	"bookingportal/models"

	"go.uber.org/zap"
)

// ErrTokenCleared stops a poller whose verification session token was removed.
var ErrTokenCleared = errors.New("verification session token cleared")

const DefaultInterval = time.Second

// Poller asks the API whether a verification session has moved past Current.
// Token is read on every tick so a resend takes effect on the next check.
type Poller struct {
	Interval time.Duration
	Current  models.NextStep
	Token    func(ctx context.Context) string
	Check    func(ctx context.Context, token string) (models.NextStep, error)
	Logger   *zap.Logger
}

type checkResult struct {
	step models.NextStep
	err  error
}

// Run blocks until the step changes, ctx is done, or the token becomes empty.
// At most one Check is outstanding; ticks that arrive while one is running are skipped.
func (p *Poller) Run(ctx context.Context) (models.NextStep, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Buffered so an abandoned check can still finish after Run returns.
	results := make(chan checkResult, 1)
	inFlight := false

	for {
		select {
		case <-ctx.Done():
			return p.Current, ctx.Err()

		case res := <-results:
			inFlight = false
			if res.err != nil {
				logger.Warn("verification: status check failed", zap.Error(res.err))
				continue
			}
			if res.step != p.Current {
				logger.Debug("verification: step changed",
					zap.String("from", string(p.Current)),
					zap.String("to", string(res.step)))
				return res.step, nil
			}

		case <-ticker.C:
			token := p.Token(ctx)
			if token == "" {
				return p.Current, ErrTokenCleared
			}
			if inFlight {
				continue
			}
			inFlight = true
			go func() {
				step, err := p.Check(ctx, token)
				results <- checkResult{step: step, err: err}
			}()
		}
	}
}
