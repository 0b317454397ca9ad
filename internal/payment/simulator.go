package payment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// declineSuffix marks the well-known test card that is always refused.
const declineSuffix = "0000"

// Simulator stands in for a real processor. Unlike a cosmetic spinner delay,
// the processing time is a real wait that honors context cancellation.
type Simulator struct {
	Delay time.Duration
	now   func() time.Time
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{Delay: delay, now: time.Now}
}

func (s *Simulator) Charge(ctx context.Context, card Card, amount decimal.Decimal) (*Receipt, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if strings.HasSuffix(strings.ReplaceAll(card.Number, " ", ""), declineSuffix) {
		return nil, ErrDeclined
	}

	return &Receipt{
		ID:          uuid.NewString(),
		Amount:      amount,
		ProcessedAt: s.now(),
	}, nil
}
