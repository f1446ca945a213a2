// Package gateway provides simulated payment gateway capabilities. Real
// gateway SDK integration is out of scope; these reproduce the observable
// contract: bounded latency, a configured success rate, a transaction
// reference on success and a human-readable message either way.
package gateway

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	domain "github.com/ilmi2809/tubeseai/internal/domain/payment"
)

type simulated struct {
	mu          sync.Mutex
	random      *rand.Rand
	successRate float64
	latency     time.Duration
	refPrefix   string
	successMsg  string
	failureMsg  string
}

// NewCardGateway simulates a card processor. Defaults match the legacy
// behavior: 90% success after ~2s.
func NewCardGateway(successRate float64, latency time.Duration) domain.Gateway {
	return &simulated{
		random:      rand.New(rand.NewSource(time.Now().UnixNano())),
		successRate: successRate,
		latency:     latency,
		refPrefix:   "card",
		successMsg:  "Payment processed successfully",
		failureMsg:  "Card declined",
	}
}

// NewPayPalGateway simulates the PayPal capability: 95% success after ~1.5s
// by default.
func NewPayPalGateway(successRate float64, latency time.Duration) domain.Gateway {
	return &simulated{
		random:      rand.New(rand.NewSource(time.Now().UnixNano())),
		successRate: successRate,
		latency:     latency,
		refPrefix:   "paypal",
		successMsg:  "PayPal payment processed successfully",
		failureMsg:  "PayPal payment failed",
	}
}

func (g *simulated) Charge(ctx context.Context, req domain.ChargeRequest) (domain.ChargeResult, error) {
	_ = req

	if g.latency > 0 {
		select {
		case <-time.After(g.latency):
		case <-ctx.Done():
			return domain.ChargeResult{}, ctx.Err()
		}
	}

	g.mu.Lock()
	roll := g.random.Float64()
	g.mu.Unlock()

	if roll <= g.successRate {
		return domain.ChargeResult{
			Success:       true,
			TransactionID: g.newTransactionID(),
			Message:       g.successMsg,
		}, nil
	}
	return domain.ChargeResult{
		Success: false,
		Message: g.failureMsg,
	}, nil
}

func (g *simulated) newTransactionID() string {
	g.mu.Lock()
	suffix := g.random.Int63n(1 << 46)
	g.mu.Unlock()
	return fmt.Sprintf("%s_%d_%s", g.refPrefix, time.Now().UnixMilli(), base36(suffix, 9))
}

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

func base36(n int64, width int) string {
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = base36Chars[n%36]
		n /= 36
	}
	return string(buf)
}
