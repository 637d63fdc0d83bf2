package payment

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// SimulatedGateway stands in for a real payment provider. Each charge takes
// a random slice of MaxDelay and fails transiently with probability
// FailureRate.
type SimulatedGateway struct {
	FailureRate float64
	MaxDelay    time.Duration
}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{FailureRate: 0.15, MaxDelay: 2 * time.Second}
}

func (g *SimulatedGateway) Charge(ctx context.Context, orderID, code string) (string, error) {
	if g.MaxDelay > 0 {
		delay := time.Duration(rand.Int63n(int64(g.MaxDelay)))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if rand.Float64() < g.FailureRate {
		return "", errors.New("payment gateway error (simulated)")
	}
	return uuid.NewString(), nil
}
