package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCode(t *testing.T) {
	testCases := []struct {
		name  string
		code  string
		valid bool
	}{
		{name: "five digits", code: "12345", valid: true},
		{name: "four digits", code: "1234", valid: false},
		{name: "six digits", code: "123456", valid: false},
		{name: "letters", code: "12a45", valid: false},
		{name: "empty", code: "", valid: false},
		{name: "digits with space", code: "1234 ", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCode(tc.code)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// stubGateway fails a fixed number of times before succeeding.
type stubGateway struct {
	failures int
	calls    int
}

func (g *stubGateway) Charge(ctx context.Context, orderID, code string) (string, error) {
	g.calls++
	if g.calls <= g.failures {
		return "", errors.New("gateway hiccup")
	}
	return "tx-" + orderID, nil
}

func TestProcessor_Process_FirstAttemptSuccess(t *testing.T) {
	gw := &stubGateway{}
	p := NewProcessor(gw, 3, time.Millisecond, time.Second)

	res := p.Process(context.Background(), "order-1", "12345")

	require.True(t, res.Success)
	assert.Equal(t, "tx-order-1", res.TransactionID)
	assert.Equal(t, 1, res.Attempts)
	assert.NoError(t, res.Err)
}

func TestProcessor_Process_RetriesTransientFailure(t *testing.T) {
	gw := &stubGateway{failures: 2}
	p := NewProcessor(gw, 3, time.Millisecond, time.Second)

	res := p.Process(context.Background(), "order-1", "12345")

	require.True(t, res.Success)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 3, gw.calls)
}

func TestProcessor_Process_ExhaustsRetries(t *testing.T) {
	gw := &stubGateway{failures: 10}
	p := NewProcessor(gw, 3, time.Millisecond, time.Second)

	res := p.Process(context.Background(), "order-1", "12345")

	require.False(t, res.Success)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 3, gw.calls, "must stop after the attempt budget")
	assert.Error(t, res.Err)
}

func TestProcessor_Process_ContextCancelAborts(t *testing.T) {
	gw := &stubGateway{failures: 10}
	p := NewProcessor(gw, 5, time.Hour, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Result, 1)
	go func() { done <- p.Process(ctx, "order-1", "12345") }()
	cancel()

	select {
	case res := <-done:
		require.False(t, res.Success)
		assert.Error(t, res.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("Process did not abort on context cancellation")
	}
}

func TestSimulatedGateway_AlwaysFails(t *testing.T) {
	gw := &SimulatedGateway{FailureRate: 1.0}
	_, err := gw.Charge(context.Background(), "order-1", "12345")
	assert.Error(t, err)
}

func TestSimulatedGateway_NeverFails(t *testing.T) {
	gw := &SimulatedGateway{FailureRate: 0}
	txID, err := gw.Charge(context.Background(), "order-1", "12345")
	require.NoError(t, err)
	assert.NotEmpty(t, txID)
}
