// Package payment validates payment codes and settles payments against a
// gateway with a bounded retry budget.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"
)

var codePattern = regexp.MustCompile(`^\d{5}$`)

// ValidateCode checks the payment code format synchronously. The only valid
// shape is exactly five decimal digits.
func ValidateCode(code string) error {
	if !codePattern.MatchString(code) {
		return errors.New("payment code must be exactly 5 digits")
	}
	return nil
}

// Gateway charges a payment. Any returned error is treated as transient and
// retried by the Processor until its attempt budget runs out.
type Gateway interface {
	Charge(ctx context.Context, orderID, code string) (transactionID string, err error)
}

// Result is the single final outcome of one payment submission.
type Result struct {
	Success       bool
	TransactionID string
	Attempts      int
	Err           error
}

type Processor struct {
	gateway        Gateway
	maxAttempts    int
	initialBackoff time.Duration
	attemptTimeout time.Duration
}

func NewProcessor(gateway Gateway, maxAttempts int, initialBackoff, attemptTimeout time.Duration) *Processor {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Processor{
		gateway:        gateway,
		maxAttempts:    maxAttempts,
		initialBackoff: initialBackoff,
		attemptTimeout: attemptTimeout,
	}
}

// Process settles the payment, retrying transient gateway errors with
// exponential backoff (initialBackoff doubling per attempt). It blocks until
// a final outcome is reached and reports exactly one Result. Cancelling ctx
// aborts between attempts.
func (p *Processor) Process(ctx context.Context, orderID, code string) Result {
	var lastErr error
	backoff := p.initialBackoff

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		attemptCtx := ctx
		cancel := context.CancelFunc(func() {})
		if p.attemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.attemptTimeout)
		}
		txID, err := p.gateway.Charge(attemptCtx, orderID, code)
		cancel()

		if err == nil {
			return Result{Success: true, TransactionID: txID, Attempts: attempt}
		}
		lastErr = err
		log.Printf("payment attempt %d/%d failed for order %s: %v", attempt, p.maxAttempts, orderID, err)

		if ctx.Err() != nil {
			return Result{Attempts: attempt, Err: fmt.Errorf("payment aborted: %w", ctx.Err())}
		}
		if attempt < p.maxAttempts {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return Result{Attempts: attempt, Err: fmt.Errorf("payment aborted: %w", ctx.Err())}
			}
			backoff *= 2
		}
	}

	return Result{
		Attempts: p.maxAttempts,
		Err:      fmt.Errorf("payment failed after %d attempts: %w", p.maxAttempts, lastErr),
	}
}
