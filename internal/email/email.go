package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/flightorders/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	fmt.Printf("notify user %s: order %s on flight %s is %s (seats %s)\n",
		event.UserID, event.OrderID, event.FlightID, event.Status, strings.Join(event.Seats, ","))
	return nil
}
