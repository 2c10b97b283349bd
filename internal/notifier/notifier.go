package notifier

import (
	"context"
	"errors"

	"github.com/alighauridev/ASE-Server/internal/models"
)

// OrderConfirmation is the payload of the confirmation message sent after
// an order is created.
type OrderConfirmation struct {
	Email        string
	Name         string
	OrderID      uint
	ShippingInfo models.ShippingInfo
	Items        []models.OrderItem
	TotalPrice   float64
}

// Sender is a single confirmation delivery channel.
type Sender interface {
	SendOrderConfirmation(ctx context.Context, msg OrderConfirmation) error
}

// Multi fans a confirmation out to every channel. Every channel is
// attempted; errors are joined so one failing channel does not stop the
// others.
type Multi []Sender

func (m Multi) SendOrderConfirmation(ctx context.Context, msg OrderConfirmation) error {
	var errs []error
	for _, s := range m {
		if err := s.SendOrderConfirmation(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
