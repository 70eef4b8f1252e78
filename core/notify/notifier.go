package notify

import (
	"context"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/model"
)

// Notifier delivers a booking result to the owner-facing notification
// channel. Rendering (voice, SMS, push) happens downstream; this interface
// only carries the structured payload.
type Notifier interface {
	NotifyBooking(ctx context.Context, res model.AppointmentResult) error
}

// Nop discards notifications.
type Nop struct{}

func (Nop) NotifyBooking(context.Context, model.AppointmentResult) error { return nil }
