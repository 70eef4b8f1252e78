package eventbus

import "github.com/let-the-dreamers-rise/aurorasync-os/core/model"

// BookingConfirmed is published after a successful scheduling request.
type BookingConfirmed struct {
	Result model.AppointmentResult
}

// EscalationRaised is published whenever the escalation engine raises a
// critical or emergency case.
type EscalationRaised struct {
	Decision  model.EscalationDecision
	VehicleID string
	Component string
}
