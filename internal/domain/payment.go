package domain

import "time"

// PaymentState enumerates the dispatcher states for one checkout attempt.
type PaymentState string

const (
	// PaymentCreated is the initial state before the dispatch decision.
	PaymentCreated PaymentState = "created"
	// PaymentFreeFulfilled is the terminal state of the zero-cost path.
	PaymentFreeFulfilled PaymentState = "free_fulfilled"
	// PaymentLinkDispatched indicates the deep link has been handed off.
	PaymentLinkDispatched PaymentState = "link_dispatched"
	// PaymentConfirmPending indicates the fallback prompt is awaiting the
	// user's out-of-band confirmation.
	PaymentConfirmPending PaymentState = "confirm_pending"
	// PaymentResolved is the terminal state of a self-reported completion.
	PaymentResolved PaymentState = "resolved"
	// PaymentAbandoned is the terminal state of a user-driven abort.
	PaymentAbandoned PaymentState = "abandoned"
)

// Terminal reports whether the state ends the intent lifecycle.
func (s PaymentState) Terminal() bool {
	switch s {
	case PaymentFreeFulfilled, PaymentResolved, PaymentAbandoned:
		return true
	}
	return false
}

// DeviceClass partitions clients by the payment handoff they support.
type DeviceClass string

const (
	// DeviceMobile marks clients that can open the payment app directly.
	DeviceMobile DeviceClass = "mobile"
	// DeviceDesktop marks clients that complete payment out-of-band.
	DeviceDesktop DeviceClass = "desktop"
)

// PaymentIntent is one in-flight checkout attempt. Intents are ephemeral:
// they live in memory while non-terminal and are discarded at a terminal
// state; the system keeps no ledger of completed or failed payments.
type PaymentIntent struct {
	ID            string
	ItemID        int64
	Amount        int64
	TransactionID string
	Channel       string
	DeviceClass   DeviceClass
	State         PaymentState
	CreatedAt     time.Time
	DispatchedAt  time.Time
}
