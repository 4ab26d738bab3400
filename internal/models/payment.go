package models

import "time"

type PaymentProvider string

const (
	ProviderStripe PaymentProvider = "stripe"
)

// PaymentStatus tracks the charge attempt independently of the order
// lifecycle; the two are deliberately not kept in sync (confirming an order
// is a separate action from settling its payment).
type PaymentStatus string

const (
	PaymentRequiresAction PaymentStatus = "requires_action"
	PaymentAuthorized     PaymentStatus = "authorized"
	PaymentCaptured       PaymentStatus = "captured"
	PaymentFailed         PaymentStatus = "failed"

	// PaymentSucceeded is the terminal value written by the simulated
	// success path used when no gateway is configured.
	PaymentSucceeded PaymentStatus = "succeeded"
)

type Payment struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	OrderID          uint            `gorm:"index;not null" json:"order_id"`
	Order            Order           `json:"-"`
	Provider         PaymentProvider `gorm:"not null;default:'stripe'" json:"provider"`
	Status           PaymentStatus   `gorm:"not null;default:'requires_action'" json:"status"`
	Amount           float64         `gorm:"not null" json:"amount"`
	Currency         string          `gorm:"not null;default:'usd'" json:"currency"`
	ProviderIntentID string          `json:"provider_intent_id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
