package billing

import "context"

// Gateway abstracts the external card-payment provider. Amounts are always in
// integer minor units (cents) to match the provider's wire format.
type Gateway interface {
	// CreatePaymentIntent creates a payment authorization for the given amount
	// and returns the client secret the POS terminal needs to complete it.
	CreatePaymentIntent(ctx context.Context, amountMinorUnits int64) (string, error)
	// VerifyPaymentSucceeded reports whether the payment intent has been
	// captured successfully.
	VerifyPaymentSucceeded(ctx context.Context, paymentIntentID string) (bool, error)
	// RefundPayment refunds part or all of a captured payment intent.
	RefundPayment(ctx context.Context, paymentIntentID string, amountMinorUnits int64, reason string) error
}
