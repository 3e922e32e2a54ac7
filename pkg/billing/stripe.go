package billing

import (
	"context"
	"log"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"

	"github.com/cdzlabs/pos-api/pkg/apperror"
)

// StripeGateway implements Gateway against the Stripe API
type StripeGateway struct {
	currency string
}

// NewStripeGateway configures the Stripe client. Returns an error when no API
// key is set so the caller can fall back to the NullGateway.
func NewStripeGateway(apiKey, currency string) (*StripeGateway, error) {
	if apiKey == "" {
		return nil, apperror.NewGatewayUnavailableError()
	}
	stripe.Key = apiKey
	if currency == "" {
		currency = "usd"
	}
	log.Println("Stripe API key configured successfully")
	return &StripeGateway{currency: currency}, nil
}

// CreatePaymentIntent creates a Stripe PaymentIntent and returns its client secret
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amountMinorUnits int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return "", apperror.NewGatewayError("Failed to create payment intent: " + err.Error())
	}
	return intent.ClientSecret, nil
}

// VerifyPaymentSucceeded retrieves the intent and checks its status
func (g *StripeGateway) VerifyPaymentSucceeded(ctx context.Context, paymentIntentID string) (bool, error) {
	if paymentIntentID == "" {
		return false, nil
	}
	intent, err := paymentintent.Get(paymentIntentID, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return false, apperror.NewGatewayError("Failed to verify payment: " + err.Error())
	}
	return intent.Status == stripe.PaymentIntentStatusSucceeded, nil
}

// RefundPayment issues a refund against a captured payment intent
func (g *StripeGateway) RefundPayment(ctx context.Context, paymentIntentID string, amountMinorUnits int64, reason string) error {
	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(paymentIntentID),
		Amount:        stripe.Int64(amountMinorUnits),
	}
	if r := refundReason(reason); r != "" {
		params.Reason = stripe.String(r)
	}
	if _, err := refund.New(params); err != nil {
		log.Printf("Stripe refund failed: %v", err)
		return apperror.NewGatewayError("Refund failed: " + err.Error())
	}
	return nil
}

// refundReason maps a free-text reason onto Stripe's enumerated reasons;
// anything unrecognized becomes requested_by_customer.
func refundReason(reason string) string {
	switch reason {
	case "":
		return ""
	case "duplicate", "Duplicate":
		return string(stripe.RefundReasonDuplicate)
	case "fraudulent", "Fraudulent":
		return string(stripe.RefundReasonFraudulent)
	default:
		return string(stripe.RefundReasonRequestedByCustomer)
	}
}
