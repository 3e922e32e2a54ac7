package billing

import (
	"context"

	"github.com/cdzlabs/pos-api/pkg/apperror"
)

// NullGateway stands in when no payment provider is configured. Card
// operations fail with a gateway-unavailable error; cash and UPI flows are
// unaffected because they never touch the gateway.
type NullGateway struct{}

// NewNullGateway creates a gateway that rejects all card operations
func NewNullGateway() *NullGateway {
	return &NullGateway{}
}

func (g *NullGateway) CreatePaymentIntent(ctx context.Context, amountMinorUnits int64) (string, error) {
	return "", apperror.NewGatewayUnavailableError()
}

func (g *NullGateway) VerifyPaymentSucceeded(ctx context.Context, paymentIntentID string) (bool, error) {
	return false, apperror.NewGatewayUnavailableError()
}

func (g *NullGateway) RefundPayment(ctx context.Context, paymentIntentID string, amountMinorUnits int64, reason string) error {
	return apperror.NewGatewayUnavailableError()
}
