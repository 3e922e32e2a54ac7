package billing

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdzlabs/pos-api/pkg/apperror"
)

func TestNullGateway_RejectsAllCardOperations(t *testing.T) {
	g := NewNullGateway()
	ctx := context.Background()

	_, err := g.CreatePaymentIntent(ctx, 1000)
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperror.GetAppError(err).Code)

	_, err = g.VerifyPaymentSucceeded(ctx, "pi_123")
	require.Error(t, err)

	err = g.RefundPayment(ctx, "pi_123", 500, "damaged")
	require.Error(t, err)
}

func TestNewStripeGateway_RequiresAPIKey(t *testing.T) {
	_, err := NewStripeGateway("", "usd")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperror.GetAppError(err).Code)
}
