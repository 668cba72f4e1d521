package gateway

import (
	"context"
	"net/http"

	"travel-portal/types/payment"
)

func (c *Client) CreateOrder(ctx context.Context, token string, req payment.CreateOrderRequest) (*payment.Order, error) {
	cl, err := c.jsonCall(ServicePayments, http.MethodPost, "/api/payments/create-order", token, req)
	if err != nil {
		return nil, err
	}
	var order payment.Order
	if err := c.do(ctx, cl, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyPayment forwards the checkout signature triple; the payment
// service checks the signature.
func (c *Client) VerifyPayment(ctx context.Context, token string, v payment.Verification) (*payment.VerificationResult, error) {
	cl, err := c.jsonCall(ServicePayments, http.MethodPost, "/api/payments/verify", token, v)
	if err != nil {
		return nil, err
	}
	var result payment.VerificationResult
	if err := c.do(ctx, cl, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
