package gateway

import (
	"context"
	"net/http"
	"net/url"

	"travel-portal/types/insurance"
)

func (c *Client) ListPlans(ctx context.Context, token string) ([]insurance.Plan, error) {
	var plans []insurance.Plan
	if err := c.do(ctx, call{service: ServiceInsurance, method: http.MethodGet, path: "/api/insurance/plans", token: token}, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// SelectPlan posts the choice as a url-encoded form, which is what the
// insurance service accepts.
func (c *Client) SelectPlan(ctx context.Context, token, planID, bookingID, userID string) (*insurance.Selection, error) {
	form := url.Values{
		"planId":    {planID},
		"bookingId": {bookingID},
		"userId":    {userID},
	}
	cl := call{
		service:     ServiceInsurance,
		method:      http.MethodPost,
		path:        "/api/insurance/select",
		token:       token,
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}
	var sel insurance.Selection
	if err := c.do(ctx, cl, &sel); err != nil {
		return nil, err
	}
	return &sel, nil
}

func (c *Client) ListSelectionsByBooking(ctx context.Context, token, bookingID string) ([]insurance.Selection, error) {
	var list []insurance.Selection
	if err := c.do(ctx, call{service: ServiceInsurance, method: http.MethodGet, path: "/api/insurance/booking/" + escape(bookingID), token: token}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) ListSelectionsByUser(ctx context.Context, token, userID string) ([]insurance.Selection, error) {
	var list []insurance.Selection
	if err := c.do(ctx, call{service: ServiceInsurance, method: http.MethodGet, path: "/api/insurance/user/" + escape(userID), token: token}, &list); err != nil {
		return nil, err
	}
	return list, nil
}
