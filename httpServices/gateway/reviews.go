package gateway

import (
	"context"
	"net/http"
	"net/url"

	"travel-portal/types/review"
)

// ListReviews lists all reviews, or one package's when packageID is set.
func (c *Client) ListReviews(ctx context.Context, token, packageID string) ([]review.Review, error) {
	cl := call{service: ServiceReviews, method: http.MethodGet, path: "/api/reviews", token: token}
	if packageID != "" {
		cl.query = url.Values{"packageId": {packageID}}
	}
	var list []review.Review
	if err := c.do(ctx, cl, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateReview(ctx context.Context, token string, r review.Review) (*review.Review, error) {
	cl, err := c.jsonCall(ServiceReviews, http.MethodPost, "/api/reviews", token, r)
	if err != nil {
		return nil, err
	}
	var created review.Review
	if err := c.do(ctx, cl, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) RespondReview(ctx context.Context, token, id, response string) (*review.Review, error) {
	cl, err := c.jsonCall(ServiceReviews, http.MethodPut, "/api/reviews/"+escape(id)+"/respond", token, map[string]string{"agentResponse": response})
	if err != nil {
		return nil, err
	}
	var updated review.Review
	if err := c.do(ctx, cl, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
