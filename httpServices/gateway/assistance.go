package gateway

import (
	"context"
	"net/http"

	"travel-portal/types/assistance"
)

func (c *Client) CreateTicket(ctx context.Context, token, userID, description string) (*assistance.Request, error) {
	cl, err := c.jsonCall(ServiceAssistance, http.MethodPost, "/api/assistance", token, map[string]string{
		"userId":           userID,
		"issueDescription": description,
	})
	if err != nil {
		return nil, err
	}
	var created assistance.Request
	if err := c.do(ctx, cl, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetTicket(ctx context.Context, token, id string) (*assistance.Request, error) {
	var ticket assistance.Request
	if err := c.do(ctx, call{service: ServiceAssistance, method: http.MethodGet, path: "/api/assistance/" + escape(id), token: token}, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *Client) ListUserTickets(ctx context.Context, token, userID string) ([]assistance.Request, error) {
	var list []assistance.Request
	if err := c.do(ctx, call{service: ServiceAssistance, method: http.MethodGet, path: "/api/assistance/user/" + escape(userID), token: token}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) ListTickets(ctx context.Context, token string) ([]assistance.Request, error) {
	var list []assistance.Request
	if err := c.do(ctx, call{service: ServiceAssistance, method: http.MethodGet, path: "/api/assistance", token: token}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) UpdateTicketStatus(ctx context.Context, token, id, status string) (*assistance.Request, error) {
	cl, err := c.jsonCall(ServiceAssistance, http.MethodPut, "/api/assistance/"+escape(id)+"/status", token, map[string]string{"status": status})
	if err != nil {
		return nil, err
	}
	var updated assistance.Request
	if err := c.do(ctx, cl, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ResolveTicket sends the resolution as JSON {resolutionMessage}, or as
// a raw text body when the client was built WithTextResolveBody.
func (c *Client) ResolveTicket(ctx context.Context, token, id, message string) (*assistance.Request, error) {
	path := "/api/assistance/" + escape(id) + "/resolve"

	var cl call
	if c.resolveText {
		cl = call{
			service:     ServiceAssistance,
			method:      http.MethodPut,
			path:        path,
			token:       token,
			body:        []byte(message),
			contentType: "text/plain; charset=utf-8",
		}
	} else {
		var err error
		cl, err = c.jsonCall(ServiceAssistance, http.MethodPut, path, token, assistance.ResolveForm{ResolutionMessage: message})
		if err != nil {
			return nil, err
		}
	}

	var resolved assistance.Request
	if err := c.do(ctx, cl, &resolved); err != nil {
		return nil, err
	}
	return &resolved, nil
}
