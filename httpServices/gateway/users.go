package gateway

import (
	"context"
	"net/http"
	"net/url"

	"travel-portal/types/user"
)

func (c *Client) Register(ctx context.Context, payload user.RegisterPayload) (*user.User, error) {
	cl, err := c.jsonCall(ServiceUsers, http.MethodPost, "/api/users/register", "", payload)
	if err != nil {
		return nil, err
	}
	var created user.User
	if err := c.do(ctx, cl, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateUser registers an account on behalf of an administrator.
func (c *Client) CreateUser(ctx context.Context, token string, payload user.RegisterPayload) (*user.User, error) {
	cl, err := c.jsonCall(ServiceUsers, http.MethodPost, "/api/users", token, payload)
	if err != nil {
		return nil, err
	}
	var created user.User
	if err := c.do(ctx, cl, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	cl, err := c.jsonCall(ServiceUsers, http.MethodPost, "/api/users/login", "", req)
	if err != nil {
		return nil, err
	}
	var resp user.LoginResponse
	if err := c.do(ctx, cl, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile resolves the account behind token.
func (c *Client) Profile(ctx context.Context, token string) (*user.User, error) {
	var u user.User
	if err := c.do(ctx, call{service: ServiceUsers, method: http.MethodGet, path: "/api/users/profile", token: token}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) GetUser(ctx context.Context, token, id string) (*user.User, error) {
	var u user.User
	if err := c.do(ctx, call{service: ServiceUsers, method: http.MethodGet, path: "/api/users/" + escape(id), token: token}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]user.User, error) {
	var users []user.User
	if err := c.do(ctx, call{service: ServiceUsers, method: http.MethodGet, path: "/api/users", token: token}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) SearchUsers(ctx context.Context, token, name string) ([]user.User, error) {
	var users []user.User
	cl := call{
		service: ServiceUsers,
		method:  http.MethodGet,
		path:    "/api/users/search",
		query:   url.Values{"name": {name}},
		token:   token,
	}
	if err := c.do(ctx, cl, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUser(ctx context.Context, token, id string, req user.UpdateRequest) (*user.User, error) {
	cl, err := c.jsonCall(ServiceUsers, http.MethodPut, "/api/users/"+escape(id), token, req)
	if err != nil {
		return nil, err
	}
	var updated user.User
	if err := c.do(ctx, cl, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.do(ctx, call{service: ServiceUsers, method: http.MethodDelete, path: "/api/users/" + escape(id), token: token}, nil)
}
