package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"travel-portal/types/travelpackage"
)

func (c *Client) ListPackages(ctx context.Context, token string) ([]travelpackage.Package, error) {
	var pkgs []travelpackage.Package
	if err := c.do(ctx, call{service: ServicePackages, method: http.MethodGet, path: "/api/packages", token: token}, &pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (c *Client) GetPackage(ctx context.Context, token, id string) (*travelpackage.Package, error) {
	var pkg travelpackage.Package
	if err := c.do(ctx, call{service: ServicePackages, method: http.MethodGet, path: "/api/packages/" + escape(id), token: token}, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (c *Client) SearchPackages(ctx context.Context, token string, q travelpackage.SearchQuery) ([]travelpackage.Package, error) {
	query := url.Values{}
	if q.Destination != "" {
		query.Set("destination", q.Destination)
	}
	if q.MinPrice > 0 {
		query.Set("minPrice", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}

	var pkgs []travelpackage.Package
	cl := call{service: ServicePackages, method: http.MethodGet, path: "/api/packages/search", query: query, token: token}
	if err := c.do(ctx, cl, &pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (c *Client) CreatePackage(ctx context.Context, token string, pkg travelpackage.Package) (*travelpackage.Package, error) {
	cl, err := c.jsonCall(ServicePackages, http.MethodPost, "/api/packages", token, pkg)
	if err != nil {
		return nil, err
	}
	var created travelpackage.Package
	if err := c.do(ctx, cl, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdatePackage(ctx context.Context, token, id string, pkg travelpackage.Package) (*travelpackage.Package, error) {
	cl, err := c.jsonCall(ServicePackages, http.MethodPut, "/api/packages/"+escape(id), token, pkg)
	if err != nil {
		return nil, err
	}
	var updated travelpackage.Package
	if err := c.do(ctx, cl, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeletePackage(ctx context.Context, token, id string) error {
	return c.do(ctx, call{service: ServicePackages, method: http.MethodDelete, path: "/api/packages/" + escape(id), token: token}, nil)
}

func (c *Client) UpdatePackageStatus(ctx context.Context, token, id string, active bool) (*travelpackage.Package, error) {
	cl := call{
		service: ServicePackages,
		method:  http.MethodPatch,
		path:    "/api/packages/" + escape(id) + "/status",
		query:   url.Values{"active": {strconv.FormatBool(active)}},
		token:   token,
	}
	var updated travelpackage.Package
	if err := c.do(ctx, cl, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UploadPackageImage sends the image as multipart form data under "image".
func (c *Client) UploadPackageImage(ctx context.Context, token, id, filename string, image io.Reader) (*travelpackage.Package, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("build image upload: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("copy image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finish image upload: %w", err)
	}

	cl := call{
		service:     ServicePackages,
		method:      http.MethodPost,
		path:        "/api/packages/" + escape(id) + "/image",
		token:       token,
		body:        buf.Bytes(),
		contentType: w.FormDataContentType(),
	}
	var updated travelpackage.Package
	if err := c.do(ctx, cl, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
