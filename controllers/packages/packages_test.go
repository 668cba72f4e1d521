package packages

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"travel-portal/httpServices/gateway"
	"travel-portal/middleware"
	"travel-portal/types"
	"travel-portal/types/travelpackage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	packages []travelpackage.Package
	listErr  error

	created  travelpackage.Package
	status   *bool
	uploaded string
	calls    int
}

func (f *fakeCatalog) ListPackages(ctx context.Context, token string) ([]travelpackage.Package, error) {
	f.calls++
	return f.packages, f.listErr
}

func (f *fakeCatalog) GetPackage(ctx context.Context, token, id string) (*travelpackage.Package, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	for _, p := range f.packages {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, &gateway.APIError{Status: http.StatusNotFound, Message: "Package not found"}
}

func (f *fakeCatalog) SearchPackages(ctx context.Context, token string, q travelpackage.SearchQuery) ([]travelpackage.Package, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.packages, nil
}

func (f *fakeCatalog) CreatePackage(ctx context.Context, token string, pkg travelpackage.Package) (*travelpackage.Package, error) {
	f.calls++
	f.created = pkg
	pkg.ID = "p-new"
	return &pkg, nil
}

func (f *fakeCatalog) UpdatePackage(ctx context.Context, token, id string, pkg travelpackage.Package) (*travelpackage.Package, error) {
	f.calls++
	return &pkg, nil
}

func (f *fakeCatalog) DeletePackage(ctx context.Context, token, id string) error {
	f.calls++
	return nil
}

func (f *fakeCatalog) UpdatePackageStatus(ctx context.Context, token, id string, active bool) (*travelpackage.Package, error) {
	f.calls++
	f.status = &active
	return &travelpackage.Package{ID: id, Active: active}, nil
}

func (f *fakeCatalog) UploadPackageImage(ctx context.Context, token, id, filename string, image io.Reader) (*travelpackage.Package, error) {
	f.calls++
	data, _ := io.ReadAll(image)
	f.uploaded = filename + ":" + string(data)
	return &travelpackage.Package{ID: id, Images: []string{filename}}, nil
}

type memWishlist struct {
	items map[string][]string
}

func (m *memWishlist) List(ctx context.Context, userID string) ([]string, error) {
	out := append([]string{}, m.items[userID]...)
	return out, nil
}

func (m *memWishlist) Add(ctx context.Context, userID, packageID string) error {
	for _, id := range m.items[userID] {
		if id == packageID {
			return nil
		}
	}
	m.items[userID] = append(m.items[userID], packageID)
	return nil
}

func (m *memWishlist) Remove(ctx context.Context, userID, packageID string) error {
	kept := []string{}
	for _, id := range m.items[userID] {
		if id != packageID {
			kept = append(kept, id)
		}
	}
	m.items[userID] = kept
	return nil
}

func newApp(gw *fakeCatalog, wl *memWishlist) *fiber.App {
	pc := NewPackageController(gw, wl)
	app := fiber.New()
	app.Get("/packages", pc.List)
	app.Get("/packages/search", pc.Search)
	app.Get("/packages/:id", pc.Show)

	authed := app.Group("", func(c *fiber.Ctx) error {
		middleware.SetPrincipal(c, types.Principal{UserID: "agent-1", Role: "TRAVEL_AGENT", Token: "tok"})
		return c.Next()
	})
	authed.Get("/wishlist", pc.Wishlist)
	authed.Post("/wishlist/:packageId", pc.AddToWishlist)
	authed.Delete("/wishlist/:packageId", pc.RemoveFromWishlist)
	authed.Post("/agent/packages", pc.Create)
	authed.Patch("/agent/packages/:id/status", pc.UpdateStatus)
	authed.Post("/agent/packages/:id/image", pc.UploadImage)
	return app
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestList_FallbackCatalogOnOutage(t *testing.T) {
	gw := &fakeCatalog{listErr: fmt.Errorf("%w: packages service unreachable", gateway.ErrUnavailable)}
	app := newApp(gw, &memWishlist{items: map[string][]string{}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/packages?search=kerala", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Packages struct {
				Rows  []travelpackage.Package `json:"rows"`
				Total int                     `json:"total"`
			} `json:"packages"`
			Fallback bool `json:"fallback"`
		} `json:"data"`
	}
	decode(t, resp, &body)
	assert.True(t, body.Data.Fallback)
	assert.Equal(t, 1, body.Data.Packages.Total)
	assert.Equal(t, "fallback-kerala", body.Data.Packages.Rows[0].ID)
}

func TestList_GatewayClientErrorIsNotMasked(t *testing.T) {
	gw := &fakeCatalog{listErr: &gateway.APIError{Status: http.StatusForbidden, Message: "Forbidden"}}
	app := newApp(gw, &memWishlist{items: map[string][]string{}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/packages", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSearch_RejectsInvertedPriceBand(t *testing.T) {
	gw := &fakeCatalog{}
	app := newApp(gw, &memWishlist{items: map[string][]string{}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/packages/search?minPrice=500&maxPrice=100", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Zero(t, gw.calls)
}

func TestSearch_FallbackFiltersLocally(t *testing.T) {
	gw := &fakeCatalog{listErr: fmt.Errorf("%w: down", gateway.ErrUnavailable)}
	app := newApp(gw, &memWishlist{items: map[string][]string{}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/packages/search?maxPrice=1000", nil))
	require.NoError(t, err)

	var body struct {
		Data []travelpackage.Package `json:"data"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "fallback-jaipur", body.Data[0].ID)
}

func TestWishlist_AddIsIdempotentAndRemove(t *testing.T) {
	gw := &fakeCatalog{packages: []travelpackage.Package{{ID: "p-1"}, {ID: "p-2"}}}
	wl := &memWishlist{items: map[string][]string{}}
	app := newApp(gw, wl)

	for _, id := range []string{"p-1", "p-2", "p-1"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/wishlist/"+id, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, []string{"p-1", "p-2"}, wl.items["agent-1"])

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/wishlist/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/wishlist/p-1", nil))
	require.NoError(t, err)
	var body struct {
		Data []string `json:"data"`
	}
	decode(t, resp, &body)
	assert.Equal(t, []string{"p-2"}, body.Data)
}

func TestCreate_ValidatesAndStampsAgent(t *testing.T) {
	gw := &fakeCatalog{}
	app := newApp(gw, &memWishlist{items: map[string][]string{}})

	req := httptest.NewRequest(http.MethodPost, "/agent/packages", strings.NewReader(`{"title":"Goa","description":"Beach","destination":"Goa","duration":4,"price":0}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Zero(t, gw.calls)

	req = httptest.NewRequest(http.MethodPost, "/agent/packages", strings.NewReader(`{"title":"Goa","description":"Beach","destination":"Goa","duration":4,"price":1500,"active":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "agent-1", gw.created.AgentID)
}

func TestUpdateStatus_RequiresActive(t *testing.T) {
	gw := &fakeCatalog{}
	app := newApp(gw, &memWishlist{items: map[string][]string{}})

	req := httptest.NewRequest(http.MethodPatch, "/agent/packages/p-1/status", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPatch, "/agent/packages/p-1/status", strings.NewReader(`{"active":false}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, gw.status)
	assert.False(t, *gw.status)
}

func TestUploadImage(t *testing.T) {
	gw := &fakeCatalog{}
	app := newApp(gw, &memWishlist{items: map[string][]string{}})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "beach.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/agent/packages/p-1/image", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "beach.jpg:jpeg-bytes", gw.uploaded)
}
