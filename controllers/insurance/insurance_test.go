package insurance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"travel-portal/middleware"
	insuranceService "travel-portal/services/insurance"
	"travel-portal/types"
	insuranceTypes "travel-portal/types/insurance"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type downSource struct{}

func (downSource) ListPlans(ctx context.Context, token string) ([]insuranceTypes.Plan, error) {
	return nil, errors.New("connection refused")
}

type fakeSelections struct {
	byBooking []insuranceTypes.Selection
	userQuery string
}

func (f *fakeSelections) ListSelectionsByBooking(ctx context.Context, token, bookingID string) ([]insuranceTypes.Selection, error) {
	return f.byBooking, nil
}

func (f *fakeSelections) ListSelectionsByUser(ctx context.Context, token, userID string) ([]insuranceTypes.Selection, error) {
	f.userQuery = userID
	return []insuranceTypes.Selection{{ID: "s-1", UserID: userID}}, nil
}

func newApp(sel *fakeSelections, role string) *fiber.App {
	ic := NewInsuranceController(insuranceService.NewCatalog(downSource{}), sel)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		middleware.SetPrincipal(c, types.Principal{UserID: "u-1", Role: role})
		return c.Next()
	})
	app.Get("/insurance/plans", ic.Plans)
	app.Get("/insurance/selections", ic.Selections)
	return app
}

func TestPlans_Fallback(t *testing.T) {
	app := newApp(&fakeSelections{}, "USER")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/insurance/plans", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Plans    []insuranceTypes.Plan `json:"plans"`
			Fallback bool                  `json:"fallback"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Data.Fallback)
	require.Len(t, body.Data.Plans, 3)
	assert.Equal(t, 599.0, body.Data.Plans[0].Price)
}

func TestSelections_TravelerSeesOnlyOwn(t *testing.T) {
	sel := &fakeSelections{byBooking: []insuranceTypes.Selection{{ID: "a", UserID: "u-1"}, {ID: "b", UserID: "u-9"}}}
	app := newApp(sel, "USER")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/insurance/selections?bookingId=b-1", nil))
	require.NoError(t, err)
	var body struct {
		Data []insuranceTypes.Selection `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "a", body.Data[0].ID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/insurance/selections?userId=u-9", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/insurance/selections", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u-1", sel.userQuery)
}

func TestSelections_StaffQueriesAnyUser(t *testing.T) {
	sel := &fakeSelections{}
	app := newApp(sel, "ADMIN")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/insurance/selections?userId=u-9", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u-9", sel.userQuery)
}
