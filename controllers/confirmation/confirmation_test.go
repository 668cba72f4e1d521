package confirmation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"travel-portal/middleware"
	"travel-portal/types"
	"travel-portal/types/booking"
	"travel-portal/types/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookings struct{}

func (fakeBookings) GetBooking(ctx context.Context, token, id string) (*booking.Booking, error) {
	return &booking.Booking{
		ID:          id,
		UserID:      "u-1",
		PackageID:   "p-1",
		Contact:     booking.Contact{Name: "Alice", Email: "alice@example.com", Phone: "9876543210"},
		TotalAmount: 3975,
		Status:      booking.StatusConfirmed,
		Payment:     &payment.Payment{PaymentID: "pay_1", Amount: 3975},
	}, nil
}

func newApp(p types.Principal) *fiber.App {
	cc := NewConfirmationController(fakeBookings{})
	cc.now = func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		middleware.SetPrincipal(c, p)
		return c.Next()
	})
	app.Get("/bookings/:id/confirmation", cc.Show)
	app.Get("/bookings/:id/receipt", cc.Receipt)
	app.Post("/bookings/:id/receipt/email", cc.EmailReceipt)
	return app
}

var owner = types.Principal{UserID: "u-1", Role: "USER"}

func TestShow_OwnerAndStaffOnly(t *testing.T) {
	for name, tc := range map[string]struct {
		p    types.Principal
		want int
	}{
		"owner":    {owner, http.StatusOK},
		"stranger": {types.Principal{UserID: "u-2", Role: "USER"}, http.StatusForbidden},
		"agent":    {types.Principal{UserID: "a-1", Role: "TRAVEL_AGENT"}, http.StatusOK},
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := newApp(tc.p).Test(httptest.NewRequest(http.MethodGet, "/bookings/b-1/confirmation", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestReceipt_Attachment(t *testing.T) {
	resp, err := newApp(owner).Test(httptest.NewRequest(http.MethodGet, "/bookings/b-1/receipt", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="receipt-b-1.txt"`)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Booking ID:   b-1")
	assert.Contains(t, string(body), "Payment ID:   pay_1")
}

func TestEmailReceipt(t *testing.T) {
	app := newApp(owner)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/bookings/b-1/receipt/email", nil))
	require.NoError(t, err)
	var body types.ApiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Receipt sent to alice@example.com", body.Message)

	req := httptest.NewRequest(http.MethodPost, "/bookings/b-1/receipt/email", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/bookings/b-1/receipt/email", strings.NewReader(`{"email":"bob@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Receipt sent to bob@example.com", body.Message)
}
