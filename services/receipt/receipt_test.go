package receipt

import (
	"testing"
	"time"

	"travel-portal/types/booking"
	"travel-portal/types/payment"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	b := booking.Booking{
		ID:           "b-1",
		PackageTitle: "Goa Getaway",
		StartDate:    "2026-12-01",
		EndDate:      "2026-12-05",
		Adults:       2,
		Children:     1,
		Travelers:    []string{"Asha", "Vikram", "Meera"},
		Contact:      booking.Contact{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"},
		HasInsurance: true,
		TotalAmount:  3975,
		Status:       booking.StatusConfirmed,
		Payment: &payment.Payment{
			PaymentID: "pay_1",
			OrderID:   "order_1",
			Method:    "card",
			Status:    "SUCCESS",
			Amount:    4874,
		},
	}

	out := Render(b, time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC))

	assert.Contains(t, out, "Booking ID:   b-1")
	assert.Contains(t, out, "Package:      Goa Getaway")
	assert.Contains(t, out, "  3. Meera")
	assert.Contains(t, out, "Insurance:    Yes")
	assert.Contains(t, out, "Payment ID:   pay_1")
	assert.Contains(t, out, "Total paid:   INR 4874.00")
	assert.Contains(t, out, "Issued:       14 Oct 2026 09:30 UTC")
}

func TestRender_WithoutPaymentUsesBookingTotal(t *testing.T) {
	out := Render(booking.Booking{ID: "b-2", PackageID: "p-9", TotalAmount: 1200}, time.Now())

	assert.Contains(t, out, "Package ID:   p-9")
	assert.Contains(t, out, "Total paid:   INR 1200.00")
	assert.NotContains(t, out, "Payment ID")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "receipt-b-1.txt", FileName("b-1"))
}
